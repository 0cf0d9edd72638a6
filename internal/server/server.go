package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/TiagoWFFrank/landing-page-siamesa/internal/config"
	"github.com/TiagoWFFrank/landing-page-siamesa/internal/resolve"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	engine       *gin.Engine
	fs           afero.Fs
	resolver     *resolve.Resolver
	logger       *zap.Logger
	contentTypes map[string]string
}

// New builds a server for cfg.Root. Files are read through fs, which
// production code sets to the OS filesystem.
func New(cfg config.Config, fs afero.Fs, logger *zap.Logger) (*Server, error) {
	resolver, err := resolve.New(fs, cfg.Root)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	srv := &Server{
		engine:       engine,
		fs:           fs,
		resolver:     resolver,
		logger:       logger,
		contentTypes: newContentTypes(cfg.MIMETypes),
	}

	engine.Use(requestID(), accessLog(logger), srv.recovery())
	engine.NoRoute(srv.serveStaticFile)

	return srv, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is done, then waits for
// in-flight requests to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
