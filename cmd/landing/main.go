package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/TiagoWFFrank/landing-page-siamesa/internal/config"
	"github.com/TiagoWFFrank/landing-page-siamesa/internal/logging"
	"github.com/TiagoWFFrank/landing-page-siamesa/internal/server"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger, color.Output)
	stop()

	if err != nil {
		logger.Error("server failed", zap.Error(err))
	}
	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// run binds the listen address, announces it on banner and serves until
// ctx is done.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, banner io.Writer) error {
	srv, err := server.New(cfg, afero.NewReadOnlyFs(afero.NewOsFs()), logger)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	port := cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	logger.Info("serving files",
		zap.String("root", cfg.Root),
		zap.String("addr", ln.Addr().String()))
	color.New(color.FgGreen).Fprintf(banner, "Server running at http://localhost:%d\n", port)

	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}

	logger.Info("server stopped")

	return nil
}
