package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TiagoWFFrank/landing-page-siamesa/internal/resolve"
)

const allowedMethods = "GET, HEAD"

func (s *Server) serveStaticFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Header("Allow", allowedMethods)
		s.respondError(c, errMethodNotAllowed)
		return
	}

	outcome := s.resolver.Lookup(requestTarget(c.Request))
	switch outcome.Kind {
	case resolve.Serve:
		s.streamFile(c, outcome.Path)
	case resolve.BadRequest:
		s.respondError(c, errBadRequest)
	case resolve.NotFound:
		s.respondError(c, errNotFound)
	default:
		s.respondError(c, internalError(outcome.Err))
	}
}

// requestTarget returns the undecoded path and query as sent by the
// client, so that decoding failures are seen by the resolver.
func requestTarget(r *http.Request) string {
	if len(r.RequestURI) > 0 && r.RequestURI[0] == '/' {
		return r.RequestURI
	}

	return r.URL.EscapedPath()
}

func (s *Server) respondError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var httpErr *httpError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			s.logger.Error("server error",
				zap.Error(err),
				zap.String("request_id", c.GetString(requestIDKey)))
		} else {
			s.logger.Debug("request rejected",
				zap.Int("status", httpErr.Status),
				zap.String("path", c.Request.URL.Path))
		}

		c.String(httpErr.Status, httpErr.Message)
		c.Abort()
		return
	}

	s.logger.Error("unexpected error", zap.Error(err))
	c.String(http.StatusInternalServerError, internalErrorMessage)
	c.Abort()
}
