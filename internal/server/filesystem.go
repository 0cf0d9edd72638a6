package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamFile writes the file at absolutePath with a 200 status. Content
// is always revalidated by clients.
func (s *Server) streamFile(c *gin.Context, absolutePath string) {
	file, err := s.fs.Open(absolutePath)
	if err != nil {
		s.respondError(c, internalError(fmt.Errorf("open %s: %w", absolutePath, err)))
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		s.respondError(c, internalError(fmt.Errorf("stat %s: %w", absolutePath, err)))
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", s.contentType(absolutePath))
	header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")
	header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	c.Status(http.StatusOK)

	if c.Request.Method == http.MethodHead {
		c.Writer.WriteHeaderNow()
		return
	}

	written, err := io.Copy(c.Writer, file)
	if err == nil {
		s.logger.Debug("file served",
			zap.String("path", absolutePath),
			zap.String("size", humanize.IBytes(uint64(written))))
		return
	}

	if !c.Writer.Written() {
		for _, key := range []string{"Content-Type", "Cache-Control", "Pragma", "Expires", "Content-Length"} {
			header.Del(key)
		}

		s.respondError(c, internalError(fmt.Errorf("read %s: %w", absolutePath, err)))
		return
	}

	// Headers are gone; the client sees a truncated body. This is also
	// the path taken when the client disconnects.
	s.logger.Warn("file stream aborted",
		zap.String("path", absolutePath),
		zap.String("written", humanize.IBytes(uint64(written))),
		zap.String("size", humanize.IBytes(uint64(info.Size()))),
		zap.Error(err))
	c.Abort()
}
