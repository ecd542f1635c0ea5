package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aescanero/textcase/internal/application/transform"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	greeting = "Hello World!"

	textParam = "text"

	msgMissingText      = `missing required query parameter "text"`
	msgNotFound         = "404 page not found"
	msgMethodNotAllowed = "405 method not allowed"

	plainText = "text/plain; charset=utf-8"
)

// handleIndex returns the static greeting
func (s *Server) handleIndex(c *gin.Context) {
	writeText(c, http.StatusOK, greeting)
}

// handleUppercase returns the uppercased text query parameter.
// An empty value is valid; an absent one is a client error.
func (s *Server) handleUppercase(c *gin.Context) {
	text, ok := lookupQuery(c.Request.URL.RawQuery, textParam)
	if !ok {
		s.metrics.IncValidationFailures("missing_text")
		s.logger.Warn("uppercase request without text",
			zap.String("method", c.Request.Method),
			zap.String("request_id", c.GetString(requestIDKey)))
		writeText(c, http.StatusBadRequest, msgMissingText)
		return
	}

	s.metrics.RecordTransformation("http", len(text))
	writeText(c, http.StatusOK, transform.Upper(text))
}

// handleOptions answers with the methods routed for the path
func (s *Server) handleOptions(c *gin.Context) {
	c.Header("Allow", s.allowHeader(c.FullPath()))
	c.Status(http.StatusOK)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func handleNoRoute(c *gin.Context) {
	c.String(http.StatusNotFound, msgNotFound)
}

func (s *Server) handleNoMethod(c *gin.Context) {
	if allow := s.allowHeader(c.Request.URL.Path); allow != "" {
		c.Header("Allow", allow)
	}
	c.String(http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// writeText writes a plain-text body; HEAD gets the headers only
func writeText(c *gin.Context, code int, body string) {
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", plainText)
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.Status(code)
		return
	}

	c.String(code, "%s", body)
}
