package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/postcard/internal/logger"
)

// RequestLogger logs one line per request through log.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			log.Warn(c.Errors.String(), kv...)
			return
		}
		log.Debug("request", kv...)
	}
}

// NewEngine builds a gin engine with recovery and request logging.
func NewEngine(s *Server, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	RegisterRoutes(r, s)
	return r
}
