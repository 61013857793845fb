package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikailBag/birthdaybot/internal/metrics"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// CheckSecret guards the webhook paths: неверный секрет выглядит как 404,
// а не как 403 — не подсказываем, что путь существует.
func CheckSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("secret") != secret {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown action"})
			return
		}
		c.Next()
	}
}
