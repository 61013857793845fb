package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secured := r.Group("/", CheckSecret(h.Secret))
	{
		secured.POST("/hook/:secret", h.Webhook)
		secured.POST("/greet/:secret", h.Greet)
		secured.GET("/install-webhook/:secret", h.InstallWebhook)
	}
	return r
}
