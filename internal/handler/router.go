package handler

import (
	"crypto/ed25519"
	"log/slog"

	"github.com/gin-gonic/gin"

	"boothbot/internal/middleware"
)

// Router 注册路由与中间件；交互端点需通过签名校验
func Router(h *InteractionHandler, publicKey ed25519.PublicKey, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger))

	r.POST("/interactions", middleware.VerifySignature(publicKey), h.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}
