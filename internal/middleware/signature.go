package middleware

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

// ParsePublicKey 解析应用后台给出的 hex 公钥
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// VerifySignature 校验交互请求签名（timestamp + body），失败返回 401；
// discordgo 校验后会把 body 放回请求供后续绑定
func VerifySignature(key ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !discordgo.VerifyInteraction(c.Request, key) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}
		c.Next()
	}
}
