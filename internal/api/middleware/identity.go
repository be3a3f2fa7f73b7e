package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderPublicKey 调用方钱包公钥，不做签名校验
	HeaderPublicKey = "x-public-key"

	ContextKeyCallerKey = "callerPublicKey"
)

// CallerIdentity 从请求头读取调用方公钥；缺失或为空时视为匿名
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := strings.TrimSpace(c.GetHeader(HeaderPublicKey)); key != "" {
			c.Set(ContextKeyCallerKey, key)
		}
		c.Next()
	}
}

// GetCallerKey 获取调用方公钥，匿名请求返回 nil
func GetCallerKey(c *gin.Context) *string {
	val, exists := c.Get(ContextKeyCallerKey)
	if !exists {
		return nil
	}
	key, ok := val.(string)
	if !ok || key == "" {
		return nil
	}
	return &key
}
