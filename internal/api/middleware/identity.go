package middleware

import (
	"Vinelytics/internal/pkg/util"

	"github.com/gin-gonic/gin"
)

// ViewerPubkeyKey 请求上下文中已验证的观看者身份
const ViewerPubkeyKey = "viewer_pubkey"

// IdentityMiddleware 读取上游签名校验层注入的身份。
// 引擎自身不做签名验证，头缺失或格式不对一律按匿名处理
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pubkey := c.GetHeader("X-Viewer-Pubkey")
		if pubkey != "" && util.IsContentID(pubkey) {
			c.Set(ViewerPubkeyKey, pubkey)
		}
		c.Next()
	}
}
