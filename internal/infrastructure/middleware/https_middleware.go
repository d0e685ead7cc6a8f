// Package middleware 提供 Gin 中间件
// 本文件实现 HTTP → HTTPS 的重定向：直接对公网暴露时启用
// （tlsConfig.redirectEnabled = true）；由 Nginx 等反向代理
// 终结 SSL 时保持关闭，Webhook 回调走代理的 HTTPS 入口
package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// TlsHandler 构造 TLS 重定向中间件
// host/port 为对外公布的 HTTPS 地址
func TlsHandler(host string, port int) gin.HandlerFunc {
	// 中间件对象在构造时创建一次，请求处理阶段只做 Process
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// 中间件内只能 Error，Fatal 会把整个服务带下去
			zap.L().Error("TLS redirection failed", zap.Error(err))
			c.Abort()
			return
		}

		// 重定向场景下响应已由 secure 写出，Next 只服务直连 HTTPS 的请求
		c.Next()
	}
}
