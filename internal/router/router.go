// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/clickmediapropy/traductor-app/internal/handler"
)

// Router 持有所有 handler，负责把路由绑定到对应的处理函数
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由器实例
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	rt.RegisterBotRoutes(api)       // 机器人入口路由（Webhook、会话查询）
	rt.RegisterTranslateRoutes(api) // 翻译路由（分段解析 + 批量翻译）
}
