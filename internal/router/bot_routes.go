// Package router 提供 HTTP 路由注册
// 本文件定义机器人入口相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterBotRoutes 注册机器人相关路由
// Webhook 接收 Telegram 更新，get-messages 供网页端按访问码取回消息
func (rt *Router) RegisterBotRoutes(rg *gin.RouterGroup) {
	botGroup := rg.Group("/bot")
	{
		botGroup.POST("/webhook", rt.handlers.Webhook.Receive)            // 接收 Telegram Webhook 更新
		botGroup.GET("/get-messages", rt.handlers.Session.GetMessages)    // 按访问码取回已结束会话的消息
		botGroup.GET("/debug-sessions", rt.handlers.Session.DebugSessions) // 列出所有会话（调试用）
	}
}
