// Package handler 提供 HTTP 请求处理器
// 本文件处理 Telegram Webhook 的入站事件
package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clickmediapropy/traductor-app/internal/gateway/telegram"
	"github.com/clickmediapropy/traductor-app/internal/service"
)

// WebhookHandler Webhook 请求处理器
type WebhookHandler struct {
	adapter    *telegram.Adapter
	sessionSvc service.SessionService
}

// NewWebhookHandler 创建 Webhook 处理器实例
func NewWebhookHandler(adapter *telegram.Adapter, sessionSvc service.SessionService) *WebhookHandler {
	return &WebhookHandler{
		adapter:    adapter,
		sessionSvc: sessionSvc,
	}
}

// Receive 接收一条 Telegram 更新
// POST /api/bot/webhook
// 传输层契约：无论内部结果如何都返回 200 {"ok":true}，
// 连请求体解析失败也不例外——否则 Telegram 会对同一条更新
// 反复重投，形成重试风暴。内部错误只记日志
func (h *WebhookHandler) Receive(c *gin.Context) {
	// 顺带做一次尽力而为的过期清理（Redis 后端为 no-op）
	if err := h.sessionSvc.SweepExpired(c.Request.Context()); err != nil {
		zap.L().Warn("过期会话清理失败", zap.Error(err))
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		zap.L().Warn("webhook 请求体解析失败", zap.Error(err))
		c.JSON(200, gin.H{"ok": true})
		return
	}

	h.adapter.HandleUpdate(c.Request.Context(), &update)
	c.JSON(200, gin.H{"ok": true})
}
