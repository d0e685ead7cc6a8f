// Package handler 提供 HTTP 请求处理器
// 本文件处理取回端点和调试端点的请求
package handler

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clickmediapropy/traductor-app/internal/dto/request"
	"github.com/clickmediapropy/traductor-app/internal/service"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

// codeShapeRe 归一化（去空白、转大写）之后的会话码形状
var codeShapeRe = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// SessionHandler 会话取回请求处理器
// 通过构造函数注入 SessionService，遵循依赖倒置原则
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建会话取回处理器实例
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// GetMessages 按会话码取回已采集的消息
// GET /api/bot/get-messages?code=ABC123
// 会话码大小写不敏感：先去空白并转大写，再校验形状——
// 归一化在前，带空白的合法码不能被参数校验误伤
// 三种结果各自独立的业务码：成功(1000) / 不存在或过期(1008) / 仍活跃(1012)；
// 存储不可用(1013)单独区分，Web 端不能把"存储挂了"提示成"码不存在"
func (h *SessionHandler) GetMessages(c *gin.Context) {
	var req request.GetMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !codeShapeRe.MatchString(code) {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "El código debe tener 6 caracteres alfanuméricos."))
		return
	}

	rsp, err := h.sessionSvc.GetMessagesForRetrieval(c.Request.Context(), code)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// DebugSessions 列举当前所有未过期会话的摘要
// GET /api/bot/debug-sessions
// 仅用于排查问题，不含消息正文
func (h *SessionHandler) DebugSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListSessions(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{
		"count":    len(sessions),
		"sessions": sessions,
	})
}
