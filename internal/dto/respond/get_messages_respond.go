package respond

import (
	"time"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

// GetMessagesRespond 取回端成功响应
// 仅已关闭且未过期的会话可达此响应
type GetMessagesRespond struct {
	Code         string              `json:"code"`         // 会话码
	MessageCount int                 `json:"messageCount"` // 消息条数
	Messages     []model.MessageUnit `json:"messages"`     // 按到达顺序排列的消息
	CreatedAt    time.Time           `json:"createdAt"`    // 创建时间
	ExpiresAt    time.Time           `json:"expiresAt"`    // 过期时间
}

// SessionSummaryRespond 调试端点的会话摘要（不含消息正文）
type SessionSummaryRespond struct {
	Code         string    `json:"code"`
	OriginID     int64     `json:"originId"`
	MessageCount int       `json:"messageCount"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
