// Package service 提供业务逻辑层
// 本文件定义 Service 层接口，Handler 与 Gateway 依赖接口而非具体实现
package service

import (
	"context"

	"github.com/clickmediapropy/traductor-app/internal/dto/respond"
	"github.com/clickmediapropy/traductor-app/internal/model"
)

// SessionService 会话生命周期服务接口
// 状态机：NONE → ACTIVE → CLOSED → GONE，详见实现注释
type SessionService interface {
	// CreateSession 创建会话；来源已有活跃会话时幂等返回现有会话码（existed=true）
	CreateSession(ctx context.Context, originID int64) (code string, existed bool, err error)
	// ActiveSessionCode 查询来源当前的活跃会话码，无则返回 ""
	ActiveSessionCode(ctx context.Context, originID int64) (string, error)
	// AppendMessage 向活跃会话追加消息；前置条件不满足时 ok=false（不报错）
	// count 为追加后的消息总数
	AppendMessage(ctx context.Context, code string, unit model.MessageUnit) (ok bool, count int, err error)
	// CloseSession 关闭会话并返回关闭后的记录；不存在时返回 CodeNotFound
	CloseSession(ctx context.Context, code string) (*model.Session, error)
	// GetMessagesForRetrieval 取回端读取；区分成功 / CodeNotFound / CodeSessionActive
	GetMessagesForRetrieval(ctx context.Context, code string) (*respond.GetMessagesRespond, error)
	// ListSessions 调试用会话摘要
	ListSessions(ctx context.Context) ([]respond.SessionSummaryRespond, error)
	// SweepExpired 尽力清理过期会话
	SweepExpired(ctx context.Context) error
}

// TranslateService 翻译编排服务接口
type TranslateService interface {
	// TranslateAll 按输入顺序批量翻译，单条失败以错误标记体现，不返回整体错误
	TranslateAll(ctx context.Context, messages []model.ParsedMessage) []model.ParsedMessage
}
