package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clickmediapropy/traductor-app/internal/dao/store"
	"github.com/clickmediapropy/traductor-app/internal/dto/respond"
	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
	"github.com/clickmediapropy/traductor-app/pkg/util/random"
)

// sessionService 会话生命周期业务逻辑实现
// 状态机：NONE → ACTIVE → CLOSED → GONE（过期或删除）
// 追加仅在 ACTIVE 合法，取回仅在 CLOSED 合法，GONE 不可逆
type sessionService struct {
	store store.SessionStore
}

// NewSessionService 构造函数，注入存储依赖
func NewSessionService(st store.SessionStore) *sessionService {
	return &sessionService{store: st}
}

// CreateSession 为来源创建会话
// 幂等性保证：来源已有活跃会话时不再新建，直接返回现有会话码
// （existed=true），连续两次 /new 拿到的是同一个码
//
// 已知竞态：FindActiveByOrigin 与 Put 之间是 check-then-act，
// 同一来源并发创建时可能各建一个会话。窗口极小、后果轻微
// （反向索引收敛到最后写入者），按已接受风险记录，不加分布式锁
func (s *sessionService) CreateSession(ctx context.Context, originID int64) (string, bool, error) {
	existing, err := s.store.FindActiveByOrigin(ctx, originID)
	if err != nil {
		zap.L().Error("查询来源活跃会话失败",
			zap.Int64("origin_id", originID),
			zap.Error(err),
		)
		return "", false, err
	}
	if existing != "" {
		zap.L().Info("来源已有活跃会话，返回现有会话码",
			zap.Int64("origin_id", originID),
			zap.String("code", existing),
		)
		return existing, true, nil
	}

	now := time.Now()
	sess := &model.Session{
		Code:      random.GenerateSessionCode(),
		OriginID:  originID,
		Messages:  []model.MessageUnit{},
		CreatedAt: now,
		ExpiresAt: now.Add(constants.SESSION_TTL),
		Active:    true,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		zap.L().Error("写入新会话失败",
			zap.Int64("origin_id", originID),
			zap.String("code", sess.Code),
			zap.Error(err),
		)
		return "", false, err
	}

	zap.L().Info("会话创建成功",
		zap.Int64("origin_id", originID),
		zap.String("code", sess.Code),
	)
	return sess.Code, false, nil
}

// ActiveSessionCode 查询来源当前的活跃会话码，无则返回 ""
// 采集适配器用它决定转发消息落到哪个会话
func (s *sessionService) ActiveSessionCode(ctx context.Context, originID int64) (string, error) {
	code, err := s.store.FindActiveByOrigin(ctx, originID)
	if err != nil {
		zap.L().Error("查询来源活跃会话失败",
			zap.Int64("origin_id", originID),
			zap.Error(err),
		)
	}
	return code, err
}

// AppendMessage 向活跃会话追加一条消息
// 会话不存在、已过期或已关闭时返回 ok=false（静默失败，由调用方决定提示），
// 仅存储故障返回 error。追加保持到达顺序并整条回写；
// count 为追加后的消息总数，用于确认文案
func (s *sessionService) AppendMessage(ctx context.Context, code string, unit model.MessageUnit) (bool, int, error) {
	sess, err := s.store.Get(ctx, code)
	if err != nil {
		zap.L().Error("读取会话失败", zap.String("code", code), zap.Error(err))
		return false, 0, err
	}
	if sess == nil || !sess.Active {
		return false, 0, nil
	}

	sess.Messages = append(sess.Messages, unit)
	if err := s.store.Put(ctx, sess); err != nil {
		zap.L().Error("回写会话消息失败", zap.String("code", code), zap.Error(err))
		return false, 0, err
	}
	return true, len(sess.Messages), nil
}

// CloseSession 关闭会话
// 置 Active=false 并持久化，来源槽位随之释放（允许该来源新建会话）；
// 返回关闭后的记录，调用方用它生成带消息计数的确认文案
// 会话不存在时返回 CodeNotFound
func (s *sessionService) CloseSession(ctx context.Context, code string) (*model.Session, error) {
	sess, err := s.store.Get(ctx, code)
	if err != nil {
		zap.L().Error("读取会话失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if sess == nil {
		return nil, errorx.Newf(errorx.CodeNotFound, "会话 %s 不存在或已过期", code)
	}

	sess.Active = false
	if err := s.store.Put(ctx, sess); err != nil {
		zap.L().Error("持久化关闭状态失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	zap.L().Info("会话已关闭",
		zap.String("code", code),
		zap.Int("message_count", len(sess.Messages)),
	)
	return sess, nil
}

// GetMessagesForRetrieval 取回端读取会话消息
// 核心守卫：仅当会话存在、未过期且已关闭时返回消息，
// 防止 Web 端读到采集进行中的半截会话。三种结果严格区分：
//   - 成功: 完整消息列表 + 时间戳
//   - CodeNotFound: 不存在或已过期
//   - CodeSessionActive: 存在但尚未关闭
func (s *sessionService) GetMessagesForRetrieval(ctx context.Context, code string) (*respond.GetMessagesRespond, error) {
	sess, err := s.store.Get(ctx, code)
	if err != nil {
		zap.L().Error("读取会话失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if sess == nil {
		return nil, errorx.New(errorx.CodeNotFound, "El código no existe, expiró (1 hora) o ya fue usado.")
	}
	if sess.Active {
		return nil, errorx.New(errorx.CodeSessionActive, "La sesión todavía está activa. Enviá /done al bot primero.")
	}

	return &respond.GetMessagesRespond{
		Code:         sess.Code,
		MessageCount: len(sess.Messages),
		Messages:     sess.Messages,
		CreatedAt:    sess.CreatedAt,
		ExpiresAt:    sess.ExpiresAt,
	}, nil
}

// ListSessions 调试用会话摘要列表
func (s *sessionService) ListSessions(ctx context.Context) ([]respond.SessionSummaryRespond, error) {
	sessions, err := s.store.ListAll(ctx)
	if err != nil {
		zap.L().Error("列举会话失败", zap.Error(err))
		return nil, err
	}

	result := make([]respond.SessionSummaryRespond, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, respond.SessionSummaryRespond{
			Code:         sess.Code,
			OriginID:     sess.OriginID,
			MessageCount: len(sess.Messages),
			Active:       sess.Active,
			CreatedAt:    sess.CreatedAt,
			ExpiresAt:    sess.ExpiresAt,
		})
	}
	return result, nil
}

// SweepExpired 尽力清理过期会话
// webhook 每次进来顺带触发；Redis 后端为 no-op
func (s *sessionService) SweepExpired(ctx context.Context) error {
	return s.store.SweepExpired(ctx)
}
