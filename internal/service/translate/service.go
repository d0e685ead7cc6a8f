// Package translate 提供翻译编排
// 将解析后的消息列表扇出给翻译后端：每条消息两次调用（直译 + 语体化），
// 分批限流、单条失败隔离、输出顺序严格等于输入顺序
package translate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
)

// Backend 翻译后端协作方接口
// 每个方法对应一次独立的网络调用，均可能单独失败
type Backend interface {
	// TranslateLiteral 直译：不做任何风格适配
	TranslateLiteral(ctx context.Context, text string) (string, error)
	// TranslateStyled 语体化翻译：按角色（及客户性别）的风格规则产出
	TranslateStyled(ctx context.Context, persona model.Persona, gender model.Gender, text string) (string, error)
}

// translateService 翻译编排实现
type translateService struct {
	backend Backend
	timeout time.Duration // 单次后端调用的超时上限
}

// NewTranslateService 构造函数
// timeoutSeconds <= 0 时取默认超时
func NewTranslateService(backend Backend, timeoutSeconds int) *translateService {
	if timeoutSeconds <= 0 {
		timeoutSeconds = constants.TRANSLATE_TIMEOUT
	}
	return &translateService{
		backend: backend,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// TranslateAll 批量翻译
// 以固定批大小（5）分批处理以对齐后端限流：批内并发派发，整批等齐再进下一批。
// 单条消息内两次调用串行：先直译、后语体化。
// 任一调用失败时该条消息的对应字段写入可见的错误标记，绝不中断兄弟消息；
// 每次调用带超时兜底，卡死的调用按同样的错误标记处理，不会悬死整批
func (s *translateService) TranslateAll(ctx context.Context, messages []model.ParsedMessage) []model.ParsedMessage {
	results := make([]model.ParsedMessage, len(messages))
	copy(results, messages)

	for start := 0; start < len(results); start += constants.TRANSLATE_BATCH_SIZE {
		end := start + constants.TRANSLATE_BATCH_SIZE
		if end > len(results) {
			end = len(results)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				s.translateOne(ctx, &results[idx])
			}(i)
		}
		wg.Wait()
	}
	return results
}

// translateOne 翻译单条消息：直译完成后才发起语体化调用
// 结果按下标写回，批内各调用的完成先后不影响输出顺序
func (s *translateService) translateOne(ctx context.Context, msg *model.ParsedMessage) {
	literal, err := s.callWithTimeout(ctx, func(c context.Context) (string, error) {
		return s.backend.TranslateLiteral(c, msg.Original)
	})
	if err != nil {
		zap.L().Warn("直译调用失败",
			zap.Int("message_id", msg.ID),
			zap.Error(err),
		)
		literal = errorMarker(err)
	}
	msg.LiteralTranslation = literal

	styled, err := s.callWithTimeout(ctx, func(c context.Context) (string, error) {
		return s.backend.TranslateStyled(c, msg.Type, msg.Gender, msg.Original)
	})
	if err != nil {
		zap.L().Warn("语体化翻译调用失败",
			zap.Int("message_id", msg.ID),
			zap.String("persona", string(msg.Type)),
			zap.Error(err),
		)
		styled = errorMarker(err)
	}
	msg.Translation = styled
}

// callWithTimeout 给单次后端调用套上超时
func (s *translateService) callWithTimeout(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return call(timeoutCtx)
}

// errorMarker 单条失败时写入结果字段的可见错误标记
func errorMarker(err error) string {
	return fmt.Sprintf("[Error: %v]", err)
}
