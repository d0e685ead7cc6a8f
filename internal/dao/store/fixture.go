package store

import (
	"context"
	"time"

	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
)

// SeedFixture 写入预置冒烟测试会话
// 代码固定为 TEST99：已关闭、远期过期，携带 3 条固定消息，
// 无需经过机器人采集即可在取回端点验证整条链路
// 启动时对所选后端调用一次；重复写入等价于刷新
func SeedFixture(ctx context.Context, s SessionStore) error {
	now := time.Now()
	fixture := &model.Session{
		Code:      constants.FIXTURE_CODE,
		OriginID:  0,
		CreatedAt: now,
		ExpiresAt: now.AddDate(10, 0, 0),
		Active:    false,
		Messages: []model.MessageUnit{
			{
				Text:            "教授: 今天市场行情很好，建议大家关注",
				Attribution:     "Prueba",
				Timestamp:       now.Unix(),
				OriginMessageID: 1,
			},
			{
				Text:            "30(女): 我同意教授的看法",
				Attribution:     "Prueba",
				Timestamp:       now.Unix(),
				OriginMessageID: 2,
			},
			{
				Text:            "32: 好的，我会注意",
				Attribution:     "Prueba",
				Timestamp:       now.Unix(),
				OriginMessageID: 3,
			},
		},
	}
	return s.Put(ctx, fixture)
}
