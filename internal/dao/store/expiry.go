package store

import (
	"time"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

// Expired 判断会话是否已过期
// 过期判定集中在此唯一入口，所有后端与上层统一引用，
// 避免 wall-clock 比较逻辑散落各处后各自漂移
func Expired(s *model.Session, now time.Time) bool {
	return now.After(s.ExpiresAt)
}
