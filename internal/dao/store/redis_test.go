package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
)

func newRedisTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func TestRedisStorePutGet(t *testing.T) {
	s, _ := newRedisTestStore(t)
	ctx := context.Background()

	sess := newTestSession("RED234", 70, true)
	sess.Messages = append(sess.Messages, model.MessageUnit{Text: "hola", Attribution: "Ana", Timestamp: 1})
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "RED234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Code != "RED234" || len(got.Messages) != 1 {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestRedisStoreSlidingExpiry(t *testing.T) {
	s, mr := newRedisTestStore(t)
	ctx := context.Background()

	// 超过创建后 1 小时但仍在活跃追加的会话：
	// 记录内的 ExpiresAt 已成过去时，但刚写入过，原生 TTL 刚被重置
	now := time.Now()
	sess := &model.Session{
		Code:      "SLD234",
		OriginID:  71,
		Messages:  []model.MessageUnit{{Text: "viejo pero vivo"}},
		CreatedAt: now.Add(-61 * time.Minute),
		ExpiresAt: now.Add(-time.Minute),
		Active:    true,
	}
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// 写入确实重置了原生 TTL
	if ttl := mr.TTL(sessionKeyPrefix + "SLD234"); ttl < 50*time.Minute {
		t.Fatalf("native TTL not reset on write: %v", ttl)
	}

	// 滑动过期下该会话必须仍可读取
	got, err := s.Get(ctx, "SLD234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("freshly-written session read as absent despite live native TTL")
	}

	// 来源索引同样可达
	code, err := s.FindActiveByOrigin(ctx, 71)
	if err != nil {
		t.Fatalf("FindActiveByOrigin: %v", err)
	}
	if code != "SLD234" {
		t.Errorf("origin index lost the session: %q", code)
	}
}

func TestRedisStoreNativeTTLEviction(t *testing.T) {
	s, mr := newRedisTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, newTestSession("EVC234", 72, true)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// 超过滑动窗口无任何写入：原生 TTL 负责回收
	mr.FastForward(2 * time.Hour)

	got, err := s.Get(ctx, "EVC234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("session survived native TTL: %+v", got)
	}
	code, err := s.FindActiveByOrigin(ctx, 72)
	if err != nil {
		t.Fatalf("FindActiveByOrigin: %v", err)
	}
	if code != "" {
		t.Errorf("origin index survived native TTL: %q", code)
	}
}

func TestRedisStoreFixtureTTLCoversExpiry(t *testing.T) {
	s, mr := newRedisTestStore(t)
	ctx := context.Background()

	if err := SeedFixture(ctx, s); err != nil {
		t.Fatalf("SeedFixture: %v", err)
	}

	// 预置会话的 TTL 必须覆盖其远期 ExpiresAt，不受滑动窗口截断
	if ttl := mr.TTL(sessionKeyPrefix + constants.FIXTURE_CODE); ttl <= constants.SESSION_TTL {
		t.Fatalf("fixture TTL truncated to sliding window: %v", ttl)
	}

	got, err := s.Get(ctx, constants.FIXTURE_CODE)
	if err != nil {
		t.Fatalf("Get fixture: %v", err)
	}
	if got == nil || got.Active || len(got.Messages) != 3 {
		t.Errorf("unexpected fixture: %+v", got)
	}
}

func TestRedisStoreOriginIndexRelease(t *testing.T) {
	s, _ := newRedisTestStore(t)
	ctx := context.Background()

	sess := newTestSession("RIX234", 73, true)
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	sess.Active = false
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put closed: %v", err)
	}

	code, err := s.FindActiveByOrigin(ctx, 73)
	if err != nil {
		t.Fatalf("FindActiveByOrigin: %v", err)
	}
	if code != "" {
		t.Errorf("origin slot not released after close: %q", code)
	}

	// 已关闭会话仍可按码读取
	got, err := s.Get(ctx, "RIX234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Active {
		t.Errorf("closed session should remain readable: %+v", got)
	}
}
