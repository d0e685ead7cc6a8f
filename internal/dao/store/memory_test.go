package store

import (
	"context"
	"testing"
	"time"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

func newTestSession(code string, originID int64, active bool) *model.Session {
	now := time.Now()
	return &model.Session{
		Code:      code,
		OriginID:  originID,
		Messages:  []model.MessageUnit{},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		Active:    active,
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess := newTestSession("ABC234", 100, true)
	sess.Messages = append(sess.Messages, model.MessageUnit{Text: "hola", Attribution: "Ana", Timestamp: 1})
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "ABC234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.Code != "ABC234" || got.OriginID != 100 || !got.Active {
		t.Errorf("unexpected session: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != "hola" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestMemoryStoreGetAbsent(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Get(context.Background(), "NOPE22")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent code, got %+v", got)
	}
}

func TestMemoryStoreCloneIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess := newTestSession("CLN234", 7, true)
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// 调用方在取回的副本上追加，存储内的记录不能被污染
	got, _ := s.Get(ctx, "CLN234")
	got.Messages = append(got.Messages, model.MessageUnit{Text: "externo"})

	again, _ := s.Get(ctx, "CLN234")
	if len(again.Messages) != 0 {
		t.Errorf("store record mutated through returned copy: %+v", again.Messages)
	}
}

func TestMemoryStoreExpiredTreatedAsAbsent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess := newTestSession("EXP234", 9, true)
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "EXP234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expired session should read as absent, got %+v", got)
	}

	code, err := s.FindActiveByOrigin(ctx, 9)
	if err != nil {
		t.Fatalf("FindActiveByOrigin: %v", err)
	}
	if code != "" {
		t.Errorf("expired session still indexed by origin: %q", code)
	}
}

func TestMemoryStoreOriginIndex(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess := newTestSession("ORG234", 55, true)
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	code, err := s.FindActiveByOrigin(ctx, 55)
	if err != nil {
		t.Fatalf("FindActiveByOrigin: %v", err)
	}
	if code != "ORG234" {
		t.Errorf("expected ORG234, got %q", code)
	}

	// 关闭会话后来源槽位必须释放
	sess.Active = false
	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("Put closed: %v", err)
	}
	code, err = s.FindActiveByOrigin(ctx, 55)
	if err != nil {
		t.Fatalf("FindActiveByOrigin after close: %v", err)
	}
	if code != "" {
		t.Errorf("origin slot not released after close: %q", code)
	}

	// 关闭后的会话仍可按码读取
	got, _ := s.Get(ctx, "ORG234")
	if got == nil || got.Active {
		t.Errorf("closed session should remain readable: %+v", got)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, newTestSession("DEL234", 3, true)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "DEL234"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, _ := s.Get(ctx, "DEL234")
	if got != nil {
		t.Errorf("deleted session still readable: %+v", got)
	}
	code, _ := s.FindActiveByOrigin(ctx, 3)
	if code != "" {
		t.Errorf("deleted session still indexed: %q", code)
	}
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	live := newTestSession("LIV234", 1, true)
	dead := newTestSession("DED234", 2, true)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	_ = s.Put(ctx, live)
	_ = s.Put(ctx, dead)

	if err := s.SweepExpired(ctx); err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Code != "LIV234" {
		t.Errorf("expected only LIV234 to survive sweep, got %+v", all)
	}
}

func TestSharedSingleton(t *testing.T) {
	if Shared() != Shared() {
		t.Error("Shared must return the same instance")
	}
}

func TestSeedFixture(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := SeedFixture(ctx, s); err != nil {
		t.Fatalf("SeedFixture: %v", err)
	}

	got, err := s.Get(ctx, "TEST99")
	if err != nil {
		t.Fatalf("Get fixture: %v", err)
	}
	if got == nil {
		t.Fatal("fixture session missing")
	}
	if got.Active {
		t.Error("fixture session must be closed so the web side can retrieve it")
	}
	if len(got.Messages) != 3 {
		t.Errorf("expected 3 fixture messages, got %d", len(got.Messages))
	}
	if !got.ExpiresAt.After(time.Now().AddDate(1, 0, 0)) {
		t.Errorf("fixture should effectively never expire, got %v", got.ExpiresAt)
	}
}
