package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clickmediapropy/traductor-app/internal/dao/store"
	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

func newService() (*sessionService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewSessionService(st), st
}

func TestCreateSessionIdempotent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code1, existed, err := svc.CreateSession(ctx, 42)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if existed {
		t.Error("first create must report existed=false")
	}
	if len(code1) != constants.CODE_LENGTH {
		t.Errorf("code length = %d, want %d", len(code1), constants.CODE_LENGTH)
	}

	// 同一来源重复创建，必须拿到同一个码
	code2, existed, err := svc.CreateSession(ctx, 42)
	if err != nil {
		t.Fatalf("CreateSession again: %v", err)
	}
	if !existed {
		t.Error("second create must report existed=true")
	}
	if code2 != code1 {
		t.Errorf("second create returned %q, want %q", code2, code1)
	}
}

func TestCreateSessionDistinctOrigins(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	codes := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(origin int64) {
			defer wg.Done()
			code, _, err := svc.CreateSession(ctx, origin)
			if err != nil {
				t.Errorf("CreateSession(%d): %v", origin, err)
				return
			}
			mu.Lock()
			codes[code] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if len(codes) != 20 {
		t.Errorf("expected 20 distinct codes, got %d", len(codes))
	}
}

func TestAppendMessage(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code, _, _ := svc.CreateSession(ctx, 7)

	ok, count, err := svc.AppendMessage(ctx, code, model.MessageUnit{Text: "primero", Timestamp: 1})
	if err != nil || !ok {
		t.Fatalf("AppendMessage: ok=%v err=%v", ok, err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	ok, count, err = svc.AppendMessage(ctx, code, model.MessageUnit{Text: "segundo", Timestamp: 2})
	if err != nil || !ok || count != 2 {
		t.Fatalf("second append: ok=%v count=%d err=%v", ok, count, err)
	}

	// 到达顺序必须保持
	sess, err := svc.CloseSession(ctx, code)
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if sess.Messages[0].Text != "primero" || sess.Messages[1].Text != "segundo" {
		t.Errorf("arrival order not preserved: %+v", sess.Messages)
	}
}

func TestAppendAfterCloseDoesNotMutate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code, _, _ := svc.CreateSession(ctx, 8)
	_, _, _ = svc.AppendMessage(ctx, code, model.MessageUnit{Text: "dentro"})
	if _, err := svc.CloseSession(ctx, code); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	ok, _, err := svc.AppendMessage(ctx, code, model.MessageUnit{Text: "tarde"})
	if err != nil {
		t.Fatalf("AppendMessage after close: %v", err)
	}
	if ok {
		t.Error("append after close must report ok=false")
	}

	resp, err := svc.GetMessagesForRetrieval(ctx, code)
	if err != nil {
		t.Fatalf("GetMessagesForRetrieval: %v", err)
	}
	if resp.MessageCount != 1 {
		t.Errorf("closed session mutated by late append: %d messages", resp.MessageCount)
	}
}

func TestAppendToUnknownCode(t *testing.T) {
	svc, _ := newService()
	ok, _, err := svc.AppendMessage(context.Background(), "ZZZZ99", model.MessageUnit{Text: "x"})
	if err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if ok {
		t.Error("append to unknown code must report ok=false")
	}
}

func TestRetrievalStillActive(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code, _, _ := svc.CreateSession(ctx, 9)

	_, err := svc.GetMessagesForRetrieval(ctx, code)
	if err == nil {
		t.Fatal("expected error for active session")
	}
	if errorx.GetCode(err) != errorx.CodeSessionActive {
		t.Errorf("code = %d, want CodeSessionActive", errorx.GetCode(err))
	}
}

func TestRetrievalAfterClose(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code, _, _ := svc.CreateSession(ctx, 10)
	_, _, _ = svc.AppendMessage(ctx, code, model.MessageUnit{Text: "hola", Attribution: "Ana"})
	if _, err := svc.CloseSession(ctx, code); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	resp, err := svc.GetMessagesForRetrieval(ctx, code)
	if err != nil {
		t.Fatalf("GetMessagesForRetrieval: %v", err)
	}
	if resp.Code != code || resp.MessageCount != 1 || resp.Messages[0].Attribution != "Ana" {
		t.Errorf("unexpected respond: %+v", resp)
	}
}

func TestRetrievalUnknownCode(t *testing.T) {
	svc, _ := newService()
	_, err := svc.GetMessagesForRetrieval(context.Background(), "AAAA22")
	if err == nil {
		t.Fatal("expected error for unknown code")
	}
	if !errorx.IsNotFound(err) {
		t.Errorf("expected CodeNotFound, got code %d", errorx.GetCode(err))
	}
}

func TestRetrievalExpiredSession(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	// 直接写入一条已过期的已关闭会话
	now := time.Now()
	_ = st.Put(ctx, &model.Session{
		Code:      "OLD222",
		OriginID:  11,
		Messages:  []model.MessageUnit{{Text: "viejo"}},
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
		Active:    false,
	})

	_, err := svc.GetMessagesForRetrieval(ctx, "OLD222")
	if !errorx.IsNotFound(err) {
		t.Errorf("expired session must read as not found, got %v", err)
	}
}

func TestCloseUnknownCode(t *testing.T) {
	svc, _ := newService()
	_, err := svc.CloseSession(context.Background(), "BBBB33")
	if !errorx.IsNotFound(err) {
		t.Errorf("expected CodeNotFound, got %v", err)
	}
}

func TestNewSessionAfterClose(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	code1, _, _ := svc.CreateSession(ctx, 12)
	_, _ = svc.CloseSession(ctx, code1)

	// 关闭释放来源槽位，新建必须产生新码
	code2, existed, err := svc.CreateSession(ctx, 12)
	if err != nil {
		t.Fatalf("CreateSession after close: %v", err)
	}
	if existed {
		t.Error("create after close must report existed=false")
	}
	if code2 == code1 {
		t.Error("new session reused the old code")
	}

	// 旧会话仍然可以取回
	if _, err := svc.GetMessagesForRetrieval(ctx, code1); err != nil {
		t.Errorf("old closed session no longer retrievable: %v", err)
	}
}

func TestFixtureRetrievable(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	if err := store.SeedFixture(ctx, st); err != nil {
		t.Fatalf("SeedFixture: %v", err)
	}

	resp, err := svc.GetMessagesForRetrieval(ctx, constants.FIXTURE_CODE)
	if err != nil {
		t.Fatalf("fixture retrieval: %v", err)
	}
	if resp.MessageCount != 3 {
		t.Errorf("fixture message count = %d, want 3", resp.MessageCount)
	}
}
