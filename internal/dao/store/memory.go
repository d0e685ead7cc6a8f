package store

import (
	"context"
	"sync"
	"time"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

// MemoryStore 进程内存后端
// 互斥锁保护的 map + 来源反向索引，读取时惰性过期
// 每个实例独立，进程重启即丢失；适合开发环境和测试
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session // code → session
	origins  map[int64]string          // originId → 活跃会话 code
}

// 编译期接口断言
var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore 创建一个空的内存存储实例
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.Session),
		origins:  make(map[int64]string),
	}
}

// Put 整条记录 upsert，并同步维护来源索引
func (s *MemoryStore) Put(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneSession(session)
	s.sessions[cp.Code] = cp
	if cp.Active {
		s.origins[cp.OriginID] = cp.Code
	} else if s.origins[cp.OriginID] == cp.Code {
		// 会话关闭即释放来源槽位，允许该来源新建会话
		delete(s.origins, cp.OriginID)
	}
	return nil
}

// Get 按会话码读取，过期记录视同不存在并顺手删除
func (s *MemoryStore) Get(_ context.Context, code string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[code]
	if !ok {
		return nil, nil
	}
	if Expired(sess, time.Now()) {
		s.removeLocked(code)
		return nil, nil
	}
	return cloneSession(sess), nil
}

// Delete 显式删除记录
func (s *MemoryStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(code)
	return nil
}

// FindActiveByOrigin 通过反向索引查找来源的活跃会话码
// 索引命中但记录已过期/已关闭时修正索引并返回 ""
func (s *MemoryStore) FindActiveByOrigin(_ context.Context, originID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.origins[originID]
	if !ok {
		return "", nil
	}
	sess, ok := s.sessions[code]
	if !ok || !sess.Active {
		delete(s.origins, originID)
		return "", nil
	}
	if Expired(sess, time.Now()) {
		s.removeLocked(code)
		return "", nil
	}
	return code, nil
}

// ListAll 返回所有未过期记录（调试用）
func (s *MemoryStore) ListAll(_ context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	result := make([]*model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if !Expired(sess, now) {
			result = append(result, cloneSession(sess))
		}
	}
	return result, nil
}

// SweepExpired 全表清理过期记录
func (s *MemoryStore) SweepExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for code, sess := range s.sessions {
		if Expired(sess, now) {
			s.removeLocked(code)
		}
	}
	return nil
}

// removeLocked 删除记录并清理其来源索引，调用方需持有写锁
func (s *MemoryStore) removeLocked(code string) {
	if sess, ok := s.sessions[code]; ok {
		if s.origins[sess.OriginID] == code {
			delete(s.origins, sess.OriginID)
		}
		delete(s.sessions, code)
	}
}

// cloneSession 深拷贝会话记录
// 存储内外不共享 Messages 底层数组，防止调用方追加时互相污染
func cloneSession(s *model.Session) *model.Session {
	cp := *s
	cp.Messages = make([]model.MessageUnit, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}
