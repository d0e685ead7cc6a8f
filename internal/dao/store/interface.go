// Package store 提供会话存储层
// 三种后端（进程内存 / 进程共享内存 / Redis 持久化）实现同一契约，
// 生命周期与一致性差异由各实现内部消化，对上层呈现统一语义
package store

import (
	"context"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

// SessionStore 会话存储接口
// 除 FindActiveByOrigin / ListAll / SweepExpired 外，所有操作以会话码为键
//
// 错误语义：仅在后端连接故障时返回错误（errorx.CodeStoreUnavailable）；
// "记录不存在"不是错误，Get 返回 (nil, nil)、FindActiveByOrigin 返回 ("", nil)。
// 调用方必须区分"存储挂了"和"会话不存在"
type SessionStore interface {
	// Put 整条记录 upsert
	// 内存后端依赖记录自身的 ExpiresAt 做惰性过期；
	// Redis 后端每次写入重置原生 TTL（滑动过期，写入即续命）
	Put(ctx context.Context, session *model.Session) error

	// Get 按会话码读取记录，不存在或已过期返回 (nil, nil)
	// 无原生 TTL 的后端在读取时惰性删除过期记录
	Get(ctx context.Context, code string) (*model.Session, error)

	// Delete 显式删除记录
	Delete(ctx context.Context, code string) error

	// FindActiveByOrigin 查找来源当前的活跃会话码，无则返回 ""
	// Redis 后端必须走反向索引（torigin:<id> → code），全量扫描不可接受；
	// 内存后端索引或扫描均可
	FindActiveByOrigin(ctx context.Context, originID int64) (string, error)

	// ListAll 返回所有未过期的记录（仅用于调试/自检端点）
	ListAll(ctx context.Context) ([]*model.Session, error)

	// SweepExpired 尽力清理过期记录
	// 有原生 TTL 的后端为 no-op
	SweepExpired(ctx context.Context) error
}
