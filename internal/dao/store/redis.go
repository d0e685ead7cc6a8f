package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clickmediapropy/traductor-app/internal/config"
	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/pkg/constants"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

const (
	sessionKeyPrefix = "tsession:" // 会话记录键前缀
	originKeyPrefix  = "torigin:"  // 来源 → 活跃会话码 反向索引键前缀
)

// RedisStore 持久化后端
// 记录以 JSON 存储，依赖 Redis 原生 TTL 做过期，SweepExpired 为 no-op
//
// 已知的后端间行为差异（设计选择，不做静默统一）：
// 内存后端按记录的 ExpiresAt 做"创建起 1 小时"的固定过期；
// 本后端每次写入都重置原生 TTL，即"最后写入起 1 小时"的滑动过期，
// 持续追加消息的会话因此不会中途消失
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SessionStore = (*RedisStore)(nil)

// NewRedisStore 基于已有客户端创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    constants.SESSION_TTL,
	}
}

// NewRedisClient 从配置创建 Redis 客户端
func NewRedisClient(conf *config.RedisConfig) *redis.Client {
	addr := conf.Host + ":" + strconv.Itoa(conf.Port)
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Password,
		DB:       conf.Db,

		// 连接池配置
		PoolSize:     20,
		MinIdleConns: 5,
	})
}

// Put 整条记录 upsert，写入即重置 TTL（滑动过期）
// 记录自身的 ExpiresAt 晚于滑动窗口时（预置冒烟会话），按其剩余寿命设 TTL
func (s *RedisStore) Put(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "marshal session %s", session.Code)
	}

	ttl := s.ttl
	if until := time.Until(session.ExpiresAt); until > ttl {
		ttl = until
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.Code, data, ttl)
	if session.Active {
		pipe.Set(ctx, originKeyPrefix+strconv.FormatInt(session.OriginID, 10), session.Code, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis put session %s", session.Code)
	}

	// 会话关闭后释放来源槽位；索引指向别的会话时不动它
	if !session.Active {
		if err := s.clearOriginIndex(ctx, session.OriginID, session.Code); err != nil {
			return err
		}
	}
	return nil
}

// Get 按会话码读取，键不存在（含 TTL 到期被回收）返回 (nil, nil)
// 连接故障返回 CodeStoreUnavailable，绝不折叠成"不存在"
//
// 本后端的过期权威是原生 TTL：持续追加的会话每次写入都续命，
// 其记录内的 ExpiresAt 可能早已过去，这里不做 wall-clock 判定
func (s *RedisStore) Get(ctx context.Context, code string) (*model.Session, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+code).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis get session %s", code)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeCacheError, "unmarshal session %s", code)
	}
	return &sess, nil
}

// Delete 显式删除记录及其来源索引
func (s *RedisStore) Delete(ctx context.Context, code string) error {
	sess, err := s.Get(ctx, code)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, sessionKeyPrefix+code).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis delete session %s", code)
	}
	if sess != nil {
		return s.clearOriginIndex(ctx, sess.OriginID, code)
	}
	return nil
}

// FindActiveByOrigin 通过反向索引查找来源的活跃会话码
// 索引命中但记录已消失/已关闭时修正索引并返回 ""
func (s *RedisStore) FindActiveByOrigin(ctx context.Context, originID int64) (string, error) {
	key := originKeyPrefix + strconv.FormatInt(originID, 10)
	code, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis get origin index %d", originID)
	}

	sess, err := s.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if sess == nil || !sess.Active {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return "", errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis clear origin index %d", originID)
		}
		return "", nil
	}
	return code, nil
}

// ListAll 扫描所有会话记录（仅调试端点使用）
// 使用 SCAN 分批遍历，避免 KEYS 阻塞 Redis
func (s *RedisStore) ListAll(ctx context.Context) ([]*model.Session, error) {
	var result []*model.Session
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, errorx.Wrap(err, errorx.CodeStoreUnavailable, "redis scan sessions")
		}
		for _, key := range keys {
			val, err := s.client.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					continue // 扫描与读取之间被 TTL 回收
				}
				return nil, errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis get %s", key)
			}
			var sess model.Session
			if err := json.Unmarshal([]byte(val), &sess); err != nil {
				continue // 坏记录跳过，不影响其他会话的展示
			}
			result = append(result, &sess)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return result, nil
}

// SweepExpired Redis 原生 TTL 负责过期回收，这里无事可做
func (s *RedisStore) SweepExpired(_ context.Context) error {
	return nil
}

// clearOriginIndex 当来源索引仍指向指定会话时删除索引
// 读-判-删之间存在竞态窗口，但索引错指的后果只是下一次
// FindActiveByOrigin 自行修正，可以接受
func (s *RedisStore) clearOriginIndex(ctx context.Context, originID int64, code string) error {
	key := originKeyPrefix + strconv.FormatInt(originID, 10)
	current, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis get origin index %d", originID)
	}
	if current == code {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return errorx.Wrapf(err, errorx.CodeStoreUnavailable, "redis clear origin index %d", originID)
		}
	}
	return nil
}
