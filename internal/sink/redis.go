package sink

import (
	"context"
	"fmt"
	"time"

	"gov-ix-sol/internal/logic/pipeline"

	"github.com/redis/go-redis/v9"
)

// RedisSink 把编码文本写到 <prefix>:<processor_id>，审批面板按 program 读取
type RedisSink struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSink ttl<=0 表示不过期
func NewRedisSink(rdb *redis.Client, prefix string, ttl time.Duration) *RedisSink {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisSink{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) Name() string { return "redis" }

// Key 构造 Redis key
func (s *RedisSink) Key(out *pipeline.Encoded) string {
	return fmt.Sprintf("%s:%s", s.prefix, out.Record.ProcessorID)
}

func (s *RedisSink) Emit(ctx context.Context, out *pipeline.Encoded) error {
	if err := s.rdb.Set(ctx, s.Key(out), out.Text, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	return s.rdb.Close()
}
