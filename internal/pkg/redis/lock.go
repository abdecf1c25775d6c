package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunLock 基于 Redis 的单写者锁，防止多个进程同时写同一批文件
type RunLock struct {
	key string
	ttl time.Duration
}

func NewRunLock(key string, ttl time.Duration) *RunLock {
	return &RunLock{key: key, ttl: ttl}
}

// Acquire 获取不到锁时 ok 为 false
func (l *RunLock) Acquire(ctx context.Context) (release func(), ok bool, err error) {
	token := uuid.NewString()
	ok, err = TryLock(ctx, l.key, token, l.ttl, 1)
	if err != nil || !ok {
		return func() {}, ok, err
	}
	return func() { UnLock(context.Background(), l.key, token) }, true, nil
}
