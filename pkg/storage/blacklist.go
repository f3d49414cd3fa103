// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultBlacklistPrefix 吊销名单键前缀
const DefaultBlacklistPrefix = "vaxcenter:jwt:revoked:"

// Blacklist 已注销令牌的名单，键为令牌的 jti，过期时间与令牌一致
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist 基于 Redis 的吊销名单，多实例共享
type RedisBlacklist struct {
	client redis.UniversalClient
	prefix string
}

var _ Blacklist = (*RedisBlacklist)(nil)

// NewRedisBlacklist prefix 为空时使用 DefaultBlacklistPrefix
func NewRedisBlacklist(client redis.UniversalClient, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = DefaultBlacklistPrefix
	}
	return &RedisBlacklist{client: client, prefix: prefix}
}

func (b *RedisBlacklist) key(jti string) string {
	return b.prefix + jti
}

// Revoke ttl 不大于 0 时令牌已过期，无需记录
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.key(jti), "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.client.Get(ctx, b.key(jti)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}

// MemoryBlacklist 进程内吊销名单，未配置 Redis 时使用
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	swept   time.Time
	now     func() time.Time
}

// memorySweepInterval 两次清理过期条目之间的最短间隔
const memorySweepInterval = time.Minute

var _ Blacklist = (*MemoryBlacklist)(nil)

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = b.now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.swept) >= memorySweepInterval {
		for k, exp := range b.entries {
			if !now.Before(exp) {
				delete(b.entries, k)
			}
		}
		b.swept = now
	}
	exp, ok := b.entries[jti]
	return ok && now.Before(exp), nil
}
