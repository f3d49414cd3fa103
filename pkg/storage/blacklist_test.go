// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, b.Revoke(ctx, "jti-expired", 0))

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = b.IsRevoked(ctx, "jti-expired")
	assert.False(t, revoked)

	now = now.Add(time.Minute)
	revoked, _ = b.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
	assert.Empty(t, b.entries)
}

func TestMemoryBlacklist_SweepInterval(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	b.now = func() time.Time { return now }

	require.NoError(t, b.Revoke(ctx, "short", time.Second))
	require.NoError(t, b.Revoke(ctx, "long", time.Hour))
	_, _ = b.IsRevoked(ctx, "long")

	// 过期条目在间隔内仍留在表中，但已不算吊销
	now = start.Add(2 * time.Second)
	revoked, _ := b.IsRevoked(ctx, "short")
	assert.False(t, revoked)
	assert.Len(t, b.entries, 2)

	now = start.Add(memorySweepInterval)
	revoked, _ = b.IsRevoked(ctx, "long")
	assert.True(t, revoked)
	assert.Len(t, b.entries, 1)
}

func TestRedisBlacklist_Key(t *testing.T) {
	assert.Equal(t, DefaultBlacklistPrefix+"abc", NewRedisBlacklist(nil, "").key("abc"))
	assert.Equal(t, "custom:abc", NewRedisBlacklist(nil, "custom:").key("abc"))
}

func TestNewClient_NoAddress(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{})
	assert.Error(t, err)
}
