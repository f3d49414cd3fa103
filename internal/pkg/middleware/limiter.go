// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/core"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

const (
	// idleLimiterTTL 超过该时间未访问的客户端限流器会被清理
	idleLimiterTTL = 10 * time.Minute
	// limiterSweepInterval 两次清理之间的最短间隔
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter 按客户端 IP 的令牌桶限流
type IPLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	swept   time.Time
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewIPLimiter 每个 IP 每秒 perSecond 个请求，突发 burst
func NewIPLimiter(perSecond float64, burst int) *IPLimiter {
	return &IPLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow 判断 key 是否还有令牌，每隔 limiterSweepInterval 清理一次空闲的限流器
func (l *IPLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) >= limiterSweepInterval {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (l *IPLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiterTTL {
			delete(l.clients, k)
		}
	}
	l.swept = now
}

// Limit 超出限额时返回 429
func Limit(l *IPLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			core.AbortWithError(c, errors.WithCode(code.ErrTooManyRequests, "Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
