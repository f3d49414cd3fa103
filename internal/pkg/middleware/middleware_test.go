// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), Context())
	var seen, logKey string
	engine.GET("/ping", func(c *gin.Context) {
		seen = GetRequestIDFromContext(c)
		logKey = c.GetString(log.KeyRequestID)
		c.Status(http.StatusNoContent)
	})

	t.Run("生成请求ID", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
		rid := w.Header().Get(XRequestIDKey)
		assert.Len(t, rid, 36)
		assert.Equal(t, rid, seen)
		assert.Equal(t, rid, logKey)
	})

	t.Run("沿用调用方的请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(XRequestIDKey, "rid-from-client")
		w := serve(engine, req)
		assert.Equal(t, "rid-from-client", w.Header().Get(XRequestIDKey))
		assert.Equal(t, "rid-from-client", seen)
	})
}

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(1, 2)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))

	now = now.Add(idleLimiterTTL + time.Second)
	l.Allow("10.0.0.3")
	assert.Len(t, l.clients, 1)
}

func TestIPLimiter_SweepInterval(t *testing.T) {
	l := NewIPLimiter(1, 1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	l.clients["10.0.0.1"].lastSeen = start.Add(-idleLimiterTTL - time.Second)

	// 间隔内不清理，即使 10.0.0.1 已经空闲
	now = start.Add(limiterSweepInterval / 2)
	l.Allow("10.0.0.2")
	assert.Len(t, l.clients, 2)

	now = start.Add(limiterSweepInterval)
	l.Allow("10.0.0.2")
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestLimit(t *testing.T) {
	engine := gin.New()
	engine.POST("/api/auth/signin", Limit(NewIPLimiter(0.001, 1)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := serve(engine, httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := serve(engine, httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	var body struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, code.ErrTooManyRequests, body.Code)
	assert.Equal(t, "Too many requests, please try again later", body.Error)
}

func TestSecureAndNoCache(t *testing.T) {
	engine := gin.New()
	engine.Use(Secure, NoCache)
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestCors(t *testing.T) {
	engine := gin.New()
	engine.Use(Cors([]string{"https://vaxcenter.example.com"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://vaxcenter.example.com")
	w := serve(engine, req)
	assert.Equal(t, "https://vaxcenter.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(engine, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
