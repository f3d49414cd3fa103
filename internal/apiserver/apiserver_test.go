// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store/mysql"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/db"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/httpclient"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/storage"
)

const testPassword = "Vaccine@2025"

type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type tokenData struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
}

func newTestEngine(t *testing.T, limiter *middleware.IPLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(sqlite.Open("file::memory:"), &db.Options{MaxOpenConnections: 1, LogLevel: 1})
	require.NoError(t, err)
	factory, err := mysql.NewFactory(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Close() })

	jwtOpts := genericoptions.NewJwtOptions()
	jwtOpts.Key = "unit-test-signing-key"

	g := gin.New()
	require.NoError(t, initRouter(g, routerDeps{
		store:     factory,
		blacklist: storage.NewMemoryBlacklist(),
		jwt:       jwtOpts,
		limiter:   limiter,
	}))

	return g
}

func do(t *testing.T, g *gin.Engine, method, path string, body interface{}, header map[string]string) (int, response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var resp response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func signUpBody(email string) map[string]string {
	return map[string]string{
		"name":     "Rahima Khatun",
		"email":    email,
		"password": testPassword,
		"role":     "MEDICAL_OFFICER",
		"division": "Khulna",
		"district": "Jashore",
	}
}

func signIn(t *testing.T, g *gin.Engine, email, password string) string {
	t.Helper()

	status, resp := do(t, g, http.MethodPost, "/api/auth/signin",
		map[string]string{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	var tok tokenData
	require.NoError(t, json.Unmarshal(resp.Data, &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestMetaRoutes(t *testing.T) {
	g := newTestEngine(t, nil)

	status, resp := do(t, g, http.MethodGet, "/v1/meta/staff-roles", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var roles []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &roles))
	assert.Len(t, roles, 6)
	assert.Equal(t, "CENTER_ADMIN", roles[0]["value"])
	assert.Equal(t, true, roles[0]["managesCenter"])
	assert.Equal(t, false, roles[2]["managesCenter"])

	status, resp = do(t, g, http.MethodGet, "/v1/meta/center-statuses", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"acceptsAppointments":true`)

	status, resp = do(t, g, http.MethodGet, "/v1/meta/divisions", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var divisions []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &divisions))
	assert.Len(t, divisions, 8)

	status, resp = do(t, g, http.MethodGet, "/v1/meta/divisions/khulna/districts", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), "Jashore")

	status, resp = do(t, g, http.MethodGet, "/v1/meta/divisions/atlantis/districts", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, code.ErrDivisionNotFound, resp.Code)
	assert.Equal(t, "Division atlantis not found", resp.Error)
}

func TestSignUp(t *testing.T) {
	g := newTestEngine(t, nil)

	status, resp := do(t, g, http.MethodPost, "/api/auth/signup", signUpBody("rahima@example.com"), nil)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	assert.NotContains(t, string(resp.Data), testPassword)
	assert.Contains(t, string(resp.Data), `"role":"MEDICAL_OFFICER"`)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   int
		wantError  string
	}{
		{
			name:       "邮箱已注册",
			body:       signUpBody("Rahima@Example.com"),
			wantStatus: http.StatusConflict,
			wantCode:   code.ErrAccountAlreadyExist,
			wantError:  "An account with email rahima@example.com already exists",
		},
		{
			name: "弱密码",
			body: func() map[string]string {
				b := signUpBody("weak@example.com")
				b["password"] = "password"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
			wantCode:   code.ErrValidation,
			wantError:  "password must be 8-64 characters with upper and lower case letters, a digit and a symbol",
		},
		{
			name: "县不属于行政区",
			body: func() map[string]string {
				b := signUpBody("district@example.com")
				b["district"] = "Sylhet"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
			wantCode:   code.ErrValidation,
			wantError:  "district does not belong to the selected division",
		},
		{
			name:       "请求体不是JSON对象",
			body:       []string{"not", "an", "object"},
			wantStatus: http.StatusBadRequest,
			wantCode:   code.ErrBind,
			wantError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, g, http.MethodPost, "/api/auth/signup", tt.body, nil)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestSignInAndMe(t *testing.T) {
	g := newTestEngine(t, nil)
	status, _ := do(t, g, http.MethodPost, "/api/auth/signup", signUpBody("officer@example.com"), nil)
	require.Equal(t, http.StatusCreated, status)

	token := signIn(t, g, "OFFICER@example.com", testPassword)

	status, resp := do(t, g, http.MethodGet, "/v1/accounts/me", nil, bearer(token))
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Contains(t, string(resp.Data), `"email":"officer@example.com"`)
	assert.NotContains(t, string(resp.Data), "password")

	basic := base64.StdEncoding.EncodeToString([]byte("officer@example.com:" + testPassword))
	status, resp = do(t, g, http.MethodPost, "/api/auth/signin", nil, map[string]string{"Authorization": "Basic " + basic})
	assert.Equal(t, http.StatusOK, status, resp.Error)

	tests := []struct {
		name       string
		body       interface{}
		header     map[string]string
		wantStatus int
		wantCode   int
		wantError  string
	}{
		{
			name:       "密码错误",
			body:       map[string]string{"email": "officer@example.com", "password": "Wrong@2025"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   code.ErrUnauthorized,
			wantError:  "Invalid email or password",
		},
		{
			name:       "账号不存在",
			body:       map[string]string{"email": "ghost@example.com", "password": testPassword},
			wantStatus: http.StatusUnauthorized,
			wantCode:   code.ErrUnauthorized,
			wantError:  "Invalid email or password",
		},
		{
			name:       "缺少密码",
			body:       map[string]string{"email": "officer@example.com"},
			wantStatus: http.StatusBadRequest,
			wantCode:   code.ErrBind,
			wantError:  "Email and password are required",
		},
		{
			name:       "Basic认证头不是base64",
			header:     map[string]string{"Authorization": "Basic !!!"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   code.ErrInvalidAuthHeader,
			wantError:  "Authorization header is not valid base64",
		},
		{
			name:       "非Basic认证头且没有请求体",
			header:     map[string]string{"Authorization": "Digest abc"},
			wantStatus: http.StatusBadRequest,
			wantCode:   code.ErrBind,
			wantError:  "Email and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, g, http.MethodPost, "/api/auth/signin", tt.body, tt.header)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

// 客户端保存的过期 Bearer 令牌不能挡住重新登录
func TestSignIn_IgnoresBearerToken(t *testing.T) {
	g := newTestEngine(t, nil)
	status, _ := do(t, g, http.MethodPost, "/api/auth/signup", signUpBody("stale@example.com"), nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := do(t, g, http.MethodPost, "/api/auth/signin",
		map[string]string{"email": "stale@example.com", "password": testPassword},
		bearer("stale.or.expired.token"))
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Contains(t, string(resp.Data), `"token"`)

	srv := httptest.NewServer(g)
	defer srv.Close()
	client := httpclient.New(srv.URL, httpclient.WithToken("stale.or.expired.token"))
	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, client.Post(context.Background(), "/api/auth/signin",
		map[string]string{"email": "stale@example.com", "password": testPassword}, &token))
	assert.NotEmpty(t, token.Token)
}

func TestProtectedRoutes(t *testing.T) {
	g := newTestEngine(t, nil)

	status, resp := do(t, g, http.MethodGet, "/v1/accounts/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrMissingHeader, resp.Code)
	assert.Equal(t, "Please sign in first", resp.Error)

	status, resp = do(t, g, http.MethodGet, "/v1/accounts/me", nil, bearer("not.a.jwt"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrTokenInvalid, resp.Code)
}

func TestSignOutRevokesToken(t *testing.T) {
	g := newTestEngine(t, nil)
	status, _ := do(t, g, http.MethodPost, "/api/auth/signup", signUpBody("nurse@example.com"), nil)
	require.Equal(t, http.StatusCreated, status)

	token := signIn(t, g, "nurse@example.com", testPassword)

	status, resp := do(t, g, http.MethodPost, "/api/auth/refresh", nil, bearer(token))
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, _ = do(t, g, http.MethodPost, "/api/auth/signout", nil, bearer(token))
	require.Equal(t, http.StatusOK, status)

	status, resp = do(t, g, http.MethodGet, "/v1/accounts/me", nil, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrTokenRevoked, resp.Code)

	status, resp = do(t, g, http.MethodPost, "/api/auth/refresh", nil, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrTokenRevoked, resp.Code)

	// 没有令牌时注销同样成功
	status, _ = do(t, g, http.MethodPost, "/api/auth/signout", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthRateLimit(t *testing.T) {
	g := newTestEngine(t, middleware.NewIPLimiter(0.001, 1))

	status, _ := do(t, g, http.MethodPost, "/api/auth/signin", map[string]string{"email": "a@example.com", "password": "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp := do(t, g, http.MethodPost, "/api/auth/signup", signUpBody("b@example.com"), nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, code.ErrTooManyRequests, resp.Code)

	status, _ = do(t, g, http.MethodGet, "/v1/meta/staff-roles", nil, nil)
	assert.Equal(t, http.StatusOK, status, "参考数据接口不限流")
}

// 客户端通过 failure.ExtractMessage 看到的就是服务端写入的 error 字段
func TestClientSeesServerError(t *testing.T) {
	srv := httptest.NewServer(newTestEngine(t, nil))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := httpclient.New(srv.URL)

	err := client.Post(ctx, "/api/auth/signin", map[string]string{"email": "ghost@example.com", "password": "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", failure.ExtractMessage(err))

	err = client.Get(ctx, "/v1/meta/divisions/atlantis/districts", nil)
	assert.Equal(t, "Division atlantis not found", failure.ExtractMessage(err))

	var roles []map[string]interface{}
	require.NoError(t, client.Get(ctx, "/v1/meta/staff-roles", &roles))
	assert.Len(t, roles, 6)
}
