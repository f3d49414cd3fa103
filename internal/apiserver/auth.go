// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v4"
	uuid "github.com/satori/go.uuid"

	srvv1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/service/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/core"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/metrics"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/storage"
)

const (
	// APIServerAudience jwt aud
	APIServerAudience = "vaxcenter.api"

	// APIServerIssuer jwt iss
	APIServerIssuer = "vaxcenter-apiserver"

	claimJTI  = "jti"
	claimRole = "role"

	// authErrorKey HTTPStatusMessageFunc 把 gin-jwt 的原始错误放在这里，供 Unauthorized 转换业务码
	authErrorKey = "vaxcenter.auth.error"
)

// authHandler 登录、注销和刷新直接交给 gin-jwt，这里只提供凭据校验和令牌吊销
type authHandler struct {
	jwt       *jwt.GinJWTMiddleware
	srv       srvv1.Service
	blacklist storage.Blacklist
}

func newJWTAuth(opts *genericoptions.JwtOptions, srv srvv1.Service, blacklist storage.Blacklist) (*authHandler, error) {
	a := &authHandler{srv: srv, blacklist: blacklist}

	ginjwt, err := jwt.New(&jwt.GinJWTMiddleware{
		Realm:            opts.Realm,
		SigningAlgorithm: "HS256",
		Key:              []byte(opts.Key),
		Timeout:          opts.Timeout,
		MaxRefresh:       opts.MaxRefresh,
		IdentityKey:      middleware.UsernameKey,
		TokenLookup:      "header: Authorization, query: token, cookie: jwt",
		TokenHeadName:    "Bearer",
		SendCookie:       true,
		TimeFunc:         time.Now,
		Authenticator:    a.authenticator(),
		PayloadFunc:      payload(),
		IdentityHandler: func(c *gin.Context) interface{} {
			claims := jwt.ExtractClaims(c)
			return claims[middleware.UsernameKey]
		},
		Authorizator:    authorizator(),
		LoginResponse:   tokenResponse("signin"),
		RefreshResponse: tokenResponse("refresh"),
		LogoutResponse: func(c *gin.Context, _ int) {
			core.WriteResponse(c, nil, nil)
		},
		HTTPStatusMessageFunc: func(e error, c *gin.Context) string {
			c.Set(authErrorKey, e)
			return e.Error()
		},
		Unauthorized: func(c *gin.Context, status int, message string) {
			core.WriteResponse(c, authError(c, status, message), nil)
		},
	})
	if err != nil {
		return nil, err
	}

	a.jwt = ginjwt
	return a, nil
}

// SignIn 凭据可以放在 JSON 请求体中，也可以使用 Basic 认证头
func (a *authHandler) SignIn(c *gin.Context) {
	a.jwt.LoginHandler(c)
}

// SignOut 吊销令牌后删除 cookie。没有有效令牌时同样返回成功
func (a *authHandler) SignOut(c *gin.Context) {
	if claims := a.tokenClaims(c); claims != nil {
		if err := a.revoke(c, claims); err != nil {
			metrics.RecordAuth("signout", false)
			core.WriteResponse(c, err, nil)
			return
		}
		log.L(c).Infow("Token revoked", "username", claims[middleware.UsernameKey])
	}

	metrics.RecordAuth("signout", true)
	a.jwt.LogoutHandler(c)
}

// Refresh 已吊销的令牌不能刷新
func (a *authHandler) Refresh(c *gin.Context) {
	if claims := a.tokenClaims(c); claims != nil && a.isRevoked(c, claims) {
		metrics.RecordAuth("refresh", false)
		core.WriteResponse(c, errors.WithCode(code.ErrTokenRevoked, "Token has been revoked"), nil)
		return
	}

	a.jwt.RefreshHandler(c)
}

// tokenClaims 返回签名有效的令牌中的声明，已过期的令牌同样返回，其它情况返回 nil
func (a *authHandler) tokenClaims(c *gin.Context) map[string]interface{} {
	token, err := a.jwt.ParseToken(c)
	if token == nil {
		return nil
	}
	if err != nil {
		var ve *gojwt.ValidationError
		if !errors.As(err, &ve) || ve.Errors != gojwt.ValidationErrorExpired {
			return nil
		}
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// AuthFunc 校验令牌并拒绝已吊销的令牌
func (a *authHandler) AuthFunc() gin.HandlersChain {
	return gin.HandlersChain{a.jwt.MiddlewareFunc(), a.checkRevoked}
}

func (a *authHandler) checkRevoked(c *gin.Context) {
	if a.isRevoked(c, jwt.ExtractClaims(c)) {
		core.AbortWithError(c, errors.WithCode(code.ErrTokenRevoked, "Token has been revoked"))
		return
	}
	c.Next()
}

// isRevoked 黑名单不可用时放行，只记录日志
func (a *authHandler) isRevoked(c *gin.Context, claims map[string]interface{}) bool {
	jti, _ := claims[claimJTI].(string)
	if jti == "" || a.blacklist == nil {
		return false
	}

	revoked, err := a.blacklist.IsRevoked(c, jti)
	if err != nil {
		log.L(c).Warnw("Failed to check token revocation", "jti", jti, "error", err)
		return false
	}
	return revoked
}

func (a *authHandler) revoke(c *gin.Context, claims map[string]interface{}) error {
	jti, _ := claims[claimJTI].(string)
	if jti == "" || a.blacklist == nil {
		return nil
	}

	ttl := time.Until(expireTime(claims)) + a.jwt.MaxRefresh
	if ttl <= 0 {
		return nil
	}
	if err := a.blacklist.Revoke(c, jti, ttl); err != nil {
		return errors.WrapC(err, code.ErrDatabase, "%s", err.Error())
	}
	return nil
}

func (a *authHandler) authenticator() func(c *gin.Context) (interface{}, error) {
	return func(c *gin.Context) (interface{}, error) {
		var login v1.SignInRequest
		var err error

		// 只有 Basic 认证头才走头部解析，客户端残留的 Bearer 令牌不影响登录
		if isBasicAuth(c.Request.Header.Get("Authorization")) {
			login, err = parseWithHeader(c)
		} else {
			login, err = parseWithBody(c)
		}
		if err != nil {
			metrics.RecordAuth("signin", false)
			return nil, err
		}

		account, err := a.srv.Accounts().Authenticate(c, login.Email, login.Password)
		if err != nil {
			log.L(c).Warnw("Sign in failed", "email", login.Email, "error", err)
			metrics.RecordAuth("signin", false)
			return nil, err
		}

		return account, nil
	}
}

func isBasicAuth(header string) bool {
	scheme, _, ok := strings.Cut(header, " ")
	return ok && strings.EqualFold(scheme, "Basic")
}

func parseWithHeader(c *gin.Context) (v1.SignInRequest, error) {
	auth := strings.SplitN(c.Request.Header.Get("Authorization"), " ", 2)
	if len(auth) != 2 || !strings.EqualFold(auth[0], "Basic") {
		return v1.SignInRequest{}, errors.WithCode(code.ErrInvalidAuthHeader, "Authorization header must use the Basic scheme")
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		return v1.SignInRequest{}, errors.WrapC(err, code.ErrInvalidAuthHeader, "Authorization header is not valid base64")
	}
	pair := strings.SplitN(string(payload), ":", 2)
	if len(pair) != 2 || pair[0] == "" {
		return v1.SignInRequest{}, errors.WithCode(code.ErrInvalidAuthHeader, "Authorization header must contain email:password")
	}

	return v1.SignInRequest{Email: pair[0], Password: pair[1]}, nil
}

func parseWithBody(c *gin.Context) (v1.SignInRequest, error) {
	var login v1.SignInRequest
	if err := c.ShouldBindJSON(&login); err != nil {
		return v1.SignInRequest{}, errors.WrapC(err, code.ErrBind, "Email and password are required")
	}
	return login, nil
}

func payload() func(data interface{}) jwt.MapClaims {
	return func(data interface{}) jwt.MapClaims {
		claims := jwt.MapClaims{
			"iss":    APIServerIssuer,
			"aud":    APIServerAudience,
			claimJTI: uuid.Must(uuid.NewV4()).String(),
		}
		if a, ok := data.(*v1.Account); ok {
			claims[middleware.UsernameKey] = a.Email
			claims["sub"] = a.Email
			claims[claimRole] = a.Role.String()
		}
		return claims
	}
}

func authorizator() func(data interface{}, c *gin.Context) bool {
	return func(data interface{}, c *gin.Context) bool {
		email, ok := data.(string)
		if !ok || email == "" {
			log.L(c).Info("Token does not carry an account identity")
			return false
		}

		c.Set(middleware.UsernameKey, email)
		log.L(c).Debugf("Account `%s` is authenticated", email)
		return true
	}
}

func tokenResponse(operation string) func(c *gin.Context, code int, token string, expire time.Time) {
	return func(c *gin.Context, _ int, token string, expire time.Time) {
		metrics.RecordAuth(operation, true)
		core.WriteResponse(c, nil, gin.H{
			"token":  token,
			"expire": expire.Format(time.RFC3339),
		})
	}
}

// authError 把 gin-jwt 的失败转换为带业务码的错误，已带码的错误原样返回
func authError(c *gin.Context, status int, message string) error {
	var cause error
	if v, ok := c.Get(authErrorKey); ok {
		cause, _ = v.(error)
	}
	if cause == nil {
		cause = errors.New(message)
	}
	if errors.IsWithCode(cause) {
		return cause
	}

	switch {
	case errors.Is(cause, jwt.ErrExpiredToken), errors.Is(cause, gojwt.ErrTokenExpired):
		return errors.WrapC(cause, code.ErrExpired, "Token has expired, please sign in again")
	case errors.Is(cause, jwt.ErrEmptyAuthHeader), errors.Is(cause, jwt.ErrEmptyQueryToken), errors.Is(cause, jwt.ErrEmptyCookieToken):
		return errors.WrapC(cause, code.ErrMissingHeader, "Please sign in first")
	case errors.Is(cause, jwt.ErrInvalidAuthHeader):
		return errors.WrapC(cause, code.ErrInvalidAuthHeader, "Authorization header is malformed")
	case errors.Is(cause, gojwt.ErrTokenSignatureInvalid):
		return errors.WrapC(cause, code.ErrSignatureInvalid, "Token signature is invalid")
	case errors.Is(cause, jwt.ErrFailedAuthentication), errors.Is(cause, jwt.ErrMissingLoginValues):
		return errors.WrapC(cause, code.ErrUnauthorized, "Invalid email or password")
	case status == http.StatusForbidden:
		return errors.WrapC(cause, code.ErrPermissionDenied, "Permission denied")
	default:
		return errors.WrapC(cause, code.ErrTokenInvalid, "Token is invalid")
	}
}

func expireTime(claims map[string]interface{}) time.Time {
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	default:
		return time.Time{}
	}
}
