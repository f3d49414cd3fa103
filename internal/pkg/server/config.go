// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package server

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// RecommendedHomeDir 配置文件所在的用户目录
	RecommendedHomeDir = ".vaxcenter"

	// RecommendedEnvPrefix 环境变量前缀
	RecommendedEnvPrefix = "VAXCENTER"
)

// Config GenericAPIServer 的配置
type Config struct {
	InsecureServing *InsecureServingInfo
	Jwt             *JwtInfo
	Mode            string
	Middlewares     []string
	Healthz         bool
	EnableProfiling bool
	EnableMetrics   bool
	ShutdownTimeout time.Duration
}

// InsecureServingInfo HTTP 监听地址
type InsecureServingInfo struct {
	Address string
}

// JwtInfo JWT 配置，由 apiserver 的认证策略使用
type JwtInfo struct {
	Realm      string
	Key        string
	Timeout    time.Duration
	MaxRefresh time.Duration
}

// NewConfig 默认配置
func NewConfig() *Config {
	return &Config{
		Healthz:         true,
		Mode:            gin.ReleaseMode,
		Middlewares:     []string{},
		EnableProfiling: true,
		EnableMetrics:   true,
		ShutdownTimeout: 10 * time.Second,
		Jwt: &JwtInfo{
			Realm:      "vaxcenter jwt",
			Timeout:    1 * time.Hour,
			MaxRefresh: 1 * time.Hour,
		},
	}
}

// CompletedConfig 补全后的配置
type CompletedConfig struct {
	*Config
}

// Complete 补全未设置的字段
func (c *Config) Complete() CompletedConfig {
	if c.InsecureServing == nil {
		c.InsecureServing = &InsecureServingInfo{Address: net.JoinHostPort("127.0.0.1", strconv.Itoa(8080))}
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return CompletedConfig{c}
}

// New 根据配置创建 GenericAPIServer
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		InsecureServingInfo: c.InsecureServing,
		healthz:             c.Healthz,
		enableMetrics:       c.EnableMetrics,
		enableProfiling:     c.EnableProfiling,
		middlewares:         c.Middlewares,
		ShutdownTimeout:     c.ShutdownTimeout,
		Engine:              gin.New(),
	}

	initGenericAPIServer(s)

	return s, nil
}
