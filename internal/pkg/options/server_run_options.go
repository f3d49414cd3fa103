// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package options 可复用的命令行选项分组，每组提供 AddFlags、Validate 和 ApplyTo。
package options

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/server"
)

// ServerRunOptions 服务运行方式
type ServerRunOptions struct {
	Mode            string        `json:"mode"             mapstructure:"mode"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	Middlewares     []string      `json:"middlewares"      mapstructure:"middlewares"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
	CorsOrigins     []string      `json:"cors-origins"     mapstructure:"cors-origins"`
}

// NewServerRunOptions 默认值取自 server.NewConfig
func NewServerRunOptions() *ServerRunOptions {
	defaults := server.NewConfig()

	return &ServerRunOptions{
		Mode:            defaults.Mode,
		Healthz:         defaults.Healthz,
		Middlewares:     defaults.Middlewares,
		ShutdownTimeout: defaults.ShutdownTimeout,
	}
}

// ApplyTo 写入服务配置
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = s.Mode
	c.Healthz = s.Healthz
	c.Middlewares = s.Middlewares
	c.ShutdownTimeout = s.ShutdownTimeout
	if len(s.CorsOrigins) > 0 {
		middleware.Middlewares["cors"] = middleware.Cors(s.CorsOrigins)
	}
	return nil
}

// Validate 模式必须是 gin 支持的模式，中间件必须存在
func (s *ServerRunOptions) Validate() []error {
	var errs []error

	switch s.Mode {
	case gin.DebugMode, gin.TestMode, gin.ReleaseMode:
	default:
		errs = append(errs, fmt.Errorf("--server.mode must be one of debug, test, release, got %q", s.Mode))
	}

	for _, m := range s.Middlewares {
		if _, ok := middleware.Middlewares[m]; !ok {
			errs = append(errs, fmt.Errorf("--server.middlewares: unknown middleware %q", m))
		}
	}

	if s.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("--server.shutdown-timeout cannot be negative"))
	}

	return errs
}

// AddFlags 绑定 --server.* 参数
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Mode, "server.mode", s.Mode, ""+
		"Start the server in a specified server mode. Supported server mode: debug, test, release.")

	fs.BoolVar(&s.Healthz, "server.healthz", s.Healthz, ""+
		"Add self readiness check and install /healthz router.")

	fs.StringSliceVar(&s.Middlewares, "server.middlewares", s.Middlewares, ""+
		"List of allowed middlewares for server, comma separated. If this list is empty default middlewares will be used.")

	fs.DurationVar(&s.ShutdownTimeout, "server.shutdown-timeout", s.ShutdownTimeout, ""+
		"Time to wait for in-flight requests when shutting down.")

	fs.StringSliceVar(&s.CorsOrigins, "server.cors-origins", s.CorsOrigins, ""+
		"Origins allowed by the cors middleware. Empty means any origin without credentials.")
}
