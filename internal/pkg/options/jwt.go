// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/server"
)

const jwtKeyEnv = "JWT_SECRET_KEY"

// JwtOptions JWT 签发参数
type JwtOptions struct {
	Realm      string        `json:"realm"       mapstructure:"realm"`
	Key        string        `json:"-"           mapstructure:"key"`
	Timeout    time.Duration `json:"timeout"     mapstructure:"timeout"`
	MaxRefresh time.Duration `json:"max-refresh" mapstructure:"max-refresh"`
}

// NewJwtOptions 默认值取自 server.NewConfig
func NewJwtOptions() *JwtOptions {
	defaults := server.NewConfig()

	return &JwtOptions{
		Realm:      defaults.Jwt.Realm,
		Key:        defaults.Jwt.Key,
		Timeout:    defaults.Jwt.Timeout,
		MaxRefresh: defaults.Jwt.MaxRefresh,
	}
}

// Complete 未配置密钥时读取 JWT_SECRET_KEY
func (s *JwtOptions) Complete() {
	if s.Key == "" {
		s.Key = os.Getenv(jwtKeyEnv)
	}
}

// ApplyTo 写入服务配置
func (s *JwtOptions) ApplyTo(c *server.Config) error {
	c.Jwt = &server.JwtInfo{
		Realm:      s.Realm,
		Key:        s.Key,
		Timeout:    s.Timeout,
		MaxRefresh: s.MaxRefresh,
	}
	return nil
}

// Validate 密钥长度 6~64，timeout 为正且不大于 max-refresh
func (s *JwtOptions) Validate() []error {
	var errs []error

	if s.Realm == "" {
		errs = append(errs, fmt.Errorf("--jwt.realm is required"))
	}
	if len(s.Key) < 6 || len(s.Key) > 64 {
		errs = append(errs, fmt.Errorf("--jwt.key must be between 6 and 64 characters (or set %s)", jwtKeyEnv))
	}
	if s.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--jwt.timeout must be greater than 0"))
	}
	if s.MaxRefresh < s.Timeout {
		errs = append(errs, fmt.Errorf("--jwt.max-refresh must not be less than --jwt.timeout"))
	}

	return errs
}

func (s *JwtOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Realm, "jwt.realm", s.Realm, "Realm name to display to the user.")
	fs.StringVar(&s.Key, "jwt.key", s.Key, "Private key used to sign jwt token.")
	fs.DurationVar(&s.Timeout, "jwt.timeout", s.Timeout, "JWT token timeout.")
	fs.DurationVar(&s.MaxRefresh, "jwt.max-refresh", s.MaxRefresh, ""+
		"This field allows clients to refresh their token until MaxRefresh has passed.")
}
