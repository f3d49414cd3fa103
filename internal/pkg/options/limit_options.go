// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
)

// LimitOptions 登录、注册接口按客户端 IP 限流
type LimitOptions struct {
	AuthPerSecond float64 `json:"auth-per-second" mapstructure:"auth-per-second"`
	AuthBurst     int     `json:"auth-burst"      mapstructure:"auth-burst"`
}

func NewLimitOptions() *LimitOptions {
	return &LimitOptions{
		AuthPerSecond: 1,
		AuthBurst:     5,
	}
}

// Enabled 速率为 0 时关闭限流
func (o *LimitOptions) Enabled() bool {
	return o.AuthPerSecond > 0
}

// NewAuthLimiter 未启用时返回 nil
func (o *LimitOptions) NewAuthLimiter() *middleware.IPLimiter {
	if !o.Enabled() {
		return nil
	}
	return middleware.NewIPLimiter(o.AuthPerSecond, o.AuthBurst)
}

func (o *LimitOptions) Validate() []error {
	var errs []error

	if o.AuthPerSecond < 0 {
		errs = append(errs, fmt.Errorf("--limit.auth-per-second cannot be negative"))
	}
	if o.Enabled() && o.AuthBurst < 1 {
		errs = append(errs, fmt.Errorf("--limit.auth-burst must be at least 1 when limiting is enabled"))
	}

	return errs
}

func (o *LimitOptions) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&o.AuthPerSecond, "limit.auth-per-second", o.AuthPerSecond, ""+
		"Sign-in and sign-up requests allowed per second for each client IP. 0 disables limiting.")
	fs.IntVar(&o.AuthBurst, "limit.auth-burst", o.AuthBurst, "Burst size of the sign-in and sign-up limiter.")
}
