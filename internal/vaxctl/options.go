// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package vaxctl

import (
	"fmt"
	"net/url"
	"os"
	"time"

	cliflag "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/cli/flag"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/httpclient"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/version"
)

// tokenEnv 未指定 --token 时从该环境变量读取令牌
const tokenEnv = "VAXCTL_TOKEN"

// Options vaxctl 的全局参数
type Options struct {
	Server  string        `json:"server"`
	Token   string        `json:"-"`
	Timeout time.Duration `json:"timeout"`
}

func NewOptions() *Options {
	return &Options{
		Server:  "http://127.0.0.1:8080",
		Token:   os.Getenv(tokenEnv),
		Timeout: 10 * time.Second,
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("client")
	fs.StringVarP(&o.Server, "server", "s", o.Server, "Address of the vaxcenter-apiserver.")
	fs.StringVar(&o.Token, "token", o.Token, "Bearer token used for authenticated requests, defaults to $"+tokenEnv+".")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of a single request.")
	return fss
}

func (o *Options) Validate() []error {
	var errs []error
	if u, err := url.Parse(o.Server); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("--server %q is not a valid URL", o.Server))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--timeout must be greater than 0"))
	}
	return errs
}

// Client 按当前参数构造携带令牌的 API 客户端
func (o *Options) Client() *httpclient.Client {
	c := o.AnonymousClient()
	c.SetToken(o.Token)
	return c
}

// AnonymousClient 不携带令牌，用于登录和注册
func (o *Options) AnonymousClient() *httpclient.Client {
	return httpclient.New(o.Server,
		httpclient.WithTimeout(o.Timeout),
		httpclient.WithUserAgent("vaxctl/"+version.Get().GitVersion),
	)
}
