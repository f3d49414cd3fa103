// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package apiserver 接种中心员工账号的 API 服务。
//
// 提供员工注册、登录、注销、令牌刷新以及角色、中心状态、行政区等参考数据。
// 启动流程：
//
//	options.NewOptions() -> app.NewApp() -> config.CreateConfigFromOptions() -> Run(cfg)
package apiserver

import (
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/config"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/options"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/app"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

const commandDesc = `The vaccination center API server manages staff accounts of vaccination centers.
It handles sign up, sign in, sign out and token refresh for center staff,
and serves the reference data (staff roles, center statuses, divisions and
districts) that the clients need to render their forms.`

// NewApp 创建命令行应用
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Vaccination Center API Server",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		log.Init(opts.Log)
		defer log.Flush()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}
