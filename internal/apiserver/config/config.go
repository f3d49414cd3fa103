// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package config apiserver 的运行配置
package config

import "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/options"

// Config 目前直接复用命令行选项
type Config struct {
	*options.Options
}

// CreateConfigFromOptions 由已校验的选项生成运行配置
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
