// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package json 统一的 JSON 入口，底层使用 json-iterator 的标准库兼容配置，
// 调用方不直接依赖具体实现。
package json

import (
	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage 未解析的 JSON 原始字节
type RawMessage = jsoniter.RawMessage

var (
	Marshal       = api.Marshal
	Unmarshal     = api.Unmarshal
	MarshalIndent = api.MarshalIndent
	NewDecoder    = api.NewDecoder
	NewEncoder    = api.NewEncoder
)
