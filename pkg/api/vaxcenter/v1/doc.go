// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package v1 疫苗接种中心 apiserver 的 v1 版本 API 类型。
//
// 包含员工角色、中心状态、行政区划等参考数据，以及账号模型和登录注册请求体。
package v1
