// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package store 数据访问层接口
package store

import (
	"context"

	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
)

var client Factory

// Factory 存储实现的入口
type Factory interface {
	Accounts() AccountStore
	Close() error
}

// Client 返回全局存储实例
func Client() Factory {
	return client
}

// SetClient 设置全局存储实例
func SetClient(factory Factory) {
	client = factory
}

// AccountStore 账号存储。Get 按邮箱查找，账号不存在时返回带 code.ErrAccountNotFound 的错误
type AccountStore interface {
	Create(ctx context.Context, account *v1.Account) error
	Get(ctx context.Context, email string) (*v1.Account, error)
	GetByID(ctx context.Context, id uint64) (*v1.Account, error)
	UpdateLoginedAt(ctx context.Context, id uint64) error
}
