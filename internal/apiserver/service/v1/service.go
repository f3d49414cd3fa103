// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package v1 业务逻辑层
package v1

import (
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
)

// Service 控制器可以使用的全部业务能力
type Service interface {
	Accounts() AccountSrv
}

type service struct {
	store     store.Factory
	publisher event.Publisher
}

// NewService publisher 为 nil 时不发布账号事件
func NewService(store store.Factory, publisher event.Publisher) Service {
	if publisher == nil {
		publisher = event.NewNopPublisher()
	}
	return &service{
		store:     store,
		publisher: publisher,
	}
}

func (s *service) Accounts() AccountSrv {
	return newAccounts(s)
}
