// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package mysql 基于 gorm 的存储实现
package mysql

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/db"
)

type datastore struct {
	db *gorm.DB
}

func (ds *datastore) Accounts() store.AccountStore {
	return newAccounts(ds)
}

func (ds *datastore) Close() error {
	return db.Close(ds.db)
}

var (
	mysqlFactory store.Factory
	once         sync.Once
)

// GetMySQLFactoryOr 首次调用时按 opts 建立连接并迁移表结构，之后返回同一个实例
func GetMySQLFactoryOr(opts *genericoptions.MySQLOptions) (store.Factory, error) {
	if opts == nil && mysqlFactory == nil {
		return nil, fmt.Errorf("failed to get mysql store factory")
	}

	var err error
	once.Do(func() {
		var dbIns *gorm.DB
		dbIns, err = opts.NewClient()
		if err != nil {
			return
		}
		mysqlFactory, err = NewFactory(dbIns)
	})

	if mysqlFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get mysql store factory, mysqlFactory: %+v, error: %w", mysqlFactory, err)
	}

	return mysqlFactory, nil
}

// NewFactory 包装一个已建立的连接，测试中传入 sqlite 连接
func NewFactory(dbIns *gorm.DB) (store.Factory, error) {
	if err := migrateDatabase(dbIns); err != nil {
		return nil, err
	}
	return &datastore{dbIns}, nil
}

// migrateDatabase 只创建缺失的表和索引
func migrateDatabase(dbIns *gorm.DB) error {
	if err := dbIns.AutoMigrate(&v1.Account{}); err != nil {
		return fmt.Errorf("migrate account table: %w", err)
	}
	return nil
}
