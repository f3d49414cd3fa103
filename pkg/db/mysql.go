// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package db gorm 连接的创建与连接池设置。
package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// Options MySQL 连接参数
type Options struct {
	Host                  string
	Username              string
	Password              string
	Database              string
	MaxIdleConnections    int
	MaxOpenConnections    int
	MaxConnectionLifeTime time.Duration
	// LogLevel 1 静默，2 错误，3 警告，4 信息
	LogLevel           int
	SlowQueryThreshold time.Duration
	Logger             logger.Interface
}

// DSN 生成 go-sql-driver 格式的连接串
func (o *Options) DSN() string {
	return fmt.Sprintf(`%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=%t&loc=%s&timeout=10s`,
		o.Username,
		o.Password,
		o.Host,
		o.Database,
		true,
		"Local")
}

// New 创建 MySQL 连接
func New(opts *Options) (*gorm.DB, error) {
	return Open(mysql.Open(opts.DSN()), opts)
}

// Open 使用任意方言打开连接并设置连接池，测试中传入 sqlite 方言
func Open(dialector gorm.Dialector, opts *Options) (*gorm.DB, error) {
	if opts.Logger == nil {
		opts.Logger = newGormLogger(opts)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   opts.Logger,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if opts.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	}
	if opts.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	}
	if opts.MaxConnectionLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Infof("Database connection pool initialized: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%v",
		opts.MaxOpenConnections, opts.MaxIdleConnections, opts.MaxConnectionLifeTime)

	return db, nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
