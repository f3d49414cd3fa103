// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormLogger 把 gorm 日志转发到 zap
type gormLogger struct {
	config logger.Config
}

func newGormLogger(opts *Options) logger.Interface {
	cfg := logger.Config{
		IgnoreRecordNotFoundError: true,
		SlowThreshold:             opts.SlowQueryThreshold,
		LogLevel:                  toGormLogLevel(opts.LogLevel),
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = defaultSlowQueryThreshold
	}
	return &gormLogger{config: cfg}
}

func toGormLogLevel(level int) logger.LogLevel {
	switch {
	case level <= 1:
		return logger.Silent
	case level >= 4:
		return logger.Info
	default:
		return logger.LogLevel(level)
	}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.config.LogLevel = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel >= logger.Info {
		log.L(ctx).Infow(fmt.Sprintf("[gorm] "+msg, args...))
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel >= logger.Warn {
		log.L(ctx).Warnf("[gorm] "+msg, args...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel >= logger.Error {
		log.L(ctx).Errorf("[gorm] "+msg, args...)
	}
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.config.LogLevel == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.config.LogLevel >= logger.Error &&
		!(g.config.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		log.L(ctx).Errorw("[gorm] query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > g.config.SlowThreshold && g.config.LogLevel >= logger.Warn:
		log.L(ctx).Warnw("[gorm] slow query", "threshold", g.config.SlowThreshold, "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.config.LogLevel >= logger.Info:
		log.L(ctx).Debugf("[gorm] elapsed=%s rows=%d sql=%s", elapsed, rows, sql)
	}
}
