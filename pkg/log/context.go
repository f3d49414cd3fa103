// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package log

import (
	"context"

	"go.uber.org/zap"
)

type key int

const (
	logContextKey key = iota
)

// 请求上下文中与日志相关的键，由中间件写入
const (
	KeyRequestID string = "requestID"
	KeyUsername  string = "username"
)

// WithContext 将日志器放入 ctx
func (l *zapLogger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, logContextKey, l)
}

// FromContext 取出 ctx 中的日志器，没有时返回一个具名的默认日志器
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(logContextKey).(Logger); ok {
			return l
		}
	}
	return WithName("Unknown-Context")
}

// L 返回附带 requestID / username 的日志器。
// gin.Context 也实现了 context.Context，Value 会读取 c.Set 的键。
func L(ctx context.Context) *zapLogger {
	return std.L(ctx)
}

func (l *zapLogger) L(ctx context.Context) *zapLogger {
	lg := l.clone()
	if ctx == nil {
		return lg
	}
	if requestID := ctx.Value(KeyRequestID); requestID != nil {
		lg.zapLogger = lg.zapLogger.With(zap.Any(KeyRequestID, requestID))
	}
	if username := ctx.Value(KeyUsername); username != nil {
		lg.zapLogger = lg.zapLogger.With(zap.Any(KeyUsername, username))
	}
	lg.infoLogger.log = lg.zapLogger
	return lg
}

func (l *zapLogger) clone() *zapLogger {
	copied := *l
	return &copied
}
