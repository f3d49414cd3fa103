// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field 结构化日志字段，业务代码只依赖本包
type Field = zapcore.Field

// Level 日志级别
type Level = zapcore.Level

var (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	PanicLevel = zapcore.PanicLevel
	FatalLevel = zapcore.FatalLevel
)

// Alias for zap type functions.
var (
	Any       = zap.Any
	Bool      = zap.Bool
	Duration  = zap.Duration
	Err       = zap.Error
	Float64   = zap.Float64
	Int       = zap.Int
	Int64     = zap.Int64
	Namespace = zap.Namespace
	String    = zap.String
	Strings   = zap.Strings
	Stringer  = zap.Stringer
	Time      = zap.Time
	Uint      = zap.Uint
)
