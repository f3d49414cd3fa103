// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package log 基于 zap 的日志门面。
// 业务代码通过包级函数或 L(ctx) 输出日志，klog 的输出也会被重定向到这里。
package log

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log/klog"
)

// InfoLogger 非错误日志接口
type InfoLogger interface {
	Info(msg string, keysAndValues ...interface{})
	Infof(format string, args ...interface{})
	Enabled() bool
}

// Logger 完整日志接口
type Logger interface {
	InfoLogger
	Error(err error, msg string, keysAndValues ...interface{})
	Errorf(format string, args ...interface{})
	// V 返回指定详细程度的 InfoLogger，级别越高越次要
	V(level int) InfoLogger
	Write(p []byte) (n int, err error)
	WithValues(keysAndValues ...interface{}) Logger
	WithName(name string) Logger
	Flush()
}

var _ Logger = &zapLogger{}

type noopInfoLogger struct{}

func (l *noopInfoLogger) Enabled() bool                    { return false }
func (l *noopInfoLogger) Info(_ string, _ ...interface{})  {}
func (l *noopInfoLogger) Infof(_ string, _ ...interface{}) {}

var disabledInfoLogger = &noopInfoLogger{}

type infoLogger struct {
	level zapcore.Level
	log   *zap.Logger
}

func (l *infoLogger) Enabled() bool { return true }

func (l *infoLogger) Info(msg string, keysAndValues ...interface{}) {
	if checkedEntry := l.log.Check(l.level, msg); checkedEntry != nil {
		checkedEntry.Write(handleFields(l.log, keysAndValues)...)
	}
}

func (l *infoLogger) Infof(format string, args ...interface{}) {
	if checkedEntry := l.log.Check(l.level, fmt.Sprintf(format, args...)); checkedEntry != nil {
		checkedEntry.Write()
	}
}

type zapLogger struct {
	zapLogger *zap.Logger
	infoLogger
}

// handleFields 把松散的键值对转换成 zap 字段，键必须是字符串且成对出现
func handleFields(l *zap.Logger, args []interface{}, additional ...zap.Field) []zap.Field {
	if len(args) == 0 {
		return additional
	}

	fields := make([]zap.Field, 0, len(args)/2+len(additional))
	for i := 0; i < len(args); {
		if f, ok := args[i].(zap.Field); ok {
			fields = append(fields, f)
			i++
			continue
		}

		if i == len(args)-1 {
			l.DPanic("odd number of arguments passed as key-value pairs for logging", zap.Any("ignored key", args[i]))
			break
		}

		key, val := args[i], args[i+1]
		keyStr, isString := key.(string)
		if !isString {
			l.DPanic("non-string key argument passed to logging, ignoring all later arguments", zap.Any("invalid key", key))
			break
		}

		fields = append(fields, zap.Any(keyStr, val))
		i += 2
	}

	return append(fields, additional...)
}

var (
	std = New(NewOptions())
	mu  sync.Mutex
)

// Init 用给定配置替换全局日志器
func Init(opts *Options) {
	mu.Lock()
	defer mu.Unlock()
	std = New(opts)
	klog.InitLogger(std.zapLogger)
	zap.RedirectStdLog(std.zapLogger)
}

// New 根据配置构造日志器，配置非法时退化为 info 级别
func New(opts *Options) *zapLogger {
	if opts == nil {
		opts = NewOptions()
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	encodeLevel := zapcore.CapitalLevelEncoder
	if opts.Format == consoleFormat && opts.EnableColor {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     timeEncoder,
		EncodeDuration: milliSecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	loggerConfig := &zap.Config{
		Level:             zap.NewAtomicLevelAt(zapLevel),
		Development:       false,
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: true,
		Encoding:          opts.Format,
		EncoderConfig:     encoderConfig,
		OutputPaths:       opts.OutputPaths,
		ErrorOutputPaths:  opts.ErrorOutputPaths,
	}

	l, err := loggerConfig.Build(zap.AddStacktrace(zapcore.PanicLevel), zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	logger := &zapLogger{
		zapLogger: l.Named(opts.Name),
		infoLogger: infoLogger{
			log:   l,
			level: zap.InfoLevel,
		},
	}
	return logger
}

// NewLogger 包装一个已有的 zap.Logger，测试中配合 observer 使用
func NewLogger(l *zap.Logger) Logger {
	return &zapLogger{
		zapLogger: l,
		infoLogger: infoLogger{
			log:   l,
			level: zap.InfoLevel,
		},
	}
}

// SetLogger 替换全局日志器，返回旧的以便恢复
func SetLogger(l *zap.Logger) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	old := std
	std = NewLogger(l).(*zapLogger)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		std = old
	}
}

// StdErrLogger 返回 error 级别的标准库 logger，供 http.Server.ErrorLog 使用
func StdErrLogger() *log.Logger {
	if std == nil {
		return nil
	}
	if l, err := zap.NewStdLogAt(std.zapLogger, zapcore.ErrorLevel); err == nil {
		return l
	}
	return nil
}

type infoWriter struct{}

func (infoWriter) Write(p []byte) (int, error) {
	std.zapLogger.Info(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// StdInfoWriter 以 info 级别写入全局日志器，写入时才取当前日志器，Init 之前创建也有效
func StdInfoWriter() io.Writer {
	return infoWriter{}
}

// ZapLogger 返回底层 zap.Logger
func ZapLogger() *zap.Logger {
	return std.zapLogger
}

func (l *zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if checkedEntry := l.zapLogger.Check(zap.ErrorLevel, msg); checkedEntry != nil {
		checkedEntry.Write(handleFields(l.zapLogger, keysAndValues, zap.Error(err))...)
	}
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.zapLogger.Sugar().Errorf(format, args...)
}

// V 全局 V
func V(level int) InfoLogger { return std.V(level) }

func (l *zapLogger) V(level int) InfoLogger {
	lvl := zapcore.Level(-1 * level)
	if l.zapLogger.Core().Enabled(lvl) {
		return &infoLogger{
			level: lvl,
			log:   l.zapLogger,
		}
	}
	return disabledInfoLogger
}

func (l *zapLogger) Write(p []byte) (n int, err error) {
	l.zapLogger.Info(string(p))
	return len(p), nil
}

// WithValues 全局 WithValues
func WithValues(keysAndValues ...interface{}) Logger { return std.WithValues(keysAndValues...) }

func (l *zapLogger) WithValues(keysAndValues ...interface{}) Logger {
	newLogger := l.zapLogger.With(handleFields(l.zapLogger, keysAndValues)...)
	return NewLogger(newLogger)
}

// WithName 全局 WithName
func WithName(s string) Logger { return std.WithName(s) }

func (l *zapLogger) WithName(name string) Logger {
	newLogger := l.zapLogger.Named(name)
	return NewLogger(newLogger)
}

// Flush 刷新缓冲
func Flush() { std.Flush() }

func (l *zapLogger) Flush() {
	_ = l.zapLogger.Sync()
}

func Debug(msg string, fields ...Field) { std.zapLogger.Debug(msg, fields...) }

func Debugf(format string, v ...interface{}) { std.zapLogger.Sugar().Debugf(format, v...) }

func Debugw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}

func Info(msg string, fields ...Field) { std.zapLogger.Info(msg, fields...) }

func Infof(format string, v ...interface{}) { std.zapLogger.Sugar().Infof(format, v...) }

func Infow(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Infow(msg, keysAndValues...)
}

func Warn(msg string, fields ...Field) { std.zapLogger.Warn(msg, fields...) }

func Warnf(format string, v ...interface{}) { std.zapLogger.Sugar().Warnf(format, v...) }

func Warnw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}

func Error(msg string, fields ...Field) { std.zapLogger.Error(msg, fields...) }

func Errorf(format string, v ...interface{}) { std.zapLogger.Sugar().Errorf(format, v...) }

func Errorw(msg string, keysAndValues ...interface{}) {
	std.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}

func Panic(msg string, fields ...Field) { std.zapLogger.Panic(msg, fields...) }

func Panicf(format string, v ...interface{}) { std.zapLogger.Sugar().Panicf(format, v...) }

func Fatal(msg string, fields ...Field) { std.zapLogger.Fatal(msg, fields...) }

func Fatalf(format string, v ...interface{}) { std.zapLogger.Sugar().Fatalf(format, v...) }

// 以下方法让 L(ctx) 返回的日志器也能直接使用 zap 风格的调用

func (l *zapLogger) Debug(msg string, fields ...Field) { l.zapLogger.Debug(msg, fields...) }

func (l *zapLogger) Debugf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Debugf(format, v...)
}

func (l *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warnf(format string, v ...interface{}) {
	l.zapLogger.Sugar().Warnf(format, v...)
}

func (l *zapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.zapLogger.Sugar().Errorw(msg, keysAndValues...)
}
