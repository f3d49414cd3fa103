// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package klog 把 k8s.io/klog 的输出按级别转发到 zap。
package klog

import (
	"flag"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/klog"
)

// InitLogger init klog by zap logger.
func InitLogger(zapLogger *zap.Logger) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	defer klog.Flush()
	klog.SetOutputBySeverity("INFO", &severityWriter{logger: zapLogger, level: zapcore.InfoLevel})
	klog.SetOutputBySeverity("WARNING", &severityWriter{logger: zapLogger, level: zapcore.WarnLevel})
	klog.SetOutputBySeverity("ERROR", &severityWriter{logger: zapLogger, level: zapcore.ErrorLevel})
	klog.SetOutputBySeverity("FATAL", &severityWriter{logger: zapLogger, level: zapcore.FatalLevel})
	_ = fs.Set("skip_headers", "true")
	_ = fs.Set("logtostderr", "false")
}

type severityWriter struct {
	logger *zap.Logger
	level  zapcore.Level
}

func (w *severityWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if ce := w.logger.Check(w.level, msg); ce != nil {
		ce.Write()
	}
	return len(p), nil
}
