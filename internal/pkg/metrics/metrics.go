// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package metrics apiserver 的业务指标，通过 /metrics 暴露。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
)

var (
	// ResponseFailures 写出的失败响应，按失败变体和业务码分组
	ResponseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vaxcenter",
		Name:      "response_failures_total",
		Help:      "Total number of failed responses written, by failure kind and business code.",
	}, []string{"kind", "code"})

	// AuthAttempts 登录、注销、刷新的结果
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vaxcenter",
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	}, []string{"operation", "result"})

	// AccountOperations 账号存储操作耗时
	AccountOperations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vaxcenter",
		Name:      "account_operation_seconds",
		Help:      "Time taken by account store operations.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"operation", "status"})
)

// RecordFailure 记录一次失败响应
func RecordFailure(kind failure.Kind, code int) {
	ResponseFailures.WithLabelValues(string(kind), strconv.Itoa(code)).Inc()
}

// RecordAuth 记录一次认证结果
func RecordAuth(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}

// ObserveAccountOperation 在 defer 中使用：defer metrics.ObserveAccountOperation("create", time.Now(), &err)
func ObserveAccountOperation(operation string, start time.Time, errp *error) {
	status := "success"
	if errp != nil && *errp != nil {
		status = "error"
	}
	AccountOperations.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
