// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

var skipLogPaths = []string{"/healthz", "/metrics"}

// Logger 访问日志，带上请求 ID
func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: requestIDFormatter,
		Output:    log.StdInfoWriter(),
		SkipPaths: skipLogPaths,
	})
}

func requestIDFormatter(param gin.LogFormatterParams) string {
	var statusColor, methodColor, resetColor string
	if param.IsOutputColor() {
		statusColor = param.StatusCodeColor()
		methodColor = param.MethodColor()
		resetColor = param.ResetColor()
	}

	if param.Latency > time.Minute {
		param.Latency -= param.Latency % time.Second
	}

	return fmt.Sprintf("%s%3d%s - [%s] \"%v %s%s%s %s\" %s %s",
		statusColor, param.StatusCode, resetColor,
		param.ClientIP,
		param.Latency,
		methodColor, param.Method, resetColor,
		param.Path,
		param.Request.Header.Get(XRequestIDKey),
		param.ErrorMessage,
	)
}
