// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// XRequestIDKey 请求 ID 的头部名称，同时作为 gin 上下文的键
const XRequestIDKey = "X-Request-ID"

// RequestID 沿用调用方传入的请求 ID，没有时生成 UUIDv4，并写回响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(XRequestIDKey)
		if rid == "" {
			rid = uuid.NewString()
			c.Request.Header.Set(XRequestIDKey, rid)
		}
		c.Set(XRequestIDKey, rid)
		c.Writer.Header().Set(XRequestIDKey, rid)
		c.Next()
	}
}

// GetRequestIDFromContext 读取 RequestID 中间件写入的请求 ID
func GetRequestIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(XRequestIDKey); ok {
		if requestID, ok := v.(string); ok {
			return requestID
		}
	}
	return ""
}
