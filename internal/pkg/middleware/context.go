// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// UsernameKey 认证成功后写入上下文的账号标识
const UsernameKey = "username"

// Context 把请求 ID 和账号写到 log.L(c) 读取的键上
func Context() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(log.KeyRequestID, c.GetString(XRequestIDKey))
		c.Set(log.KeyUsername, c.GetString(UsernameKey))
		c.Next()
	}
}
