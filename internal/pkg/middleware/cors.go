// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

// Cors 允许的来源为空时放开所有来源，但不允许携带凭证
func Cors(allowOrigins []string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    corsMethods,
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", XRequestIDKey},
			ExposeHeaders:   []string{XRequestIDKey},
			MaxAge:          12 * time.Hour,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     corsMethods,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", XRequestIDKey},
		ExposeHeaders:    []string{XRequestIDKey},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
