// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"github.com/gin-gonic/gin"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/controller/v1/account"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/controller/v1/meta"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	srvv1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/service/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/storage"

	// binding 标签中的自定义规则
	_ "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/validator"
)

// routerDeps 路由需要的外部依赖
type routerDeps struct {
	store     store.Factory
	publisher event.Publisher
	blacklist storage.Blacklist
	jwt       *genericoptions.JwtOptions
	// limiter 为 nil 时登录、注册不限流
	limiter *middleware.IPLimiter
}

func initRouter(g *gin.Engine, deps routerDeps) error {
	return installController(g, deps)
}

func installController(g *gin.Engine, deps routerDeps) error {
	srv := srvv1.NewService(deps.store, deps.publisher)
	authHandler, err := newJWTAuth(deps.jwt, srv, deps.blacklist)
	if err != nil {
		return err
	}

	accountController := account.NewAccountController(deps.store, deps.publisher)
	metaController := meta.NewMetaController()

	limited := gin.HandlersChain{}
	if deps.limiter != nil {
		limited = append(limited, middleware.Limit(deps.limiter))
	}

	authGroup := g.Group("/api/auth")
	{
		authGroup.POST("/signin", append(limited, authHandler.SignIn)...)
		authGroup.POST("/signup", append(limited, accountController.SignUp)...)
		authGroup.POST("/signout", authHandler.SignOut)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	v1 := g.Group("/v1")
	{
		metav1 := v1.Group("/meta")
		{
			metav1.GET("/staff-roles", metaController.StaffRoles)
			metav1.GET("/center-statuses", metaController.CenterStatuses)
			metav1.GET("/divisions", metaController.Divisions)
			metav1.GET("/divisions/:name/districts", metaController.Districts)
		}

		accountv1 := v1.Group("/accounts", authHandler.AuthFunc()...)
		{
			accountv1.GET("/me", accountController.Me)
		}
	}

	return nil
}
