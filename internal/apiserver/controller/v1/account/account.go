// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package account 账号注册与查询接口
package account

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	srvv1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/service/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/core"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
	pkgvalidator "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/validator"
)

// AccountController 处理账号相关请求
type AccountController struct {
	srv srvv1.Service
}

func NewAccountController(store store.Factory, publisher event.Publisher) *AccountController {
	return &AccountController{
		srv: srvv1.NewService(store, publisher),
	}
}

// SignUp 注册员工账号，成功返回 201
func (a *AccountController) SignUp(c *gin.Context) {
	log.L(c).Info("account sign up function called.")

	var r v1.SignUpRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, bindError(err), nil)
		return
	}

	account, err := a.srv.Accounts().SignUp(c, &r)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteCreated(c, "/v1/accounts/me", account)
}

// Me 当前登录的账号
func (a *AccountController) Me(c *gin.Context) {
	email := c.GetString(middleware.UsernameKey)
	if email == "" {
		core.WriteResponse(c, errors.WithCode(code.ErrUnauthorized, "Please sign in first"), nil)
		return
	}

	account, err := a.srv.Accounts().Get(c, email)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, account)
}

// bindError 校验失败与请求体无法解析使用不同的业务码
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return errors.WrapC(err, code.ErrValidation, "%s", pkgvalidator.Translate(verrs))
	}
	return errors.WrapC(err, code.ErrBind, "Invalid request body")
}
