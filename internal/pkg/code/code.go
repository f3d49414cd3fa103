// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package code 业务错误码定义与注册。
//
// 编码规则：前两位为服务（10 通用，11 vaxcenter-apiserver），
// 中间两位为模块，后两位为模块内序号。
package code

import (
	"fmt"
	"net/http"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

// ErrCode 实现 errors.Coder
type ErrCode struct {
	// C 业务码
	C int

	// HTTP 对应的 HTTP 状态码
	HTTP int

	// Ext 对外展示的错误信息
	Ext string

	// Ref 参考文档
	Ref string
}

var _ errors.Coder = &ErrCode{}

func (coder ErrCode) Code() int {
	return coder.C
}

func (coder ErrCode) String() string {
	return coder.Ext
}

func (coder ErrCode) Reference() string {
	return coder.Ref
}

// HTTPStatus 未设置时按 500 处理
func (coder ErrCode) HTTPStatus() int {
	if coder.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return coder.HTTP
}

var allowedStatus = map[int]struct{}{
	http.StatusOK:                   {},
	http.StatusBadRequest:           {},
	http.StatusUnauthorized:         {},
	http.StatusForbidden:            {},
	http.StatusNotFound:             {},
	http.StatusMethodNotAllowed:     {},
	http.StatusRequestTimeout:       {},
	http.StatusConflict:             {},
	http.StatusUnsupportedMediaType: {},
	http.StatusTooManyRequests:      {},
	http.StatusInternalServerError:  {},
	http.StatusServiceUnavailable:   {},
}

func register(code int, httpStatus int, message string, refs ...string) {
	if _, ok := allowedStatus[httpStatus]; !ok {
		panic(fmt.Sprintf("http status %d of code %d is not allowed", httpStatus, code))
	}

	var reference string
	if len(refs) > 0 {
		reference = refs[0]
	}

	errors.MustRegister(&ErrCode{
		C:    code,
		HTTP: httpStatus,
		Ext:  message,
		Ref:  reference,
	})
}
