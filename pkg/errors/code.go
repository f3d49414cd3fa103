// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

/*
package errors
code.go
错误码注册与解析。

HTTP 状态码约定：
- 200：请求成功执行
- 400：客户端请求错误（如参数无效）
- 401：认证失败（如令牌无效）
- 403：授权失败（如权限不足）
- 404：资源不存在
- 409：资源冲突
- 500：服务器内部错误
*/
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
)

const _iseMsg = "An internal server error occurred"

var (
	_codes     = map[int]Coder{}
	_codeMutex = &sync.RWMutex{}

	// _unknownCode 未注册或非带码错误的兜底编码
	_unknownCode = defaultCoder{
		C:    1,
		HTTP: http.StatusInternalServerError,
		Ext:  _iseMsg,
	}
)

// Coder 错误码对外暴露的行为
type Coder interface {
	// Code 业务码
	Code() int
	// HTTPStatus 对应的 HTTP 状态码
	HTTPStatus() int
	// String 用户可见的描述
	String() string
	// Reference 参考文档地址
	Reference() string
}

type defaultCoder struct {
	C    int
	HTTP int
	Ext  string
	Ref  string
}

func (d defaultCoder) Code() int { return d.C }

func (d defaultCoder) HTTPStatus() int {
	if d.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return d.HTTP
}

func (d defaultCoder) String() string    { return d.Ext }
func (d defaultCoder) Reference() string { return d.Ref }

// Register 注册错误码，已存在则覆盖。编码 0 保留，注册会 panic。
func Register(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by `errors` as unknownCode error code")
	}
	_codeMutex.Lock()
	defer _codeMutex.Unlock()
	_codes[coder.Code()] = coder
}

// MustRegister 注册错误码，已存在则 panic
func MustRegister(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by `errors` as unknownCode error code")
	}
	_codeMutex.Lock()
	defer _codeMutex.Unlock()
	if _, ok := _codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code: %d already exist", coder.Code()))
	}
	_codes[coder.Code()] = coder
}

// ParseCoder 解析错误链上最外层的带码错误，nil 返回 nil，其它返回兜底编码
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	var wc *withCode
	if stderrors.As(err, &wc) {
		return ParseCoderByCode(wc.code)
	}
	return _unknownCode
}

// ParseCoderByCode 按业务码查询已注册的 Coder
func ParseCoderByCode(code int) Coder {
	_codeMutex.RLock()
	defer _codeMutex.RUnlock()
	if coder, ok := _codes[code]; ok {
		return coder
	}
	return _unknownCode
}

// IsCode 错误链中是否包含指定业务码
func IsCode(err error, code int) bool {
	for err != nil {
		if wc, ok := err.(*withCode); ok && wc.code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsWithCode 错误链中是否存在带码错误
func IsWithCode(err error) bool {
	var wc *withCode
	return stderrors.As(err, &wc)
}

// GetCode 返回最外层带码错误的业务码，没有时返回兜底编码
func GetCode(err error) int {
	var wc *withCode
	if stderrors.As(err, &wc) {
		return wc.code
	}
	return _unknownCode.C
}

// GetHTTPStatus 返回业务码注册的 HTTP 状态码
func GetHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ParseCoder(err).HTTPStatus()
}

// GetMessage 返回最外层带码错误的消息；普通错误直接返回 Error()
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var wc *withCode
	if stderrors.As(err, &wc) {
		return wc.err.Error()
	}
	return err.Error()
}

// NewDefaultCoder 构造一个默认 Coder，多用于测试
func NewDefaultCoder(code int, httpStatus int, msg string, ref string) Coder {
	return defaultCoder{C: code, HTTP: httpStatus, Ext: msg, Ref: ref}
}

func init() {
	Register(_unknownCode)
}
