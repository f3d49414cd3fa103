// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package failure

import "fmt"

// UnknownErrorMessage 无法识别的失败值对应的固定消息
const UnknownErrorMessage = "Unknown error"

// Failure 三种失败变体的封闭集合，包外无法新增实现
type Failure interface {
	// Kind 变体名称，用于日志与指标标签
	Kind() Kind
	isFailure()
}

// Kind 失败变体
type Kind string

const (
	KindTransport    Kind = "transport"
	KindGeneric      Kind = "generic"
	KindUnrecognized Kind = "unrecognized"
)

// ResponseData 服务端响应体中与错误相关的字段
type ResponseData struct {
	// Error 对应响应体里的 "error" 字段，缺失或为 null 时为空串
	Error string `json:"error,omitempty"`
	// Message 对应响应体里的 "message" 字段，仅用于日志
	Message string `json:"message,omitempty"`
	// Code 业务码，响应体没有时为 0
	Code int `json:"code,omitempty"`
}

// Response HTTP 客户端收到的响应
type Response struct {
	Status int
	Data   *ResponseData
	// Body 原始响应体
	Body []byte
}

// TransportFailure HTTP 客户端层的错误。
// Message 总是存在，形如 "Request failed with status code 401"；
// 没有收到响应（连接失败、超时）时 Response 为 nil。
type TransportFailure struct {
	Message  string
	Method   string
	URL      string
	Response *Response
	// Err 底层的 transport 错误，可能为 nil
	Err error
}

// NewTransportFailure 根据状态码构造一个带响应的 TransportFailure
func NewTransportFailure(status int, data *ResponseData) *TransportFailure {
	return &TransportFailure{
		Message:  StatusMessage(status),
		Response: &Response{Status: status, Data: data},
	}
}

// StatusMessage 非 2xx 响应的顶层消息
func StatusMessage(status int) string {
	return fmt.Sprintf("Request failed with status code %d", status)
}

func (t *TransportFailure) Error() string {
	if t == nil {
		return UnknownErrorMessage
	}
	return t.Message
}

func (t *TransportFailure) Unwrap() error {
	if t == nil {
		return nil
	}
	return t.Err
}

// Status 响应状态码，没有响应时为 0
func (t *TransportFailure) Status() int {
	if t == nil || t.Response == nil {
		return 0
	}
	return t.Response.Status
}

// ServerError 返回 response.data.error，缺失时为空串
func (t *TransportFailure) ServerError() string {
	if t == nil || t.Response == nil || t.Response.Data == nil {
		return ""
	}
	return t.Response.Data.Error
}

func (*TransportFailure) Kind() Kind { return KindTransport }
func (*TransportFailure) isFailure() {}

// GenericFailure 普通错误
type GenericFailure struct {
	Err     error
	Message string
}

func (GenericFailure) Kind() Kind { return KindGeneric }
func (GenericFailure) isFailure() {}

// UnrecognizedFailure 无法识别的失败值
type UnrecognizedFailure struct {
	Value any
}

func (UnrecognizedFailure) Kind() Kind { return KindUnrecognized }
func (UnrecognizedFailure) isFailure() {}

// Transporter 由其它 HTTP 客户端错误实现，用于在错误链中声明自己是 transport 层失败
type Transporter interface {
	TransportFailure() *TransportFailure
}
