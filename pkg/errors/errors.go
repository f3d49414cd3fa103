// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package errors 提供带堆栈、带业务码的错误类型。
//
// 在标准库 error 的基础上扩展：
//  1. 创建时自动记录调用栈（New/Errorf/WithCode）
//  2. 多层包装并保留错误链（Wrap/WithMessage/WrapC）
//  3. 关联业务错误码，由 Coder 注册表映射到 HTTP 状态与对外消息
//
// 所有包装类型都实现 Unwrap，标准库 errors.Is / errors.As 可以沿错误链工作。
//
// 使用示例：
//
//	err := errors.New("账号不存在")
//	err = errors.WrapC(err, code.ErrAccountNotFound, "登录失败")
//	fmt.Printf("%+v\n", err)
package errors

import (
	"encoding/json"
	"fmt"
	"io"
)

// fundamental 最底层的错误，只有消息和堆栈
type fundamental struct {
	msg string
	*stack
}

// New 返回带有调用栈的错误
func New(message string) error {
	return &fundamental{
		msg:   message,
		stack: callers(),
	}
}

// Errorf 按格式化字符串生成带调用栈的错误
func Errorf(format string, args ...interface{}) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		stack: callers(),
	}
}

func (f *fundamental) Error() string { return f.msg }

func (f *fundamental) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			io.WriteString(st, f.msg)
			f.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, f.msg)
	case 'q':
		fmt.Fprintf(st, "%q", f.msg)
	}
}

// withStack 为已有错误补充调用栈
type withStack struct {
	error
	*stack
}

// WithStack 为错误追加当前调用栈，err 为 nil 时返回 nil。
// 带码错误会保持原有业务码。
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   e.err,
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{err, callers()}
}

func (w *withStack) Cause() error  { return w.error }
func (w *withStack) Unwrap() error { return w.error }

func (w *withStack) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v", w.Cause())
			w.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, w.Error())
	case 'q':
		fmt.Fprintf(st, "%q", w.Error())
	}
}

// Wrap 为错误追加消息和调用栈，err 为 nil 时返回 nil
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   fmt.Errorf("%s", message),
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{
		&withMessage{cause: err, msg: message},
		callers(),
	}
}

// Wrapf 同 Wrap，消息支持格式化
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   fmt.Errorf(format, args...),
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{
		&withMessage{cause: err, msg: fmt.Sprintf(format, args...)},
		callers(),
	}
}

// withMessage 只追加消息，不记录调用栈
type withMessage struct {
	cause error
	msg   string
}

// WithMessage 为错误追加消息，err 为 nil 时返回 nil
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &withMessage{cause: err, msg: message}
}

// WithMessagef 同 WithMessage，消息支持格式化
func WithMessagef(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withMessage{cause: err, msg: fmt.Sprintf(format, args...)}
}

func (w *withMessage) Error() string { return w.msg }
func (w *withMessage) Cause() error  { return w.cause }
func (w *withMessage) Unwrap() error { return w.cause }

func (w *withMessage) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v\n", w.Cause())
			io.WriteString(st, w.msg)
			return
		}
		fallthrough
	case 's', 'q':
		io.WriteString(st, w.Error())
	}
}

// withCode 携带业务码的错误
type withCode struct {
	err   error // 当前层的消息
	code  int   // 业务码
	cause error // 上一级错误
	*stack
}

// WithCode 创建一个带业务码的根错误
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		stack: callers(),
	}
}

// WrapC 用业务码和新消息包装已有错误，err 为 nil 时返回 nil
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		cause: err,
		stack: callers(),
	}
}

// Error 返回当前层的消息，不含业务码
func (w *withCode) Error() string { return w.err.Error() }

func (w *withCode) Cause() error  { return w.cause }
func (w *withCode) Unwrap() error { return w.cause }

func (w *withCode) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('#') {
			b, err := json.MarshalIndent(w.toJSON(), "", "    ")
			if err != nil {
				fmt.Fprintf(st, "格式化错误: %v", err)
				return
			}
			st.Write(b)
			return
		}
		if st.Flag('+') {
			if w.cause != nil {
				fmt.Fprintf(st, "  ↳ %+v\n", w.cause)
			}
			fmt.Fprintf(st, "[code: %d][http:%d] %s", w.code, ParseCoderByCode(w.code).HTTPStatus(), w.err.Error())
			if w.stack != nil {
				w.stack.Format(st, verb)
			}
			return
		}
		fmt.Fprintf(st, "[code: %d] %s", w.code, w.err.Error())
	case 's', 'q':
		io.WriteString(st, w.Error())
	}
}

// Cause 沿 Cause() 链返回最底层的错误
func Cause(err error) error {
	type causer interface {
		Cause() error
	}
	for err != nil {
		c, ok := err.(causer)
		if !ok || c.Cause() == nil {
			break
		}
		err = c.Cause()
	}
	return err
}

type withCodeJSON struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Cause   interface{} `json:"cause,omitempty"`
	Stack   []string    `json:"stack,omitempty"`
	HTTP    int         `json:"httpStatus"`
	Ref     string      `json:"reference,omitempty"`
}

func (w *withCode) toJSON() withCodeJSON {
	var cause interface{}
	if w.cause != nil {
		if c, ok := w.cause.(*withCode); ok {
			cause = c.toJSON()
		} else {
			cause = map[string]string{"message": w.cause.Error()}
		}
	}
	coder := ParseCoderByCode(w.code)
	return withCodeJSON{
		Code:    w.code,
		Message: w.err.Error(),
		HTTP:    coder.HTTPStatus(),
		Ref:     coder.Reference(),
		Cause:   cause,
		Stack:   w.stack.ToSlice(),
	}
}
