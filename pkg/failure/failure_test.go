// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package failure

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

type panicError struct{}

func (panicError) Error() string { panic("boom") }

type nilPtrError struct{ msg string }

func (e *nilPtrError) Error() string { return e.msg }

type emptyError struct{}

func (emptyError) Error() string { return "" }

// sdkError 模拟另一个 HTTP 客户端的错误类型
type sdkError struct {
	status int
	body   string
}

func (e *sdkError) Error() string { return "sdk: " + StatusMessage(e.status) }

func (e *sdkError) TransportFailure() *TransportFailure {
	return NewTransportFailure(e.status, &ResponseData{Error: e.body})
}

func TestExtractMessageScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{
			name: "服务端返回error字段",
			input: &TransportFailure{
				Message:  "Request failed with status code 401",
				Response: &Response{Status: 401, Data: &ResponseData{Error: "Invalid credentials"}},
			},
			want: "Invalid credentials",
		},
		{
			name:  "没有响应的网络错误",
			input: &TransportFailure{Message: "Network Error"},
			want:  "Network Error",
		},
		{
			name:  "普通错误",
			input: stderrors.New("Unexpected token"),
			want:  "Unexpected token",
		},
		{name: "nil", input: nil, want: UnknownErrorMessage},
		{name: "普通map", input: map[string]string{"foo": "bar"}, want: UnknownErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage(tt.input))
		})
	}
}

func TestTransportFailureFallback(t *testing.T) {
	const top = "Request failed with status code 500"
	tests := []struct {
		name string
		resp *Response
	}{
		{name: "response缺失", resp: nil},
		{name: "data缺失", resp: &Response{Status: 500}},
		{name: "error为空串", resp: &Response{Status: 500, Data: &ResponseData{}}},
		{name: "只有message字段", resp: &Response{Status: 500, Data: &ResponseData{Message: "db down"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := &TransportFailure{Message: top, Response: tt.resp}
			assert.Equal(t, top, ExtractMessage(tf))
			assert.Equal(t, top, ExtractMessage(*tf))
		})
	}
}

func TestTransportFailureInErrorChain(t *testing.T) {
	tf := NewTransportFailure(409, &ResponseData{Error: "Email already registered"})

	t.Run("fmt包装", func(t *testing.T) {
		err := fmt.Errorf("sign up: %w", tf)
		assert.Equal(t, "Email already registered", ExtractMessage(err))
		assert.Equal(t, KindTransport, Classify(err).Kind())
	})

	t.Run("errors.Wrap包装", func(t *testing.T) {
		err := errors.Wrap(tf, "调用注册接口失败")
		assert.Equal(t, "Email already registered", ExtractMessage(err))
	})

	t.Run("Transporter实现", func(t *testing.T) {
		err := fmt.Errorf("client: %w", &sdkError{status: 403, body: "Forbidden center"})
		assert.Equal(t, "Forbidden center", ExtractMessage(err))

		empty := &sdkError{status: 502}
		assert.Equal(t, StatusMessage(502), ExtractMessage(empty))
	})
}

func TestGenericFailure(t *testing.T) {
	assert.Equal(t, io.EOF.Error(), ExtractMessage(io.EOF))
	assert.Equal(t, "读取配置失败", ExtractMessage(errors.Wrap(io.EOF, "读取配置失败")))

	f := Classify(io.EOF)
	g, ok := f.(GenericFailure)
	require.True(t, ok)
	assert.Equal(t, io.EOF, g.Err)
	assert.Equal(t, KindGeneric, g.Kind())
}

func TestUnrecognizedInputs(t *testing.T) {
	var nilTransport *TransportFailure
	var nilPtr *nilPtrError
	var nilErr error = nilPtr

	inputs := []any{
		nil,
		42,
		3.14,
		"plain string",
		struct{}{},
		map[string]any{},
		[]string{"a"},
		nilTransport,
		nilErr,
		panicError{},
		emptyError{},
		UnrecognizedFailure{Value: "x"},
		GenericFailure{},
		TransportFailure{},
	}
	for i, in := range inputs {
		t.Run(fmt.Sprintf("输入%d_%T", i, in), func(t *testing.T) {
			var got string
			require.NotPanics(t, func() { got = ExtractMessage(in) })
			assert.Equal(t, UnknownErrorMessage, got)
		})
	}
}

func TestClassifyKinds(t *testing.T) {
	assert.Equal(t, KindUnrecognized, Classify(nil).Kind())
	assert.Equal(t, KindUnrecognized, Classify("boom").Kind())
	assert.Equal(t, KindGeneric, Classify(stderrors.New("x")).Kind())
	assert.Equal(t, KindTransport, Classify(&TransportFailure{Message: "x"}).Kind())

	// 已分类的值原样返回
	g := GenericFailure{Message: "kept"}
	assert.Equal(t, g, Classify(g))
	assert.Equal(t, "kept", Message(g))
	assert.Equal(t, UnknownErrorMessage, Message(nil))
}

func TestTransportFailureAccessors(t *testing.T) {
	tf := NewTransportFailure(401, &ResponseData{Error: "bad"})
	assert.Equal(t, 401, tf.Status())
	assert.Equal(t, "bad", tf.ServerError())
	assert.Equal(t, "Request failed with status code 401", tf.Error())
	assert.Nil(t, tf.Unwrap())

	var nilTF *TransportFailure
	assert.Equal(t, 0, nilTF.Status())
	assert.Equal(t, "", nilTF.ServerError())

	wrapped := &TransportFailure{Message: "dial tcp: refused", Err: io.ErrClosedPipe}
	assert.True(t, stderrors.Is(wrapped, io.ErrClosedPipe))
}
