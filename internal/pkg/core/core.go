// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package core 统一的 HTTP 响应写出。
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/metrics"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// ErrResponse 失败响应体。
// Error 是给终端用户看的一句话，客户端把它当作 response.data.error 展示；
// Message 是错误码的注册描述，Reference 为可选的文档地址。
type ErrResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Reference string `json:"reference,omitempty"`
}

// SuccessResponse 成功响应体
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// WriteResponse 写出响应。
// 带码错误按注册的 HTTP 状态码和描述返回，其他错误统一返回 500。
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		status, body := errorBody(err)
		log.L(c).Errorw("request failed",
			"code", body.Code, "status", status, "error", body.Error, "detail", err.Error())
		metrics.RecordFailure(failure.Classify(err).Kind(), body.Code)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    code.ErrSuccess,
		Message: "OK",
		Data:    data,
	})
}

// WriteCreated 201，data 为新建的资源
func WriteCreated(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, SuccessResponse{
		Code:    code.ErrSuccess,
		Message: "Created",
		Data:    data,
	})
}

// AbortWithError 写出失败响应并终止后续处理，供中间件使用
func AbortWithError(c *gin.Context, err error) {
	WriteResponse(c, err, nil)
	c.Abort()
}

func errorBody(err error) (int, ErrResponse) {
	if errors.IsWithCode(err) {
		coder := errors.ParseCoder(err)
		return coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Error:     userMessage(err, coder),
			Reference: coder.Reference(),
		}
	}

	unknown := errors.ParseCoderByCode(code.ErrUnknown)
	return http.StatusInternalServerError, ErrResponse{
		Code:    code.ErrUnknown,
		Message: unknown.String(),
		Error:   failure.ExtractMessage(err),
	}
}

// userMessage 5xx 不向外暴露内部细节，其余返回调用方写入的描述
func userMessage(err error, coder errors.Coder) string {
	if coder.HTTPStatus() >= http.StatusInternalServerError {
		return coder.String()
	}
	if msg := errors.GetMessage(err); msg != "" {
		return msg
	}
	return coder.String()
}
