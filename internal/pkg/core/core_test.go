// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/metrics"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func write(err error, data interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	WriteResponse(c, err, data)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrResponse {
	t.Helper()
	var body ErrResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWriteResponse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantError  string
	}{
		{
			name:       "带码错误使用调用方描述",
			err:        errors.WithCode(code.ErrAccountAlreadyExist, "account rahim@example.com already exists"),
			wantStatus: http.StatusConflict,
			wantCode:   code.ErrAccountAlreadyExist,
			wantError:  "account rahim@example.com already exists",
		},
		{
			name:       "包装的带码错误",
			err:        errors.WrapC(errors.New("record not found"), code.ErrDivisionNotFound, "division Kolkata not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   code.ErrDivisionNotFound,
			wantError:  "division Kolkata not found",
		},
		{
			name:       "5xx不暴露内部细节",
			err:        errors.WrapC(errors.New("dial tcp 10.0.0.1:3306"), code.ErrDatabase, "insert account"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   code.ErrDatabase,
			wantError:  "Database error",
		},
		{
			name:       "普通错误",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   code.ErrUnknown,
			wantError:  "something broke",
		},
		{
			name:       "传输失败取服务端错误",
			err:        failure.NewTransportFailure(502, &failure.ResponseData{Error: "Upstream registry unavailable"}),
			wantStatus: http.StatusInternalServerError,
			wantCode:   code.ErrUnknown,
			wantError:  "Upstream registry unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := write(tt.err, nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decode(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteResponse_Success(t *testing.T) {
	w := write(nil, gin.H{"roles": []string{"NURSE"}})
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int                 `json:"code"`
		Data map[string][]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, code.ErrSuccess, body.Code)
	assert.Equal(t, []string{"NURSE"}, body.Data["roles"])
}

func TestWriteResponse_CountsFailuresByKind(t *testing.T) {
	counter := metrics.ResponseFailures.WithLabelValues(string(failure.KindTransport), "100002")
	before := testutil.ToFloat64(counter)

	write(failure.NewTransportFailure(503, nil), nil)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	WriteCreated(c, "/v1/accounts/me", gin.H{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/v1/accounts/me", w.Header().Get("Location"))
}
