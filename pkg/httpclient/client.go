// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package httpclient 访问 vaxcenter-apiserver 的 REST 客户端。
//
// 所有失败都以 *failure.TransportFailure 返回：收到非 2xx 响应时 Message 为
// "Request failed with status code N"，并从响应体解析出 error 字段；
// 连接失败或超时时没有 Response。
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "vaxctl"

	networkErrorMessage = "Network Error"
	timeoutMessage      = "Request timed out"
)

// Client REST 客户端，零值不可用，使用 New 创建
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	token     string
	userAgent string
}

// Option 配置 Client
type Option func(*Client)

// WithHTTPClient 传入的 http.Client 会被复制，不会被修改
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout 与 WithHTTPClient 的先后顺序无关
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithToken 以 Bearer 方式携带令牌
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New baseURL 形如 http://127.0.0.1:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}

	hc := &http.Client{Timeout: defaultTimeout}
	if c.http != nil {
		copied := *c.http
		hc = &copied
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = hc

	return c
}

// SetToken 登录后更新令牌
func (c *Client) SetToken(token string) {
	c.token = token
}

// Get 请求 path 并把响应的 data 解码到 out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post 以 JSON 提交 in，并把响应的 data 解码到 out
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Do 发送请求。in 为 nil 时不带请求体，out 为 nil 时忽略响应体
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &failure.TransportFailure{Message: err.Error(), Method: method, URL: url, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &failure.TransportFailure{Message: err.Error(), Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &failure.TransportFailure{Message: transportMessage(err), Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &failure.TransportFailure{Message: transportMessage(err), Method: method, URL: url, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &failure.TransportFailure{
			Message: failure.StatusMessage(resp.StatusCode),
			Method:  method,
			URL:     url,
			Response: &failure.Response{
				Status: resp.StatusCode,
				Data:   ParseResponseData(raw),
				Body:   raw,
			},
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := decodeData(raw, out); err != nil {
		return &failure.TransportFailure{
			Message:  err.Error(),
			Method:   method,
			URL:      url,
			Response: &failure.Response{Status: resp.StatusCode, Body: raw},
			Err:      err,
		}
	}
	return nil
}

// ParseResponseData 从响应体读取 error、message、code，不是 JSON 对象时返回 nil
func ParseResponseData(body []byte) *failure.ResponseData {
	if _, dataType, _, err := jsonparser.Get(body); err != nil || dataType != jsonparser.Object {
		return nil
	}

	data := &failure.ResponseData{}
	if v, err := jsonparser.GetString(body, "error"); err == nil {
		data.Error = v
	}
	if v, err := jsonparser.GetString(body, "message"); err == nil {
		data.Message = v
	}
	if v, err := jsonparser.GetInt(body, "code"); err == nil {
		data.Code = int(v)
	}
	return data
}

// decodeData 响应体为 {"code","message","data"} 时只解码 data，否则解码整个响应体
func decodeData(body []byte, out interface{}) error {
	if data, dataType, _, err := jsonparser.Get(body, "data"); err == nil {
		if dataType == jsonparser.Null {
			return nil
		}
		if dataType == jsonparser.String {
			body = []byte(`"` + string(data) + `"`)
		} else {
			body = data
		}
	}
	return json.Unmarshal(body, out)
}

func transportMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return timeoutMessage
	}
	return networkErrorMessage
}
