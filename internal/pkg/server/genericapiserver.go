// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package server 通用的 gin HTTP 服务：中间件、健康检查、指标、性能分析和优雅退出。
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/core"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/middleware"
	pkgerrors "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/version"
)

// GenericAPIServer 包装 gin.Engine
type GenericAPIServer struct {
	middlewares         []string
	InsecureServingInfo *InsecureServingInfo
	ShutdownTimeout     time.Duration

	*gin.Engine
	healthz         bool
	enableMetrics   bool
	enableProfiling bool

	insecureServer *http.Server
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallMiddlewares()
	s.InstallAPIs()
}

// Setup 路由调试输出走 zap
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Debugf("%-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, filepath.Base(handlerName), nuHandlers)
	}
}

// InstallMiddlewares recovery、requestid、context 总是启用，其他按配置启用
func (s *GenericAPIServer) InstallMiddlewares() {
	s.Use(middleware.Middlewares["recovery"])
	s.Use(middleware.RequestID())
	s.Use(middleware.Context())

	for _, m := range s.middlewares {
		mw, ok := middleware.Middlewares[m]
		if !ok {
			log.Warnf("can not find middleware: %s", m)
			continue
		}
		if m == "dump" && gin.Mode() == gin.ReleaseMode {
			log.Warn("middleware dump is ignored in release mode")
			continue
		}

		log.Infof("install middleware: %s", m)
		s.Use(mw)
	}
}

// InstallAPIs 健康检查、版本、指标、性能分析以及 404/405 处理
func (s *GenericAPIServer) InstallAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if s.enableMetrics {
		prometheus := ginprometheus.NewPrometheus("gin")
		prometheus.Use(s.Engine)
	}

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})

	s.HandleMethodNotAllowed = true
	s.NoRoute(func(c *gin.Context) {
		core.WriteResponse(c, pkgerrors.WithCode(code.ErrPageNotFound, "Page not found: %s", c.Request.URL.Path), nil)
	})
	s.NoMethod(func(c *gin.Context) {
		core.WriteResponse(c, pkgerrors.WithCode(code.ErrMethodNotAllowed, "Method %s not allowed", c.Request.Method), nil)
	})
}

// Run 启动监听，ctx 取消后优雅退出
func (s *GenericAPIServer) Run(ctx context.Context) error {
	s.insecureServer = &http.Server{
		Addr:              s.InsecureServingInfo.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          log.StdErrLogger(),
	}

	listener, err := net.Listen("tcp", s.InsecureServingInfo.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.InsecureServingInfo.Address, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Infof("Start to listening the incoming requests on http address: %s", listener.Addr())
		if err := s.insecureServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Infof("Server on %s stopped", listener.Addr())
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	if s.healthz {
		pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
		defer pingCancel()
		if err := s.ping(pingCtx, listener.Addr().String()); err != nil {
			cancel()
			if werr := eg.Wait(); werr != nil {
				return werr
			}
			// 启动过程中收到退出信号
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}

	return eg.Wait()
}

// Close 在超时时间内等待处理中的请求结束
func (s *GenericAPIServer) Close() error {
	if s.insecureServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		log.Warnf("Shutdown insecure server failed: %s", err.Error())
		return err
	}
	return nil
}

// ping 启动后轮询 /healthz，确认服务可用
func (s *GenericAPIServer) ping(ctx context.Context, address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	url := fmt.Sprintf("http://%s/healthz", net.JoinHostPort(host, port))

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				log.Info("The router has been deployed successfully.")
				return nil
			}
		}

		log.Info("Waiting for the router, retry in 1 second.")
		select {
		case <-ctx.Done():
			return fmt.Errorf("the router has no response, or it might took too long to start up: %w", ctx.Err())
		case <-time.After(time.Second):
		}
	}
}

// RegisteredRoutes 已注册的路由，method 与 path 以空格连接
func (s *GenericAPIServer) RegisteredRoutes() []string {
	routes := s.Routes()
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, strings.Join([]string{r.Method, r.Path}, " "))
	}
	return out
}
