// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/config"
)

// Run 创建服务并运行，收到 SIGINT 或 SIGTERM 后优雅退出
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := createAPIServer(ctx, cfg)
	if err != nil {
		return err
	}

	prepared, err := server.PrepareRun()
	if err != nil {
		server.close()
		return err
	}

	return prepared.Run(ctx)
}
