// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// vaxcenter-apiserver 接种中心员工账号 API 服务
package main

import (
	"os"
	"runtime"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver"
	_ "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
)

func main() {
	if len(os.Getenv("GOMAXPROCS")) == 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	apiserver.NewApp("vaxcenter-apiserver").Run()
}
