// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// vaxctl 接种中心 API 的命令行客户端
package main

import (
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/vaxctl"
)

func main() {
	vaxctl.NewApp("vaxctl").Run()
}
