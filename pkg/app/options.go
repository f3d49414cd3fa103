// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package app

import (
	cliflag "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/cli/flag"
)

// CliOptions 命令行选项需要实现的接口
type CliOptions interface {
	Flags() (fss cliflag.NamedFlagSets)
	Validate() []error
}

// ConfigurableOptions 可以从配置文件加载的选项
type ConfigurableOptions interface {
	ApplyFlags() []error
}

// CompleteableOptions 校验前补全默认值
type CompleteableOptions interface {
	Complete() error
}

// PrintableOptions 启动时打印生效配置
type PrintableOptions interface {
	String() string
}
