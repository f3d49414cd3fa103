// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

const configFlagName = "config"

// addConfigFlag 注册 --config，并把环境变量绑定到 viper。
// vaxcenter-apiserver 的前缀为 VAXCENTER_，mysql.host 对应 VAXCENTER_MYSQL_HOST。
func addConfigFlag(v *viper.Viper, basename string, fs *pflag.FlagSet) {
	fs.StringP(configFlagName, "c", "", "Read configuration from specified `FILE`, support JSON, TOML, YAML, HCL, or Java properties formats.")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix(basename))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func envPrefix(basename string) string {
	name := strings.Split(FormatBaseName(basename), "-")[0]
	return strings.ToUpper(name)
}

// readConfig 显式指定的配置文件必须存在，默认路径下找不到配置文件时忽略
func readConfig(v *viper.Viper, basename string) error {
	cfgFile := ""
	if f := v.GetString(configFlagName); f != "" {
		cfgFile = f
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if names := strings.Split(basename, "-"); len(names) > 1 {
			if home, err := os.UserHomeDir(); err == nil {
				v.AddConfigPath(filepath.Join(home, "."+names[0]))
			}
			v.AddConfigPath(filepath.Join("/etc", names[0]))
		}
		v.SetConfigName(basename)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrapf(err, "failed to read configuration file(%s)", cfgFile)
	}

	return nil
}

// printConfig 以表格形式输出所有生效的配置项
func printConfig(w io.Writer, v *viper.Viper) {
	if keys := v.AllKeys(); len(keys) > 0 {
		fmt.Fprintf(w, "%v Configuration items:\n", progressMessage)
		table := uitable.New()
		table.Separator = " "
		table.MaxColWidth = 80
		table.RightAlign(0)
		for _, k := range keys {
			table.AddRow(fmt.Sprintf("%s:", k), v.Get(k))
		}
		fmt.Fprintf(w, "%v\n", table)
	}
}
