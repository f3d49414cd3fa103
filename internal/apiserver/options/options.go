// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package options vaxcenter-apiserver 的全部命令行选项
package options

import (
	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	cliflag "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/cli/flag"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// Options 各分组的 mapstructure 名与配置文件中的顶级键一致
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions       `json:"server"   mapstructure:"server"`
	InsecureServing         *genericoptions.InsecureServingOptions `json:"insecure" mapstructure:"insecure"`
	JwtOptions              *genericoptions.JwtOptions             `json:"jwt"      mapstructure:"jwt"`
	MySQLOptions            *genericoptions.MySQLOptions           `json:"mysql"    mapstructure:"mysql"`
	RedisOptions            *genericoptions.RedisOptions           `json:"redis"    mapstructure:"redis"`
	KafkaOptions            *genericoptions.KafkaOptions           `json:"kafka"    mapstructure:"kafka"`
	LimitOptions            *genericoptions.LimitOptions           `json:"limit"    mapstructure:"limit"`
	FeatureOptions          *genericoptions.FeatureOptions         `json:"feature"  mapstructure:"feature"`
	Log                     *log.Options                           `json:"log"      mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		InsecureServing:         genericoptions.NewInsecureServingOptions(),
		JwtOptions:              genericoptions.NewJwtOptions(),
		MySQLOptions:            genericoptions.NewMySQLOptions(),
		RedisOptions:            genericoptions.NewRedisOptions(),
		KafkaOptions:            genericoptions.NewKafkaOptions(),
		LimitOptions:            genericoptions.NewLimitOptions(),
		FeatureOptions:          genericoptions.NewFeatureOptions(),
		Log:                     log.NewOptions(),
	}
}

// Flags 按分组返回命令行参数，帮助信息按分组打印
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.InsecureServing.AddFlags(fss.FlagSet("insecure serving"))
	o.JwtOptions.AddFlags(fss.FlagSet("jwt"))
	o.MySQLOptions.AddFlags(fss.FlagSet("mysql"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.KafkaOptions.AddFlags(fss.FlagSet("kafka"))
	o.LimitOptions.AddFlags(fss.FlagSet("limit"))
	o.FeatureOptions.AddFlags(fss.FlagSet("features"))
	o.Log.AddFlags(fss.FlagSet("logs"))

	return fss
}

// Complete 读取环境变量中的密钥并补全 redis 地址
func (o *Options) Complete() error {
	o.JwtOptions.Complete()
	o.RedisOptions.Complete()
	return nil
}

func (o *Options) Validate() []error {
	var errs []error

	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.InsecureServing.Validate()...)
	errs = append(errs, o.JwtOptions.Validate()...)
	errs = append(errs, o.MySQLOptions.Validate()...)
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.KafkaOptions.Validate()...)
	errs = append(errs, o.LimitOptions.Validate()...)
	errs = append(errs, o.FeatureOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	return errs
}

// String 密码和签名密钥不会被输出
func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
