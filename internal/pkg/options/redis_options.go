// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/storage"
)

// RedisOptions Redis 连接参数，Host 为空时不连接 Redis
type RedisOptions struct {
	Host                  string   `json:"host"                     mapstructure:"host"`
	Port                  int      `json:"port"                     mapstructure:"port"`
	Addrs                 []string `json:"addrs"                    mapstructure:"addrs"`
	Username              string   `json:"username"                 mapstructure:"username"`
	Password              string   `json:"-"                        mapstructure:"password"`
	Database              int      `json:"database"                 mapstructure:"database"`
	MasterName            string   `json:"master-name"              mapstructure:"master-name"`
	MaxActive             int      `json:"optimisation-max-active"  mapstructure:"optimisation-max-active"`
	Timeout               int      `json:"timeout"                  mapstructure:"timeout"`
	EnableCluster         bool     `json:"enable-cluster"           mapstructure:"enable-cluster"`
	UseSSL                bool     `json:"use-ssl"                  mapstructure:"use-ssl"`
	SSLInsecureSkipVerify bool     `json:"ssl-insecure-skip-verify" mapstructure:"ssl-insecure-skip-verify"`
}

func NewRedisOptions() *RedisOptions {
	return &RedisOptions{
		Host:      "127.0.0.1",
		Port:      6379,
		Addrs:     []string{},
		MaxActive: 500,
		Timeout:   5,
	}
}

// Complete 未配置 addrs 时由 host:port 生成
func (r *RedisOptions) Complete() {
	if len(r.Addrs) == 0 && r.Host != "" {
		port := r.Port
		if port == 0 {
			port = 6379
		}
		r.Addrs = []string{net.JoinHostPort(r.Host, strconv.Itoa(port))}
	}
}

// Enabled 是否配置了 Redis
func (r *RedisOptions) Enabled() bool {
	return r.Host != "" || len(r.Addrs) > 0
}

func (r *RedisOptions) Validate() []error {
	var errs []error

	if r.Port < 0 || r.Port > 65535 {
		errs = append(errs, fmt.Errorf("--redis.port %d must be between 0 and 65535", r.Port))
	}
	if r.Database < 0 {
		errs = append(errs, fmt.Errorf("--redis.database cannot be negative"))
	}
	if r.EnableCluster && r.Database != 0 {
		errs = append(errs, fmt.Errorf("--redis.database must be 0 when --redis.enable-cluster is set"))
	}

	return errs
}

func (r *RedisOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&r.Host, "redis.host", r.Host, "Hostname of your Redis server. Empty disables token revocation.")
	fs.IntVar(&r.Port, "redis.port", r.Port, "The port the Redis server is listening on.")
	fs.StringSliceVar(&r.Addrs, "redis.addrs", r.Addrs, "A set of redis address(format: 127.0.0.1:6379).")
	fs.StringVar(&r.Username, "redis.username", r.Username, "Username for access to redis service.")
	fs.StringVar(&r.Password, "redis.password", r.Password, "Optional auth password for Redis db.")
	fs.IntVar(&r.Database, "redis.database", r.Database, ""+
		"By default, the database is 0. Setting the database is not supported with redis cluster.")
	fs.StringVar(&r.MasterName, "redis.master-name", r.MasterName, "The name of master redis instance.")
	fs.IntVar(&r.MaxActive, "redis.optimisation-max-active", r.MaxActive, ""+
		"Maximum number of socket connections per redis node.")
	fs.IntVar(&r.Timeout, "redis.timeout", r.Timeout, "Timeout (in seconds) when connecting to redis service.")
	fs.BoolVar(&r.EnableCluster, "redis.enable-cluster", r.EnableCluster, ""+
		"If you are using Redis cluster, enable it here to enable the slots mode.")
	fs.BoolVar(&r.UseSSL, "redis.use-ssl", r.UseSSL, "If set, will assume the connection to Redis is encrypted.")
	fs.BoolVar(&r.SSLInsecureSkipVerify, "redis.ssl-insecure-skip-verify", r.SSLInsecureSkipVerify, ""+
		"Allows usage of self-signed certificates when connecting to an encrypted Redis database.")
}

// StorageConfig 转换为 storage 包的配置
func (r *RedisOptions) StorageConfig() *storage.Config {
	return &storage.Config{
		Addrs:                 r.Addrs,
		MasterName:            r.MasterName,
		Username:              r.Username,
		Password:              r.Password,
		Database:              r.Database,
		MaxActive:             r.MaxActive,
		Timeout:               r.Timeout,
		EnableCluster:         r.EnableCluster,
		UseSSL:                r.UseSSL,
		SSLInsecureSkipVerify: r.SSLInsecureSkipVerify,
	}
}
