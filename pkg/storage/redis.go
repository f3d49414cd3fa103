// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package storage Redis 客户端与基于 Redis 的令牌吊销名单。
package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// Config Redis 连接配置
type Config struct {
	Addrs                 []string
	MasterName            string
	Username              string
	Password              string
	Database              int
	MaxActive             int
	Timeout               int
	EnableCluster         bool
	UseSSL                bool
	SSLInsecureSkipVerify bool
}

// NewClient 按配置创建单机、哨兵或集群客户端，并 Ping 一次确认可用
func NewClient(ctx context.Context, cfg *Config) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("no redis address configured")
	}

	poolSize := 500
	if cfg.MaxActive > 0 {
		poolSize = cfg.MaxActive
	}
	timeout := 5 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	var tlsConfig *tls.Config
	if cfg.UseSSL {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: cfg.SSLInsecureSkipVerify, //nolint:gosec
		}
	}

	opts := &redis.UniversalOptions{
		Addrs:        cfg.Addrs,
		MasterName:   cfg.MasterName,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  240 * timeout,
		PoolSize:     poolSize,
		TLSConfig:    tlsConfig,
	}

	var client redis.UniversalClient
	switch {
	case cfg.MasterName != "":
		log.Debug("--> [REDIS] Creating sentinel-backed failover client")
		client = redis.NewFailoverClient(opts.Failover())
	case cfg.EnableCluster:
		log.Debug("--> [REDIS] Creating cluster client")
		client = redis.NewClusterClient(opts.Cluster())
	default:
		log.Debug("--> [REDIS] Creating single-node client")
		client = redis.NewClient(opts.Simple())
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %v: %w", cfg.Addrs, err)
	}

	return client, nil
}
