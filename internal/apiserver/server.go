// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/config"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store/mysql"
	genericapiserver "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/server"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/storage"
)

type apiServer struct {
	genericAPIServer *genericapiserver.GenericAPIServer
	cfg              *config.Config
	store            store.Factory
	publisher        event.Publisher
	redisClient      redis.UniversalClient
	blacklist        storage.Blacklist
}

type preparedAPIServer struct {
	*apiServer
}

func (s *apiServer) PrepareRun() (preparedAPIServer, error) {
	err := initRouter(s.genericAPIServer.Engine, routerDeps{
		store:     s.store,
		publisher: s.publisher,
		blacklist: s.blacklist,
		jwt:       s.cfg.JwtOptions,
		limiter:   s.cfg.LimitOptions.NewAuthLimiter(),
	})
	if err != nil {
		return preparedAPIServer{}, err
	}

	return preparedAPIServer{s}, nil
}

// Run 阻塞直到 ctx 取消，然后依次关闭 HTTP 服务和各个客户端
func (s preparedAPIServer) Run(ctx context.Context) error {
	defer s.close()

	return s.genericAPIServer.Run(ctx)
}

func (s *apiServer) close() {
	if err := s.publisher.Close(); err != nil {
		log.Warnf("Failed to close event publisher: %s", err.Error())
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Warnf("Failed to close redis client: %s", err.Error())
		}
	}
	if err := s.store.Close(); err != nil {
		log.Warnf("Failed to close database: %s", err.Error())
	}
	log.Info("All clients closed")
}

func createAPIServer(ctx context.Context, cfg *config.Config) (*apiServer, error) {
	storeIns, err := mysql.GetMySQLFactoryOr(cfg.MySQLOptions)
	if err != nil {
		return nil, err
	}
	store.SetClient(storeIns)

	s := &apiServer{
		cfg:       cfg,
		store:     storeIns,
		publisher: event.NewPublisher(cfg.KafkaOptions),
	}

	if cfg.RedisOptions.Enabled() {
		client, err := storage.NewClient(ctx, cfg.RedisOptions.StorageConfig())
		if err != nil {
			_ = storeIns.Close()
			return nil, err
		}
		s.redisClient = client
		s.blacklist = storage.NewRedisBlacklist(client, "")
	} else {
		log.Warn("Redis is not configured, revoked tokens are kept in memory")
		s.blacklist = storage.NewMemoryBlacklist()
	}

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		s.close()
		return nil, err
	}
	s.genericAPIServer, err = genericConfig.Complete().New()
	if err != nil {
		s.close()
		return nil, err
	}

	return s, nil
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}
	if lastErr = cfg.FeatureOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}
	if lastErr = cfg.InsecureServing.ApplyTo(genericConfig); lastErr != nil {
		return
	}
	if lastErr = cfg.JwtOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
