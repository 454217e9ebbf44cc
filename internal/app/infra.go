package app

import (
	"auth-gateway/internal/config"
	"auth-gateway/internal/directory"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/redis"
)

type Infra struct {
	Redis     *redis.Client
	Directory *directory.Client
}

func setupInfra(cfg config.Config) (*Infra, error) {
	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	dirClient := directory.NewClient(cfg.DirectoryURL, cfg.DirectoryTimeout)

	logger.Info("directory client ready", map[string]any{
		"url": cfg.DirectoryURL,
	})

	return &Infra{
		Redis:     redisClient,
		Directory: dirClient,
	}, nil
}
