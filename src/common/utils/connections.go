package utils

import (
	"net/http"

	"github.com/hooklift/gowsdl/soap"
	"github.com/jack-barr3tt/trmnl-departures/src/common/config"
	"github.com/jack-barr3tt/trmnl-departures/src/common/ldb"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient returns nil when no redis address is configured.
func NewRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
}

// NewRailClient builds an LDB client authenticated with the configured token.
func NewRailClient(cfg config.Config, logger *zap.SugaredLogger) *ldb.Client {
	service := ldb.NewBoardService(soap.NewClient(cfg.LDBEndpoint), cfg.AccessToken)
	return ldb.NewClient(service, logger)
}

func NewHTTPClient() *http.Client {
	return &http.Client{}
}
