package store

import (
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/portal/internal/clock"
	"github.com/smallbiznis/portal/internal/config"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewStore picks the configured session store backend.
func NewStore(cfg config.Config, clk clock.Clock, log *zap.Logger) portaldomain.Store {
	ttl := time.Duration(cfg.Selection.TTLSeconds) * time.Second

	switch cfg.Selection.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Selection.RedisAddr})
		log.Info("portal session store", zap.String("backend", "redis"), zap.String("addr", cfg.Selection.RedisAddr))
		return NewRedis(client, ttl)
	default:
		log.Info("portal session store", zap.String("backend", "memory"))
		return NewMemory(ttl, clk)
	}
}

var Module = fx.Module("portal.store",
	fx.Provide(NewStore),
)
