package app

import (
	"database/sql"
	"fmt"
	"time"

	"dayflow-hrms/internal/config"
	"dayflow-hrms/internal/middleware"
	"dayflow-hrms/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by every module.
type Infra struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

func connectInfra(cfg config.Config, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.DBMaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, DB: sqlDB}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	}
	return infra, nil
}

// BuildApp connects the stores, migrates when asked, installs the global
// middleware and registers every module on router. The returned Infra must be
// closed by the caller after the server stops.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	log := logger.Named("app")

	infra, err := connectInfra(cfg, true)
	if err != nil {
		return nil, err
	}
	log.Info("database and redis connections established")

	if cfg.RunMigrations {
		if err := migrate(infra.GormDB); err != nil {
			infra.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated")
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(rateLimit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}

	return infra, nil
}
