package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"blood-donor-service/internal/core/cache"
	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/database"
	"blood-donor-service/internal/core/logger"
	"blood-donor-service/internal/repo"
	"blood-donor-service/internal/service"
)

// Deps 进程级依赖，启动时建一次
type Deps struct {
	DB    *gorm.DB
	Cache *cache.Cache // redis.addr 为空时为 nil
	Svc   *service.DonorService
}

// OpenDB 打开数据库；migrate 为 true 时顺带建表
func OpenDB(cfg *config.Config, l *zap.Logger, migrate bool) (*gorm.DB, error) {
	gormLog, err := logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		return nil, err
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             gormLog,
	})
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if migrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		l.Info("automigrate done")
	}
	return db, nil
}

// Build 组装 DB / 缓存 / 服务；cleanup 按相反顺序释放
func Build(cfg *config.Config, l *zap.Logger) (*Deps, func(), error) {
	db, err := OpenDB(cfg, l, cfg.DB.AutoMigrate)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := c.Ping(ctx); err != nil {
			// 连不上不阻塞启动，读路径直接回源
			l.Warn("unable to reach redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			l.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	svc := service.NewDonorService(repo.NewUserRepo(db), repo.NewBloodRequestRepo(db), c, l.Named("donor"))
	cleanup := func() {
		if c != nil {
			_ = c.Close()
		}
		if err := database.Close(db); err != nil {
			l.Warn("db close", zap.Error(err))
		}
	}
	return &Deps{DB: db, Cache: c, Svc: svc}, cleanup, nil
}
