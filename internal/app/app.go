// Package app wires configuration into a ready set of services. The api,
// admin and bookingctl binaries all start from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"booking-platform/internal/core/cache"
	"booking-platform/internal/core/clock"
	"booking-platform/internal/core/config"
	"booking-platform/internal/core/database"
	"booking-platform/internal/core/server"
	"booking-platform/internal/domain"
	"booking-platform/internal/repo"
	"booking-platform/internal/repo/memory"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/handler"
	"booking-platform/internal/transport/http/router"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Store    domain.Store
	DB       *gorm.DB // nil with the memory driver
	Cache    *cache.Cache
	Services *service.Services

	closers []func() error
}

// New opens the store and cache named by cfg. Migrations run when
// db.autoMigrate is set.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l}

	if err := a.openStore(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.openCache(ctx)

	a.Services = service.New(a.Store, service.Options{
		Log:      l,
		Clock:    clock.System(),
		Booking:  cfg.Booking,
		Cache:    a.Cache,
		CacheTTL: cfg.Cache.TTL(),
	})
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	c := a.Cfg.DB
	if c.Driver == "memory" {
		a.Store = memory.NewStore()
		a.Log.Warn("using in-memory store; data is lost on exit")
		return nil
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             c.Driver,
		DSN:                c.DSN,
		Username:           c.Username,
		Password:           c.Password,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
		Log:                a.Log,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, func() error { return database.Close(db) })
	a.Log.Info("database connected", zap.String("driver", c.Driver))

	if c.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		a.Log.Info("automigrate done")
	}
	a.Store = repo.NewStore(db)
	return nil
}

// openCache never fails startup: an unreachable redis only trips the breaker.
func (a *App) openCache(ctx context.Context) {
	if !a.Cfg.Cache.Enabled {
		return
	}
	r := a.Cfg.Redis
	a.Cache = cache.New(r.Addr, r.Password, r.DB, a.Log)
	a.closers = append(a.closers, a.Cache.Close)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Cache.Ping(pctx); err != nil {
		a.Log.Warn("redis unreachable; stats served uncached until it recovers",
			zap.String("addr", r.Addr), zap.Error(err))
		return
	}
	a.Log.Info("redis connected", zap.String("addr", r.Addr))
}

// ReadyChecks backs /ready.
func (a *App) ReadyChecks() map[string]router.ReadyCheck {
	p := map[string]router.ReadyCheck{}
	if a.DB != nil {
		p["db"] = func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if a.Cache != nil {
		p["redis"] = a.Cache.Ping
	}
	return p
}

func (a *App) Registry() *router.Registry {
	return router.NewRegistry(handler.All(a.Services, a.Log)...)
}

func (a *App) EngineOptions() router.EngineOptions {
	h := a.Cfg.App.HTTP
	return router.EngineOptions{
		Server:      server.Options{Name: a.Cfg.App.Name, Env: a.Cfg.App.Env, CORSOrigins: h.CORSOrigins},
		Limits:      router.LimitsFrom(h),
		ReadyChecks: a.ReadyChecks(),
	}
}

// Close releases everything New opened, last opened first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
