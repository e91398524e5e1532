package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"booking-platform/internal/app"
	"booking-platform/internal/core/config"
	"booking-platform/internal/core/logger"
	"booking-platform/internal/core/server"
	"booking-platform/internal/jobs"
	"booking-platform/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	log = log.Named("admin")

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	// the warmer only matters when there is a cache to fill
	sched := jobs.NewScheduler(log)
	if a.Cache != nil && cfg.Jobs.StatsWarmCron != "" {
		if err := sched.AddStatsWarmer(cfg.Jobs.StatsWarmCron, a.Services.Stats, 30*time.Second); err != nil {
			log.Fatal("schedule stats warmer", zap.Error(err))
		}
	}
	sched.Start()

	r := router.NewAdminEngine(log, a.Registry(), a.EngineOptions())

	ad := cfg.App.Admin
	addr := server.Addr(ad.Host, ad.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 30*time.Second, 60*time.Second)
	srv.ErrorLog = logger.ToStdLogger(log, zapcore.WarnLevel)

	baseURL := server.BaseURL(ad.Host, ad.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("admin api stopped")
}
