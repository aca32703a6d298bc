// Package main provides the entry point for the member directory server.
package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	appConfig "github.com/sauce1111/memberdir/internal/config"
	"github.com/sauce1111/memberdir/internal/database/database"
	"github.com/sauce1111/memberdir/internal/database/migrate"
	"github.com/sauce1111/memberdir/internal/health"
	memberRouter "github.com/sauce1111/memberdir/internal/member/router"
	"github.com/sauce1111/memberdir/internal/middleware"
	statisticsRouter "github.com/sauce1111/memberdir/internal/statistics/router"
	teamRouter "github.com/sauce1111/memberdir/internal/team/router"
	"github.com/sauce1111/memberdir/pkg/logger"
)

func main() {
	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck // flush on exit, nothing to do on failure

	db, err := database.New()
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zlog.Errorw("failed to close database", "error", err)
		}
	}()

	if appConfig.GetEnv("RUN_MIGRATIONS", "true") == "true" {
		if err := migrate.Migrate(db); err != nil {
			zlog.Fatalw("failed to apply migrations", "error", err)
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(zlog))
	r.Use(middleware.Logger(zlog))

	r.GET("/health", health.New(db, zlog).Check)

	memberRouter.RegisterRoutes(r, db, zlog)
	teamRouter.RegisterRoutes(r, db, zlog)
	statisticsRouter.RegisterRoutes(r, db, zlog)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	zlog.Infow("starting server", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatalw("server stopped", "error", err)
	}
}
