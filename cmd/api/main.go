package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/assetdesk/inventory-system/internal/api"
	"github.com/assetdesk/inventory-system/internal/core/service"
	"github.com/assetdesk/inventory-system/internal/infrastructure/config"
	mongodb "github.com/assetdesk/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/assetdesk/inventory-system/internal/infrastructure/db/redis"
	"github.com/assetdesk/inventory-system/internal/infrastructure/directory"
	"github.com/assetdesk/inventory-system/internal/infrastructure/scheduler"
	"github.com/assetdesk/inventory-system/pkg/logger"
)

// @title Inventory System API
// @version 1.0
// @description IT asset tracking with assignment lifecycle and directory synchronisation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	assetRepo := mongodb.NewAssetRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	userRepo := mongodb.NewDirectoryUserRepository(db)
	osOptionRepo := mongodb.NewOSOptionRepository(db)
	operatorRepo := mongodb.NewOperatorRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"assets":          assetRepo.EnsureIndexes,
		"assignments":     assignmentRepo.EnsureIndexes,
		"directory_users": userRepo.EnsureIndexes,
		"os_options":      osOptionRepo.EnsureIndexes,
		"operators":       operatorRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("failed to ensure indexes")
		}
	}

	graphClient := directory.NewGraphClient(directory.Config{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		BaseURL:      cfg.Graph.BaseURL,
	})

	assetSvc := service.NewAssetService(assetRepo, assignmentRepo, userRepo, osOptionRepo, log)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, assetRepo, userRepo, cfg.Assignments.AllowShared, log)
	userSvc := service.NewDirectoryUserService(userRepo, graphClient, log)
	osOptionSvc := service.NewOSOptionService(osOptionRepo, assetRepo, log)
	authSvc := service.NewAuthService(operatorRepo, cfg.JWTSecret, 24*time.Hour)
	syncSvc := service.NewSyncService(
		graphClient,
		userRepo,
		redisdb.NewSyncLock(rdb, cfg.Sync.LockTTL),
		cfg.Sync.FetchTimeout,
		log,
	)

	if cfg.Sync.Enabled {
		scheduler.NewScheduler(syncSvc, cfg.Sync.Interval, log).Start(ctx)
	}

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,

		Assets:         assetSvc,
		Assignments:    assignmentSvc,
		DirectoryUsers: userSvc,
		OSOptions:      osOptionSvc,
		Sync:           syncSvc,
		Auth:           authSvc,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
