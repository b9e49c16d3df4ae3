package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geomashup/geofeed-backend/internal/conf"
	"github.com/geomashup/geofeed-backend/internal/data"
	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/workerpool"
	"github.com/geomashup/geofeed-backend/internal/provider/staticmap"
	"github.com/geomashup/geofeed-backend/internal/provider/twitter"
	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	querydata "github.com/geomashup/geofeed-backend/internal/query/data"
	"github.com/geomashup/geofeed-backend/internal/query/service"
	"github.com/geomashup/geofeed-backend/internal/server"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize global logger
	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize repositories
	resultCache := querydata.NewRedisResultCacheRepo(d.Redis, log)
	credentialStore := querydata.NewRedisCredentialStore(d.Redis, log)

	var imageStore biz.ImageStore
	switch config.Storage.Driver {
	case "minio":
		imageStore = querydata.NewMinIOImageStore(d.MinIO, log)
	default:
		imageStore, err = querydata.NewFileImageStore(config.Storage.Dir, log)
		if err != nil {
			log.Fatal("failed to initialize image store", zap.Error(err))
		}
	}

	// Initialize providers
	searchClient, err := twitter.NewClient(&ptypes.ProviderConfig{
		ID:         ptypes.ProviderTwitter,
		Name:       "Twitter",
		APIHost:    config.Twitter.APIHost,
		APIKey:     config.Twitter.APIKey,
		APISecret:  config.Twitter.APISecret,
		Timeout:    config.Twitter.Timeout,
		MaxRetries: config.Twitter.MaxRetries,
	}, config.Twitter.SearchLabel)
	if err != nil {
		log.Fatal("failed to initialize search provider", zap.Error(err))
	}

	mapClient, err := staticmap.NewClient(&ptypes.ProviderConfig{
		ID:         ptypes.ProviderStaticMap,
		Name:       "Google Static Maps",
		APIHost:    config.StaticMap.APIHost,
		APIKey:     config.StaticMap.APIKey,
		Timeout:    config.StaticMap.Timeout,
		MaxRetries: config.StaticMap.MaxRetries,
	}, staticmap.Options{
		Zoom:        config.StaticMap.Zoom,
		Size:        config.StaticMap.Size,
		MapType:     config.StaticMap.MapType,
		MarkerLabel: config.StaticMap.MarkerLabel,
	})
	if err != nil {
		log.Fatal("failed to initialize map provider", zap.Error(err))
	}

	// Initialize image fetch worker pool
	pool, err := workerpool.New(config.Images.Workers, log)
	if err != nil {
		log.Fatal("failed to initialize worker pool", zap.Error(err))
	}
	defer pool.Release()

	// Initialize use case
	queryUseCase := biz.NewQueryUseCase(
		resultCache,
		credentialStore,
		imageStore,
		searchClient,
		searchClient,
		mapClient,
		pool,
		config.Cache.ResultTTL,
		log,
	)

	// Initialize services
	queryService := service.NewQueryService(queryUseCase, imageStore, log)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, queryService)

	// Start server in goroutine
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
