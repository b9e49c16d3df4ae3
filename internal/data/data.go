package data

import (
	"fmt"

	"github.com/geomashup/geofeed-backend/internal/conf"
	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/minio"
	"github.com/geomashup/geofeed-backend/internal/pkg/redis"
)

// Data holds the shared backing clients. MinIO is only connected when the
// minio storage driver is selected; the file driver needs no client.
type Data struct {
	Redis  *redis.Client
	MinIO  *minio.Client
	Logger *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	redisClient, err := redis.New(&redis.Config{
		Addr:     config.Redis.Addr,
		Username: config.Redis.Username,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init redis: %w", err)
	}

	var minioClient *minio.Client
	if config.Storage.Driver == "minio" {
		minioClient, err = minio.New(&minio.Config{
			Endpoint:  config.MinIO.Endpoint,
			AccessKey: config.MinIO.AccessKey,
			SecretKey: config.MinIO.SecretKey,
			UseSSL:    config.MinIO.UseSSL,
			Bucket:    config.MinIO.Bucket,
		}, log)
		if err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("failed to init minio: %w", err)
		}
	}

	d := &Data{
		Redis:  redisClient,
		MinIO:  minioClient,
		Logger: log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if redisClient != nil {
			redisClient.Close()
		}
	}

	return d, cleanup, nil
}
