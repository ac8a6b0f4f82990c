// Command migrate moves locally stored media to the remote provider. It is
// meant to be run offline, outside request traffic. Individual asset
// failures are logged and counted but never fail the run.
package main

import (
	"context"
	"os"
	"time"

	"archway_backend/database"
	"archway_backend/internal/config"
	"archway_backend/internal/imageprocessor"
	"archway_backend/internal/logger"
	"archway_backend/internal/migrator"
	"archway_backend/internal/repositories"
	"archway_backend/internal/storage"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	if cfg.Storage.Endpoint == "" {
		logger.Fatal("Remote storage is not configured, nothing to migrate to")
	}

	db, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	local, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("Failed to initialize local storage", "error", err)
	}

	remote, err := storage.NewCloudflareR2Storage(storage.Config{
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize remote storage", "error", err)
	}

	proc := imageprocessor.NewProcessor(cfg.Upload.ImageMaxDimension, cfg.Upload.ImageQuality)

	m := migrator.New(local, remote, proc, migrator.Config{
		MaxOutboundBytes: cfg.Upload.RemoteMaxSize,
		UploadTimeout:    time.Duration(cfg.Upload.UploadTimeout) * time.Second,
	})

	sources := migrator.DatabaseSources(
		db,
		repositories.NewProjectRepository(),
		repositories.NewArticleRepository(),
		repositories.NewBlogRepository(),
	)

	report, err := m.Run(context.Background(), sources)
	if err != nil {
		logger.Error("Migration aborted", "error", err)
		os.Exit(1)
	}

	logger.Info("Migration finished",
		"entities", report.Entities,
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}
