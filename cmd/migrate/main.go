package main

import (
	"context"
	"time"

	mongoMigration "stayquest/internal/migrations/mongo"
	"stayquest/pkg/client"
	"stayquest/pkg/config"
	"stayquest/pkg/logger"

	"github.com/joho/godotenv"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	cfg.Log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: JobName})
	if err := cfg.ValidateStorage(); err != nil {
		cfg.Log.Fatal("Invalid storage configuration", "error", err)
	}
	cfg.Client = client.NewClient()
	cfg.SetMongo()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
	cfg.GracefulShutdown()
}
