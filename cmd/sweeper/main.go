package main

import (
	"context"
	"log"
	"time"

	"go-vault/internal/blob"
	"go-vault/internal/config"
	"go-vault/internal/database"
	"go-vault/internal/features/audit"
	"go-vault/internal/features/favorite"
	"go-vault/internal/features/file"
	"go-vault/internal/features/share"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// One-shot retention sweep for operators: purges every file currently
// marked for deletion and exits. The API server runs the same pass on a
// schedule; this binary exists for manual runs and cron-outside-the-app
// setups.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	mongodb := &database.MongodbDB{DB: client.Database(cfg.DBName)}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	store, err := blob.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	fileRepo := file.NewFileRepository(mongodb)
	favoriteRepo := favorite.NewFavoriteRepository(mongodb)
	shareRepo := share.NewShareRepository(mongodb)
	auditService := audit.NewAuditService(audit.NewAuditRepository(mongodb), logger)
	fileService := file.NewFileService(fileRepo, favoriteRepo, shareRepo, store, auditService)

	pending, err := fileRepo.FindAllPending(ctx)
	if err != nil {
		log.Fatalf("Failed to scan for pending files: %v", err)
	}
	log.Printf("Found %d files pending deletion\n", len(pending))

	purged, failed := 0, 0
	for _, f := range pending {
		if err := fileService.PurgeFile(ctx, f); err != nil {
			log.Printf("Failed to purge file %s: %v\n", f.ID.Hex(), err)
			failed++
			continue
		}
		purged++
	}

	log.Printf("Sweep complete: %d purged, %d failed\n", purged, failed)
}
