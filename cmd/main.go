package main

import (
	"context"
	"log"
	"time"

	"firestore-export/internal/export/adapter/output"
	"firestore-export/internal/export/adapter/persistence/mongodb"
	"firestore-export/internal/export/config"
	"firestore-export/internal/export/usecase"
	"firestore-export/internal/shared/contextkeys"
	"firestore-export/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	exportID := uuid.NewString()
	appLogger := logger.NewLogger().WithFields(map[string]interface{}{
		"export_id":  exportID,
		"project_id": cfg.ProjectID,
	})

	clientOpts := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.CredentialsFile != "" {
		credPath, err := config.ResolveCredentialsPath(cfg.CredentialsFile)
		if err != nil {
			appLogger.Fatalf("Failed to resolve credentials file: %v", err)
		}
		cred, err := config.LoadCredentials(credPath)
		if err != nil {
			appLogger.Fatalf("Failed to load credentials: %v", err)
		}
		clientOpts.SetAuth(options.Credential{
			Username:   cred.Username,
			Password:   cred.Password,
			AuthSource: cred.AuthSource,
		})
	}

	appLogger.Infof("Connecting to project '%s'", cfg.ProjectID)

	connectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			appLogger.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	if err := client.Ping(connectCtx, nil); err != nil {
		appLogger.Fatalf("Failed to ping MongoDB: %v", err)
	}
	appLogger.Info("MongoDB connection established successfully")

	source := mongodb.NewStructureSource(client.Database(cfg.MongoDatabase), cfg.ProjectID, cfg.DatabaseID, appLogger)
	exporter := usecase.NewExporter(source, cfg.ProjectID, cfg.SampleLimit, cfg.OrderField, appLogger)
	writer := output.NewWriter(appLogger)

	// The export itself runs without a deadline: traversal cost is bounded
	// by the sample limit, not by wall time.
	ctx := context.WithValue(context.Background(), contextkeys.ProjectIDKey, cfg.ProjectID)
	ctx = context.WithValue(ctx, contextkeys.DatabaseIDKey, cfg.DatabaseID)
	ctx = context.WithValue(ctx, contextkeys.ExportIDKey, exportID)

	appLogger.Info("Starting export...")
	report, err := exporter.Export(ctx)
	if err != nil {
		appLogger.Fatalf("Export failed: %v", err)
	}

	if err := writer.Write(report, cfg.OutputFile); err != nil {
		appLogger.Fatalf("Failed to write output: %v", err)
	}

	appLogger.Info("Export complete")
}
