package main

import (
	"context"
	"flag"
	"log"

	"github.com/LabelWise-io/labelwise/internal/analyzer"
	"github.com/LabelWise-io/labelwise/internal/api"
	"github.com/LabelWise-io/labelwise/internal/auth"
	"github.com/LabelWise-io/labelwise/internal/config"
	"github.com/LabelWise-io/labelwise/internal/database"
	"github.com/LabelWise-io/labelwise/internal/storage"
	"github.com/LabelWise-io/labelwise/internal/store"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, error) {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Init(cfg); err != nil {
		return nil, err
	}

	st := store.New(database.GetDB(), cfg.Database.Type)
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey)

	var an analyzer.ImageAnalyzer
	if cfg.Gemini.APIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set, analysis requests will fail with the fallback message")
		an = analyzer.Disabled{}
	} else {
		gemini, err := analyzer.NewGemini(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		an = gemini
	}

	var archive *storage.ArchiveClient
	if cfg.ArchiveEnabled() {
		archive, err = storage.NewArchiveClient(
			cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket,
			cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey,
		)
		if err != nil {
			return nil, err
		}
		log.Printf("Image archival enabled for bucket: %s", cfg.S3.Bucket)
	}

	return api.NewApi(*cfg, st, tokens, an, archive)
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting LabelWise API v%s with config: %s", version, *configPath)

	api, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	api.Serve()
}
