package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/creditwise/backend/config"
	"github.com/creditwise/backend/internal/auth"
	httpDelivery "github.com/creditwise/backend/internal/delivery/http"
	"github.com/creditwise/backend/internal/domain"
	"github.com/creditwise/backend/internal/infrastructure/cache"
	"github.com/creditwise/backend/internal/infrastructure/catalog"
	"github.com/creditwise/backend/internal/infrastructure/gemini"
	"github.com/creditwise/backend/internal/usecase"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CreditWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Server.Debug || cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	var repo domain.CardRepository
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Printf("WARNING: failed to create database pool, serving fallback catalog: %v", err)
		} else {
			defer pool.Close()
			repo = catalog.NewPostgresRepository(pool)
			log.Printf("Database pool configured")
		}
	} else {
		log.Printf("WARNING: no database URL configured, serving fallback catalog")
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model, debug)
	log.Printf("Gemini configured: %s (model: %s)", cfg.Gemini.BaseURL, cfg.Gemini.Model)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(repo, memoryCache, catalog.FallbackCards(), cfg.Cache.TTL)
	extractor := usecase.NewExtractor(debug)
	scorer := usecase.NewScorer(debug)
	conversation := usecase.NewConversation(geminiClient, catalogService, extractor, scorer, debug)

	tokens := auth.NewTokenService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpiresIn)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(conversation, catalogService, scorer, tokens, cfg.Admin.Username, cfg.Admin.Password)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, tokens)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
