// Command seed generates the policy corpus and builds the embedding index
// offline, so the serving process only ever loads persisted artifacts.
package main

import (
	"context"
	"log"

	"formguard/internal/corpus"
	"formguard/internal/llm"
	"formguard/internal/service"
	"formguard/internal/vectorstore"
	"formguard/pkg/config"
	"formguard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	appLogger.Info("Generating policy corpus")
	policies := corpus.Catalog()
	if err := corpus.WriteDir(cfg.Index.CorpusDir, policies); err != nil {
		appLogger.Fatal("Failed to write policy corpus", zap.Error(err))
	}
	appLogger.Info("Policy corpus written",
		zap.Int("policies", len(policies)),
		zap.String("dir", cfg.Index.CorpusDir),
	)

	llmClient, err := llm.NewClient(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize GigaChat client", zap.Error(err))
	}
	defer llmClient.Close()

	store := vectorstore.NewStore(llmClient, appLogger)
	retrievalService := service.NewRetrievalService(store, cfg.Index.TopK, appLogger)
	reasonerService := service.NewReasonerService(llmClient, appLogger)
	validationService := service.NewValidationService(
		store, retrievalService, reasonerService, nil, cfg.Index, appLogger,
	)

	ctx := context.Background()
	if err := validationService.RebuildIndex(ctx, policies); err != nil {
		appLogger.Fatal("Failed to build policy index", zap.Error(err))
	}

	appLogger.Info("Policy index built and persisted",
		zap.Int("chunks", validationService.IndexSize()),
		zap.String("dir", cfg.Index.IndexDir),
	)
}
