package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/adaptivelearn/levelbook/internal/genai"
	"github.com/adaptivelearn/levelbook/internal/generator"
	"github.com/adaptivelearn/levelbook/internal/ingest"
	"github.com/adaptivelearn/levelbook/internal/router"
	"github.com/adaptivelearn/levelbook/internal/server"
	"github.com/adaptivelearn/levelbook/internal/storage"
	"github.com/adaptivelearn/levelbook/pkg/config/env"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	env.LoadDotEnv("cmd/levelbook_api/.env")

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appCfg := LoadAppConfig()

	ctx := context.Background()

	store, healthChecker, err := storage.New(ctx, appCfg.Storage)
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	client, err := genai.NewOpenAIClient(&appCfg.GenAI)
	if err != nil {
		slog.Error("Failed to create model client", "error", err)
		os.Exit(1)
	}

	orchestrator := ingest.New(store, generator.New(client))

	s := server.New(sCfg)
	s.SetupHealthCheck("/health", healthChecker)

	articleRouter := router.NewArticleRouter(s.Echo, store, orchestrator)
	articleRouter.Bind()

	slog.Info("Starting levelbook API", "port", sCfg.Port, "storage", appCfg.Storage.Type())
	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
