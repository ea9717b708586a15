package main

import (
	"os"

	"github.com/adaptivelearn/levelbook/internal/genai"
	"github.com/adaptivelearn/levelbook/internal/storage"
)

const defaultModel = "gpt-4o-mini"

type AppConfig struct {
	Storage storage.Config
	GenAI   genai.Settings
}

// LoadAppConfig reads application settings from the environment. Storage
// backend selection is by presence: a set DATABASE_URL means PostgreSQL,
// otherwise in-memory.
func LoadAppConfig() *AppConfig {
	model := os.Getenv("GENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &AppConfig{
		Storage: storage.Config{
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		GenAI: genai.Settings{
			Model:   model,
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("GENAI_BASE_URL"),
		},
	}
}
