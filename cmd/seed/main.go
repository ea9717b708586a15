// Seeds the configured storage backend with a YAML bundle of sample articles,
// including their reading levels, quiz and write prompts.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/adaptivelearn/levelbook/internal/storage"
	"github.com/adaptivelearn/levelbook/pkg/config/env"
	"gopkg.in/yaml.v3"
)

type seedBundle struct {
	Articles []seedArticle `yaml:"articles"`
}

type seedArticle struct {
	Title                      string                             `yaml:"title"`
	OriginalText               string                             `yaml:"originalText"`
	Topic                      string                             `yaml:"topic"`
	SourceURL                  string                             `yaml:"sourceUrl"`
	AvailableLanguages         []string                           `yaml:"availableLanguages"`
	CrossCurricularConnections []domain.CrossCurricularConnection `yaml:"crossCurricularConnections"`
	Levels                     []seedLevel                        `yaml:"levels"`
	Quiz                       []seedQuestion                     `yaml:"quiz"`
	Prompts                    []string                           `yaml:"prompts"`
}

type seedLevel struct {
	Level   int    `yaml:"level"`
	Content string `yaml:"content"`
	Byline  string `yaml:"byline"`
}

type seedQuestion struct {
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correctAnswer"`
}

func main() {
	file := flag.String("file", "cmd/seed/seed.yaml", "path to the seed bundle")
	flag.Parse()

	env.LoadDotEnv("cmd/seed/.env")

	ctx := context.Background()

	store, _, err := storage.New(ctx, storage.Config{DatabaseURL: os.Getenv("DATABASE_URL")})
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		slog.Error("Failed to read seed bundle", "file", *file, "error", err)
		os.Exit(1)
	}

	var bundle seedBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		slog.Error("Failed to parse seed bundle", "file", *file, "error", err)
		os.Exit(1)
	}

	for _, sa := range bundle.Articles {
		if err := seedOne(ctx, store, sa); err != nil {
			slog.Error("Failed to seed article", "title", sa.Title, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Seeding complete", "articles", len(bundle.Articles))
}

func seedOne(ctx context.Context, store storage.Storage, sa seedArticle) error {
	article, err := store.CreateArticle(ctx, domain.Article{
		Title:                      sa.Title,
		OriginalText:               sa.OriginalText,
		Topic:                      domain.ParseTopic(sa.Topic),
		SourceURL:                  sa.SourceURL,
		WordCount:                  domain.WordCount(sa.OriginalText),
		CrossCurricularConnections: sa.CrossCurricularConnections,
		AvailableLanguages:         sa.AvailableLanguages,
	})
	if err != nil {
		return err
	}
	slog.Info("Seeded article", "id", article.ID, "title", article.Title)

	for _, sl := range sa.Levels {
		if _, err := store.CreateReadingLevel(ctx, domain.ReadingLevel{
			ArticleID: article.ID,
			Level:     sl.Level,
			Content:   sl.Content,
			Byline:    sl.Byline,
		}); err != nil {
			return err
		}
	}

	if len(sa.Quiz) > 0 {
		questions := make([]domain.QuizQuestion, len(sa.Quiz))
		for i, sq := range sa.Quiz {
			questions[i] = domain.QuizQuestion{
				Question:      sq.Question,
				Options:       sq.Options,
				CorrectAnswer: sq.CorrectAnswer,
			}
		}
		if _, err := store.CreateQuiz(ctx, domain.Quiz{ArticleID: article.ID, Questions: questions}); err != nil {
			return err
		}
	}

	if len(sa.Prompts) > 0 {
		if _, err := store.CreateWritePrompts(ctx, domain.WritePrompt{ArticleID: article.ID, Prompts: sa.Prompts}); err != nil {
			return err
		}
	}

	return nil
}
