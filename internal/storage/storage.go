// Package storage is the gateway boundary: uniform create/read operations
// over articles and their generated children, independent of the backing
// implementation.
package storage

import (
	"context"

	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/google/uuid"
)

// Storage is implemented by every backend. Create operations assign the ID
// and, for articles, CreatedAt. Reads return a NotFoundError when the entity
// does not exist.
type Storage interface {
	CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (domain.Article, error)
	// GetAllArticles returns every article, newest first.
	GetAllArticles(ctx context.Context) ([]domain.Article, error)

	CreateReadingLevel(ctx context.Context, level domain.ReadingLevel) (domain.ReadingLevel, error)
	// GetReadingLevelsByArticle returns the article's rewrites ordered by
	// level ascending.
	GetReadingLevelsByArticle(ctx context.Context, articleID uuid.UUID) ([]domain.ReadingLevel, error)
	GetReadingLevel(ctx context.Context, articleID uuid.UUID, level int) (domain.ReadingLevel, error)

	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	GetQuizByArticle(ctx context.Context, articleID uuid.UUID) (domain.Quiz, error)

	CreateWritePrompts(ctx context.Context, prompts domain.WritePrompt) (domain.WritePrompt, error)
	GetWritePromptsByArticle(ctx context.Context, articleID uuid.UUID) (domain.WritePrompt, error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)
