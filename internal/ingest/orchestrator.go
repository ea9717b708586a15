// Package ingest runs the request-level workflow that turns submitted raw
// text into a persisted article with its generated children.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/adaptivelearn/levelbook/internal/generator"
	"github.com/adaptivelearn/levelbook/internal/storage"
	"golang.org/x/sync/errgroup"
)

const minTextLength = 100

// ContentGenerator is what the orchestrator needs from the generation layer.
type ContentGenerator interface {
	ReadingLevels(ctx context.Context, text, title string) ([]generator.LeveledContent, error)
	Quiz(ctx context.Context, content, title string) ([]domain.QuizQuestion, error)
	WritePrompts(ctx context.Context, content, title string) ([]string, error)
	TitleAndTopic(ctx context.Context, text string) (string, domain.Topic, error)
}

// Orchestrator wires the generator to the storage gateway. Both are passed in
// at construction; the orchestrator holds no other state.
type Orchestrator struct {
	store storage.Storage
	gen   ContentGenerator
}

func New(store storage.Storage, gen ContentGenerator) *Orchestrator {
	return &Orchestrator{store: store, gen: gen}
}

// ProcessText ingests one submitted text end to end: validate, extract
// title/topic, persist the article, generate and persist the five reading
// levels, then generate quiz and write prompts from the level-3 rewrite.
//
// Failure policy is hard: any generation or storage failure after validation
// fails the whole request. There is no rollback, so records persisted before
// the failure remain; that partial state is recoverable, not corrupt.
func (o *Orchestrator) ProcessText(ctx context.Context, text, sourceURL string) (*domain.Article, error) {
	text = strings.TrimSpace(text)
	if text == "" && sourceURL != "" {
		return nil, apperr.NewValidation("URL ingestion is not supported yet, please provide text content (minimum 100 characters)")
	}
	if len(text) < minTextLength {
		return nil, apperr.NewValidation("text must be at least 100 characters")
	}

	title, topic, err := o.gen.TitleAndTopic(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract title/topic: %w", err)
	}

	article, err := o.store.CreateArticle(ctx, domain.Article{
		Title:        title,
		OriginalText: text,
		Topic:        topic,
		SourceURL:    sourceURL,
		WordCount:    domain.WordCount(text),
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	slog.Info("Article created", "id", article.ID, "title", title, "topic", topic, "words", article.WordCount)

	levels, err := o.gen.ReadingLevels(ctx, text, title)
	if err != nil {
		return nil, fmt.Errorf("generate reading levels: %w", err)
	}
	for _, lc := range levels {
		if _, err := o.store.CreateReadingLevel(ctx, domain.ReadingLevel{
			ArticleID: article.ID,
			Level:     lc.Level,
			Content:   lc.Content,
			Byline:    lc.Byline,
		}); err != nil {
			return nil, fmt.Errorf("persist reading level %d: %w", lc.Level, err)
		}
	}

	standard, ok := findLevel(levels, domain.StandardLevel)
	if !ok {
		// Without a standard-difficulty rewrite there is nothing to base the
		// quiz or prompts on; the article plus levels still stand.
		slog.Warn("No standard-level rewrite, skipping quiz and prompts", "article", article.ID)
		return &article, nil
	}

	// Quiz and write prompts both depend only on the level-3 content, not on
	// each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		questions, err := o.gen.Quiz(gctx, standard.Content, title)
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}
		if _, err := o.store.CreateQuiz(gctx, domain.Quiz{ArticleID: article.ID, Questions: questions}); err != nil {
			return fmt.Errorf("persist quiz: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		prompts, err := o.gen.WritePrompts(gctx, standard.Content, title)
		if err != nil {
			return fmt.Errorf("generate write prompts: %w", err)
		}
		if _, err := o.store.CreateWritePrompts(gctx, domain.WritePrompt{ArticleID: article.ID, Prompts: prompts}); err != nil {
			return fmt.Errorf("persist write prompts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &article, nil
}

func findLevel(levels []generator.LeveledContent, level int) (generator.LeveledContent, bool) {
	for _, lc := range levels {
		if lc.Level == level {
			return lc, true
		}
	}
	return generator.LeveledContent{}, false
}
