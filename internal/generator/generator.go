// Package generator turns source text into graded rewrites, quizzes and
// writing prompts by prompting a generative-model backend and validating the
// shape of everything it returns.
package generator

import (
	"context"
	"fmt"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/adaptivelearn/levelbook/internal/genai"
)

// LeveledContent is one graded rewrite as produced by the model, before it is
// attached to an article.
type LeveledContent struct {
	Level   int    `json:"level"`
	Content string `json:"content"`
	Byline  string `json:"byline"`
}

// Generator issues prompt templates to the model client and validates each
// response against its operation's contract. No retries: a single failed call
// fails the operation.
type Generator struct {
	client genai.Client
}

func New(client genai.Client) *Generator {
	return &Generator{client: client}
}

// ReadingLevels produces exactly one rewrite per level 1..5.
func (g *Generator) ReadingLevels(ctx context.Context, text, title string) ([]LeveledContent, error) {
	raw, err := g.client.Complete(ctx, readingLevelsPrompt(text, title))
	if err != nil {
		return nil, fmt.Errorf("generate reading levels: %w", err)
	}

	var parsed struct {
		Levels []LeveledContent `json:"levels"`
	}
	if err := genai.DecodeJSON(raw, &parsed); err != nil {
		return nil, err
	}

	if parsed.Levels == nil {
		return nil, apperr.NewInvalidShape("levels", "missing")
	}
	if len(parsed.Levels) != domain.MaxLevel {
		return nil, apperr.NewInvalidShape("levels", fmt.Sprintf("expected %d entries, got %d", domain.MaxLevel, len(parsed.Levels)))
	}

	seen := make(map[int]bool, domain.MaxLevel)
	for _, lc := range parsed.Levels {
		if lc.Level < domain.MinLevel || lc.Level > domain.MaxLevel {
			return nil, apperr.NewInvalidShape("levels", fmt.Sprintf("level %d out of range", lc.Level))
		}
		if seen[lc.Level] {
			return nil, apperr.NewInvalidShape("levels", fmt.Sprintf("duplicate level %d", lc.Level))
		}
		seen[lc.Level] = true
		if lc.Content == "" {
			return nil, apperr.NewInvalidShape("levels", fmt.Sprintf("level %d has empty content", lc.Level))
		}
	}

	return parsed.Levels, nil
}

// Quiz produces the comprehension quiz from the standard-level rewrite.
func (g *Generator) Quiz(ctx context.Context, content, title string) ([]domain.QuizQuestion, error) {
	raw, err := g.client.Complete(ctx, quizPrompt(content, title))
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var parsed struct {
		Questions []domain.QuizQuestion `json:"questions"`
	}
	if err := genai.DecodeJSON(raw, &parsed); err != nil {
		return nil, err
	}

	if parsed.Questions == nil {
		return nil, apperr.NewInvalidShape("questions", "missing")
	}
	if len(parsed.Questions) != domain.QuizQuestionCount {
		return nil, apperr.NewInvalidShape("questions", fmt.Sprintf("expected %d questions, got %d", domain.QuizQuestionCount, len(parsed.Questions)))
	}
	for i, q := range parsed.Questions {
		if q.Question == "" {
			return nil, apperr.NewInvalidShape("questions", fmt.Sprintf("question %d is empty", i))
		}
		if len(q.Options) != domain.QuizOptionCount {
			return nil, apperr.NewInvalidShape("questions", fmt.Sprintf("question %d has %d options, expected %d", i, len(q.Options), domain.QuizOptionCount))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= domain.QuizOptionCount {
			return nil, apperr.NewInvalidShape("questions", fmt.Sprintf("question %d correctAnswer %d out of range", i, q.CorrectAnswer))
		}
	}

	return parsed.Questions, nil
}

// WritePrompts produces the writing prompt bundle from the standard-level
// rewrite.
func (g *Generator) WritePrompts(ctx context.Context, content, title string) ([]string, error) {
	raw, err := g.client.Complete(ctx, writePromptsPrompt(content, title))
	if err != nil {
		return nil, fmt.Errorf("generate write prompts: %w", err)
	}

	var parsed struct {
		Prompts []string `json:"prompts"`
	}
	if err := genai.DecodeJSON(raw, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Prompts) == 0 {
		return nil, apperr.NewInvalidShape("prompts", "missing")
	}

	return parsed.Prompts, nil
}

// TitleAndTopic extracts a title and a vocabulary topic from raw text.
func (g *Generator) TitleAndTopic(ctx context.Context, text string) (string, domain.Topic, error) {
	raw, err := g.client.Complete(ctx, titleTopicPrompt(text))
	if err != nil {
		return "", "", fmt.Errorf("extract title and topic: %w", err)
	}

	var parsed struct {
		Title string `json:"title"`
		Topic string `json:"topic"`
	}
	if err := genai.DecodeJSON(raw, &parsed); err != nil {
		return "", "", err
	}

	if parsed.Title == "" {
		return "", "", apperr.NewInvalidShape("title", "missing")
	}
	if parsed.Topic == "" {
		return "", "", apperr.NewInvalidShape("topic", "missing")
	}

	return parsed.Title, domain.ParseTopic(parsed.Topic), nil
}
