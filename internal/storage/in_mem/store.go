package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/google/uuid"
)

// Store keeps everything in process memory. Entries are only ever appended,
// but the maps are guarded anyway since the HTTP server handles requests on
// parallel goroutines.
type Store struct {
	mu           sync.RWMutex
	articles     map[uuid.UUID]domain.Article
	levels       map[uuid.UUID]domain.ReadingLevel
	quizzes      map[uuid.UUID]domain.Quiz
	writePrompts map[uuid.UUID]domain.WritePrompt
}

func NewStore() *Store {
	return &Store{
		articles:     make(map[uuid.UUID]domain.Article),
		levels:       make(map[uuid.UUID]domain.ReadingLevel),
		quizzes:      make(map[uuid.UUID]domain.Quiz),
		writePrompts: make(map[uuid.UUID]domain.WritePrompt),
	}
}

func (s *Store) CreateArticle(_ context.Context, article domain.Article) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	article.CreatedAt = time.Now()
	s.articles[article.ID] = article
	return article, nil
}

func (s *Store) GetArticle(_ context.Context, id uuid.UUID) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[id]
	if !ok {
		return domain.Article{}, apperr.NewNotFound("article")
	}
	return article, nil
}

func (s *Store) GetAllArticles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	articles := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

func (s *Store) CreateReadingLevel(_ context.Context, level domain.ReadingLevel) (domain.ReadingLevel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if level.ID == uuid.Nil {
		level.ID = uuid.New()
	}
	s.levels[level.ID] = level
	return level, nil
}

func (s *Store) GetReadingLevelsByArticle(_ context.Context, articleID uuid.UUID) ([]domain.ReadingLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make([]domain.ReadingLevel, 0, domain.MaxLevel)
	for _, l := range s.levels {
		if l.ArticleID == articleID {
			levels = append(levels, l)
		}
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Level < levels[j].Level
	})
	return levels, nil
}

func (s *Store) GetReadingLevel(_ context.Context, articleID uuid.UUID, level int) (domain.ReadingLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.levels {
		if l.ArticleID == articleID && l.Level == level {
			return l, nil
		}
	}
	return domain.ReadingLevel{}, apperr.NewNotFound("reading level")
}

func (s *Store) CreateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	s.quizzes[quiz.ID] = quiz
	return quiz, nil
}

func (s *Store) GetQuizByArticle(_ context.Context, articleID uuid.UUID) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.quizzes {
		if q.ArticleID == articleID {
			return q, nil
		}
	}
	return domain.Quiz{}, apperr.NewNotFound("quiz")
}

func (s *Store) CreateWritePrompts(_ context.Context, prompts domain.WritePrompt) (domain.WritePrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prompts.ID == uuid.Nil {
		prompts.ID = uuid.New()
	}
	s.writePrompts[prompts.ID] = prompts
	return prompts, nil
}

func (s *Store) GetWritePromptsByArticle(_ context.Context, articleID uuid.UUID) (domain.WritePrompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, wp := range s.writePrompts {
		if wp.ArticleID == articleID {
			return wp, nil
		}
	}
	return domain.WritePrompt{}, apperr.NewNotFound("write prompts")
}
