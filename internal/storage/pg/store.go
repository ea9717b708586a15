package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store maps each entity 1:1 to a table. Quiz questions, write prompts and
// cross-curricular connections are jsonb columns: they are always read and
// written as a unit with their parent, so normalizing them into rows buys
// nothing. Concurrency control is the database's row-level guarantees; no
// application transaction spans the multi-step ingestion.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	article.CreatedAt = time.Now()

	connectionsJSON, err := marshalNullable(article.CrossCurricularConnections)
	if err != nil {
		return domain.Article{}, apperr.NewStorage("marshal connections", err)
	}
	languagesJSON, err := marshalNullable(article.AvailableLanguages)
	if err != nil {
		return domain.Article{}, apperr.NewStorage("marshal languages", err)
	}

	cmd := `
        INSERT INTO articles (id, title, original_text, topic, source_url, word_count, cross_curricular_connections, available_languages, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err = s.db.Exec(ctx, cmd,
		article.ID,
		article.Title,
		article.OriginalText,
		nullableString(string(article.Topic)),
		nullableString(article.SourceURL),
		article.WordCount,
		connectionsJSON,
		languagesJSON,
		article.CreatedAt,
	)
	if err != nil {
		return domain.Article{}, apperr.NewStorage("insert article", err)
	}

	return article, nil
}

const articleColumns = `id, title, original_text, COALESCE(topic, ''), COALESCE(source_url, ''), word_count, cross_curricular_connections, available_languages, created_at`

func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	row := s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Article{}, apperr.NewNotFound("article")
	}
	if err != nil {
		return domain.Article{}, apperr.NewStorage("select article", err)
	}
	return article, nil
}

func (s *Store) GetAllArticles(ctx context.Context) ([]domain.Article, error) {
	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.NewStorage("select articles", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, apperr.NewStorage("scan article", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStorage("iterate articles", err)
	}
	return articles, nil
}

func (s *Store) CreateReadingLevel(ctx context.Context, level domain.ReadingLevel) (domain.ReadingLevel, error) {
	if level.ID == uuid.Nil {
		level.ID = uuid.New()
	}

	cmd := `
        INSERT INTO reading_levels (id, article_id, level, content, byline)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := s.db.Exec(ctx, cmd, level.ID, level.ArticleID, level.Level, level.Content, nullableString(level.Byline))
	if err != nil {
		return domain.ReadingLevel{}, apperr.NewStorage("insert reading level", err)
	}
	return level, nil
}

func (s *Store) GetReadingLevelsByArticle(ctx context.Context, articleID uuid.UUID) ([]domain.ReadingLevel, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, article_id, level, content, COALESCE(byline, '')
        FROM reading_levels
        WHERE article_id = $1
        ORDER BY level ASC
    `, articleID)
	if err != nil {
		return nil, apperr.NewStorage("select reading levels", err)
	}
	defer rows.Close()

	levels := make([]domain.ReadingLevel, 0, domain.MaxLevel)
	for rows.Next() {
		var l domain.ReadingLevel
		if err := rows.Scan(&l.ID, &l.ArticleID, &l.Level, &l.Content, &l.Byline); err != nil {
			return nil, apperr.NewStorage("scan reading level", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStorage("iterate reading levels", err)
	}
	return levels, nil
}

func (s *Store) GetReadingLevel(ctx context.Context, articleID uuid.UUID, level int) (domain.ReadingLevel, error) {
	// Level is unique per article (enforced by schema), so a single filtered
	// query returns at most one row.
	var l domain.ReadingLevel
	err := s.db.QueryRow(ctx, `
        SELECT id, article_id, level, content, COALESCE(byline, '')
        FROM reading_levels
        WHERE article_id = $1 AND level = $2
    `, articleID, level).Scan(&l.ID, &l.ArticleID, &l.Level, &l.Content, &l.Byline)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ReadingLevel{}, apperr.NewNotFound("reading level")
	}
	if err != nil {
		return domain.ReadingLevel{}, apperr.NewStorage("select reading level", err)
	}
	return l, nil
}

func (s *Store) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return domain.Quiz{}, apperr.NewStorage("marshal questions", err)
	}

	_, err = s.db.Exec(ctx, `
        INSERT INTO quizzes (id, article_id, questions)
        VALUES ($1, $2, $3);
    `, quiz.ID, quiz.ArticleID, questionsJSON)
	if err != nil {
		return domain.Quiz{}, apperr.NewStorage("insert quiz", err)
	}
	return quiz, nil
}

func (s *Store) GetQuizByArticle(ctx context.Context, articleID uuid.UUID) (domain.Quiz, error) {
	var quiz domain.Quiz
	var questionsJSON []byte

	err := s.db.QueryRow(ctx, `
        SELECT id, article_id, questions FROM quizzes WHERE article_id = $1
    `, articleID).Scan(&quiz.ID, &quiz.ArticleID, &questionsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, apperr.NewNotFound("quiz")
	}
	if err != nil {
		return domain.Quiz{}, apperr.NewStorage("select quiz", err)
	}

	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return domain.Quiz{}, apperr.NewStorage("unmarshal questions", err)
	}
	return quiz, nil
}

func (s *Store) CreateWritePrompts(ctx context.Context, prompts domain.WritePrompt) (domain.WritePrompt, error) {
	if prompts.ID == uuid.Nil {
		prompts.ID = uuid.New()
	}

	promptsJSON, err := json.Marshal(prompts.Prompts)
	if err != nil {
		return domain.WritePrompt{}, apperr.NewStorage("marshal prompts", err)
	}

	_, err = s.db.Exec(ctx, `
        INSERT INTO write_prompts (id, article_id, prompts)
        VALUES ($1, $2, $3);
    `, prompts.ID, prompts.ArticleID, promptsJSON)
	if err != nil {
		return domain.WritePrompt{}, apperr.NewStorage("insert write prompts", err)
	}
	return prompts, nil
}

func (s *Store) GetWritePromptsByArticle(ctx context.Context, articleID uuid.UUID) (domain.WritePrompt, error) {
	var wp domain.WritePrompt
	var promptsJSON []byte

	err := s.db.QueryRow(ctx, `
        SELECT id, article_id, prompts FROM write_prompts WHERE article_id = $1
    `, articleID).Scan(&wp.ID, &wp.ArticleID, &promptsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WritePrompt{}, apperr.NewNotFound("write prompts")
	}
	if err != nil {
		return domain.WritePrompt{}, apperr.NewStorage("select write prompts", err)
	}

	if err := json.Unmarshal(promptsJSON, &wp.Prompts); err != nil {
		return domain.WritePrompt{}, apperr.NewStorage("unmarshal prompts", err)
	}
	return wp, nil
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var topic string
	var connectionsJSON, languagesJSON []byte

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.OriginalText,
		&topic,
		&a.SourceURL,
		&a.WordCount,
		&connectionsJSON,
		&languagesJSON,
		&a.CreatedAt,
	); err != nil {
		return domain.Article{}, err
	}

	a.Topic = domain.Topic(topic)
	if len(connectionsJSON) > 0 {
		if err := json.Unmarshal(connectionsJSON, &a.CrossCurricularConnections); err != nil {
			return domain.Article{}, fmt.Errorf("unmarshal connections: %w", err)
		}
	}
	if len(languagesJSON) > 0 {
		if err := json.Unmarshal(languagesJSON, &a.AvailableLanguages); err != nil {
			return domain.Article{}, fmt.Errorf("unmarshal languages: %w", err)
		}
	}
	return a, nil
}

func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case []domain.CrossCurricularConnection:
		if val == nil {
			return nil, nil
		}
	case []string:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
