package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article is the aggregate root: one ingested source text plus metadata
// derived from it. Reading levels, quizzes and write prompts all hang off an
// article and are never shared between articles.
type Article struct {
	ID                         uuid.UUID                   `json:"id"`
	Title                      string                      `json:"title"`
	OriginalText               string                      `json:"originalText"`
	Topic                      Topic                       `json:"topic,omitempty"`
	SourceURL                  string                      `json:"sourceUrl,omitempty"`
	WordCount                  int                         `json:"wordCount"`
	CrossCurricularConnections []CrossCurricularConnection `json:"crossCurricularConnections,omitempty"`
	AvailableLanguages         []string                    `json:"availableLanguages,omitempty"`
	CreatedAt                  time.Time                   `json:"createdAt"`
}

// CrossCurricularConnection links an article to a syllabus item in another
// subject.
type CrossCurricularConnection struct {
	Subject           string `json:"subject"`
	Topic             string `json:"topic"`
	SyllabusReference string `json:"syllabusReference"`
	Description       string `json:"description"`
	Curriculum        string `json:"curriculum"`
}

const (
	MinLevel = 1
	MaxLevel = 5

	// StandardLevel is the canonical "standard" difficulty. Quiz and write
	// prompt generation are based on this level only.
	StandardLevel = 3
)

// ReadingLevel is one graded rewrite of an article. Level 1 is the simplest,
// level 5 the most complex; a fully ingested article has exactly one rewrite
// per level.
type ReadingLevel struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"articleId"`
	Level     int       `json:"level"`
	Content   string    `json:"content"`
	Byline    string    `json:"byline,omitempty"`
}

// Quiz is the comprehension quiz for an article. Questions are stored as a
// unit with their quiz, never row-by-row.
type Quiz struct {
	ID        uuid.UUID      `json:"id"`
	ArticleID uuid.UUID      `json:"articleId"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion has exactly QuizOptionCount options; CorrectAnswer indexes one
// of them.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

const (
	QuizQuestionCount = 5
	QuizOptionCount   = 4
)

// WritePrompt is the bundle of writing prompts generated for an article.
type WritePrompt struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"articleId"`
	Prompts   []string  `json:"prompts"`
}

// Topic is a category label from a fixed vocabulary.
type Topic string

const (
	TopicEducation   Topic = "Education"
	TopicTechnology  Topic = "Technology"
	TopicEnvironment Topic = "Environment"
	TopicSports      Topic = "Sports"
	TopicCulture     Topic = "Culture"
	TopicScience     Topic = "Science"
	TopicHealth      Topic = "Health"
	TopicGeneral     Topic = "General"
)

var Topics = []Topic{
	TopicEducation,
	TopicTechnology,
	TopicEnvironment,
	TopicSports,
	TopicCulture,
	TopicScience,
	TopicHealth,
	TopicGeneral,
}

// ParseTopic maps a free-form label onto the vocabulary. Unknown labels
// collapse to TopicGeneral so a creative model answer never leaks an
// out-of-vocabulary category into storage.
func ParseTopic(s string) Topic {
	for _, t := range Topics {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t
		}
	}
	return TopicGeneral
}

// WordCount counts whitespace-delimited tokens. The count recorded on an
// article is taken from the original text at creation time and never updated.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
