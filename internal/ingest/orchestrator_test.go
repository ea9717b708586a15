package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/adaptivelearn/levelbook/internal/generator"
	"github.com/adaptivelearn/levelbook/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator lets each operation be overridden per test.
type fakeGenerator struct {
	levels       func() ([]generator.LeveledContent, error)
	quiz         func() ([]domain.QuizQuestion, error)
	writePrompts func() ([]string, error)
	titleTopic   func() (string, domain.Topic, error)
}

func (f *fakeGenerator) ReadingLevels(context.Context, string, string) ([]generator.LeveledContent, error) {
	return f.levels()
}

func (f *fakeGenerator) Quiz(context.Context, string, string) ([]domain.QuizQuestion, error) {
	return f.quiz()
}

func (f *fakeGenerator) WritePrompts(context.Context, string, string) ([]string, error) {
	return f.writePrompts()
}

func (f *fakeGenerator) TitleAndTopic(context.Context, string) (string, domain.Topic, error) {
	return f.titleTopic()
}

func happyGenerator() *fakeGenerator {
	return &fakeGenerator{
		levels: func() ([]generator.LeveledContent, error) {
			return []generator.LeveledContent{
				{Level: 1, Content: "simplest rewrite", Byline: "Adapted for younger readers"},
				{Level: 2, Content: "simple rewrite", Byline: "For developing readers"},
				{Level: 3, Content: "standard rewrite", Byline: "Standard level"},
				{Level: 4, Content: "advanced rewrite", Byline: "For confident readers"},
				{Level: 5, Content: "enriched rewrite", Byline: "Enriched version"},
			}, nil
		},
		quiz: func() ([]domain.QuizQuestion, error) {
			qs := make([]domain.QuizQuestion, domain.QuizQuestionCount)
			for i := range qs {
				qs[i] = domain.QuizQuestion{
					Question:      "Question?",
					Options:       []string{"a", "b", "c", "d"},
					CorrectAnswer: i % domain.QuizOptionCount,
				}
			}
			return qs, nil
		},
		writePrompts: func() ([]string, error) {
			return []string{"first prompt", "second prompt", "third prompt"}, nil
		},
		titleTopic: func() (string, domain.Topic, error) {
			return "Smart Technology in Schools", domain.TopicTechnology, nil
		},
	}
}

func validText() string {
	return strings.Repeat("Schools are adopting tablets and learning apps. ", 4)
}

func TestProcessText_TooShortIsRejected(t *testing.T) {
	store := in_mem.NewStore()
	o := New(store, happyGenerator())

	text := strings.Repeat("a", 99)
	_, err := o.ProcessText(context.Background(), text, "")

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	all, err := store.GetAllArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "no article may be created for invalid input")
}

func TestProcessText_URLOnlyIsRejected(t *testing.T) {
	o := New(in_mem.NewStore(), happyGenerator())

	_, err := o.ProcessText(context.Background(), "", "https://example.com/article")

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "URL ingestion is not supported")
}

func TestProcessText_HappyPath(t *testing.T) {
	store := in_mem.NewStore()
	o := New(store, happyGenerator())
	ctx := context.Background()

	text := validText()
	article, err := o.ProcessText(ctx, text, "")
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, "Smart Technology in Schools", article.Title)
	assert.Equal(t, domain.TopicTechnology, article.Topic)
	assert.Equal(t, len(strings.Fields(strings.TrimSpace(text))), article.WordCount)

	levels, err := store.GetReadingLevelsByArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, levels, 5)
	for i, l := range levels {
		assert.Equal(t, i+1, l.Level)
		assert.Equal(t, article.ID, l.ArticleID)
	}

	quiz, err := store.GetQuizByArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, domain.QuizQuestionCount)

	prompts, err := store.GetWritePromptsByArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, prompts.Prompts, 3)
}

func TestProcessText_ExtractionFailureCreatesNothing(t *testing.T) {
	store := in_mem.NewStore()
	gen := happyGenerator()
	gen.titleTopic = func() (string, domain.Topic, error) {
		return "", "", apperr.NewInvalidShape("title", "missing")
	}
	o := New(store, gen)

	_, err := o.ProcessText(context.Background(), validText(), "")

	var ise *apperr.InvalidShapeError
	require.ErrorAs(t, err, &ise)

	all, storeErr := store.GetAllArticles(context.Background())
	require.NoError(t, storeErr)
	assert.Empty(t, all, "extraction failure must abort before article creation")
}

func TestProcessText_LevelFailureIsHardButArticleRemains(t *testing.T) {
	store := in_mem.NewStore()
	gen := happyGenerator()
	gen.levels = func() ([]generator.LeveledContent, error) {
		return nil, apperr.NewInvalidShape("levels", "missing")
	}
	o := New(store, gen)
	ctx := context.Background()

	_, err := o.ProcessText(ctx, validText(), "")

	var ise *apperr.InvalidShapeError
	require.ErrorAs(t, err, &ise)

	// Hard failure policy: the request fails, but the already persisted
	// article stays (no rollback).
	all, storeErr := store.GetAllArticles(ctx)
	require.NoError(t, storeErr)
	require.Len(t, all, 1)

	levels, storeErr := store.GetReadingLevelsByArticle(ctx, all[0].ID)
	require.NoError(t, storeErr)
	assert.Empty(t, levels)
}

func TestProcessText_QuizFailureFailsRequest(t *testing.T) {
	store := in_mem.NewStore()
	gen := happyGenerator()
	gen.quiz = func() ([]domain.QuizQuestion, error) {
		return nil, apperr.NewMalformedResponse("garbage", nil)
	}
	o := New(store, gen)

	_, err := o.ProcessText(context.Background(), validText(), "")

	var mre *apperr.MalformedResponseError
	require.ErrorAs(t, err, &mre)
}

func TestProcessText_MissingStandardLevelSkipsQuizAndPrompts(t *testing.T) {
	store := in_mem.NewStore()
	gen := happyGenerator()
	gen.levels = func() ([]generator.LeveledContent, error) {
		return []generator.LeveledContent{
			{Level: 1, Content: "a", Byline: "b"},
			{Level: 2, Content: "a", Byline: "b"},
			{Level: 4, Content: "a", Byline: "b"},
			{Level: 5, Content: "a", Byline: "b"},
		}, nil
	}
	gen.quiz = func() ([]domain.QuizQuestion, error) {
		t.Fatal("quiz must not be generated without a level-3 rewrite")
		return nil, nil
	}
	gen.writePrompts = func() ([]string, error) {
		t.Fatal("prompts must not be generated without a level-3 rewrite")
		return nil, nil
	}
	o := New(store, gen)
	ctx := context.Background()

	article, err := o.ProcessText(ctx, validText(), "")
	require.NoError(t, err)

	_, err = store.GetQuizByArticle(ctx, article.ID)
	var nfe *apperr.NotFoundError
	require.ErrorAs(t, err, &nfe)

	_, err = store.GetWritePromptsByArticle(ctx, article.ID)
	require.ErrorAs(t, err, &nfe)
}

func TestProcessText_SourceURLRecordedAlongsideText(t *testing.T) {
	store := in_mem.NewStore()
	o := New(store, happyGenerator())

	article, err := o.ProcessText(context.Background(), validText(), "https://example.com/source")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/source", article.SourceURL)

	fetched, err := store.GetArticle(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, fetched.Title)
	assert.Equal(t, article.OriginalText, fetched.OriginalText)
	assert.Equal(t, article.WordCount, fetched.WordCount)
}
