package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns a canned response regardless of prompt.
type stubClient struct {
	response string
	err      error
}

func (s stubClient) Complete(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

func validLevelsJSON() string {
	return `{"levels": [
		{"level": 1, "content": "Very simple text.", "byline": "Adapted for younger readers"},
		{"level": 2, "content": "Simple text.", "byline": "For developing readers"},
		{"level": 3, "content": "Standard text.", "byline": "Standard level"},
		{"level": 4, "content": "Advanced text.", "byline": "For confident readers"},
		{"level": 5, "content": "Complex enriched text.", "byline": "Enriched version"}
	]}`
}

func TestReadingLevels(t *testing.T) {
	g := New(stubClient{response: validLevelsJSON()})

	levels, err := g.ReadingLevels(context.Background(), "source text", "Title")
	require.NoError(t, err)
	require.Len(t, levels, 5)

	seen := map[int]bool{}
	for _, lc := range levels {
		assert.NotEmpty(t, lc.Content)
		assert.False(t, seen[lc.Level], "duplicate level %d", lc.Level)
		seen[lc.Level] = true
	}
	for lvl := 1; lvl <= 5; lvl++ {
		assert.True(t, seen[lvl], "level %d missing", lvl)
	}
}

func TestReadingLevels_FencedResponse(t *testing.T) {
	g := New(stubClient{response: "```json\n" + validLevelsJSON() + "\n```"})

	levels, err := g.ReadingLevels(context.Background(), "source text", "Title")
	require.NoError(t, err)
	assert.Len(t, levels, 5)
}

func TestReadingLevels_ShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing levels field", `{"content": "whatever"}`},
		{"four entries", `{"levels": [
			{"level": 1, "content": "a", "byline": "b"},
			{"level": 2, "content": "a", "byline": "b"},
			{"level": 3, "content": "a", "byline": "b"},
			{"level": 4, "content": "a", "byline": "b"}
		]}`},
		{"duplicate level", `{"levels": [
			{"level": 1, "content": "a", "byline": "b"},
			{"level": 2, "content": "a", "byline": "b"},
			{"level": 3, "content": "a", "byline": "b"},
			{"level": 3, "content": "a", "byline": "b"},
			{"level": 5, "content": "a", "byline": "b"}
		]}`},
		{"level out of range", `{"levels": [
			{"level": 0, "content": "a", "byline": "b"},
			{"level": 2, "content": "a", "byline": "b"},
			{"level": 3, "content": "a", "byline": "b"},
			{"level": 4, "content": "a", "byline": "b"},
			{"level": 5, "content": "a", "byline": "b"}
		]}`},
		{"empty content", `{"levels": [
			{"level": 1, "content": "", "byline": "b"},
			{"level": 2, "content": "a", "byline": "b"},
			{"level": 3, "content": "a", "byline": "b"},
			{"level": 4, "content": "a", "byline": "b"},
			{"level": 5, "content": "a", "byline": "b"}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(stubClient{response: tt.response})
			_, err := g.ReadingLevels(context.Background(), "text", "Title")

			var ise *apperr.InvalidShapeError
			require.ErrorAs(t, err, &ise)
			assert.Equal(t, "levels", ise.Field)
		})
	}
}

func TestReadingLevels_MalformedResponse(t *testing.T) {
	g := New(stubClient{response: "I'd be happy to help with that!"})

	_, err := g.ReadingLevels(context.Background(), "text", "Title")

	var mre *apperr.MalformedResponseError
	require.ErrorAs(t, err, &mre)
	assert.NotEmpty(t, mre.Cleaned)
}

func TestReadingLevels_ClientError(t *testing.T) {
	upstream := fmt.Errorf("connection reset")
	g := New(stubClient{err: upstream})

	_, err := g.ReadingLevels(context.Background(), "text", "Title")
	require.ErrorIs(t, err, upstream)
}

func TestQuiz(t *testing.T) {
	g := New(stubClient{response: `{"questions": [
		{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctAnswer": 0},
		{"question": "Q2?", "options": ["a", "b", "c", "d"], "correctAnswer": 1},
		{"question": "Q3?", "options": ["a", "b", "c", "d"], "correctAnswer": 2},
		{"question": "Q4?", "options": ["a", "b", "c", "d"], "correctAnswer": 3},
		{"question": "Q5?", "options": ["a", "b", "c", "d"], "correctAnswer": 0}
	]}`})

	questions, err := g.Quiz(context.Background(), "level 3 content", "Title")
	require.NoError(t, err)
	require.Len(t, questions, domain.QuizQuestionCount)
	for _, q := range questions {
		assert.Len(t, q.Options, domain.QuizOptionCount)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, domain.QuizOptionCount)
	}
}

func TestQuiz_ShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing questions", `{"quiz": []}`},
		{"three options", `{"questions": [
			{"question": "Q1?", "options": ["a", "b", "c"], "correctAnswer": 0},
			{"question": "Q2?", "options": ["a", "b", "c", "d"], "correctAnswer": 1},
			{"question": "Q3?", "options": ["a", "b", "c", "d"], "correctAnswer": 2},
			{"question": "Q4?", "options": ["a", "b", "c", "d"], "correctAnswer": 3},
			{"question": "Q5?", "options": ["a", "b", "c", "d"], "correctAnswer": 0}
		]}`},
		{"answer out of range", `{"questions": [
			{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctAnswer": 4},
			{"question": "Q2?", "options": ["a", "b", "c", "d"], "correctAnswer": 1},
			{"question": "Q3?", "options": ["a", "b", "c", "d"], "correctAnswer": 2},
			{"question": "Q4?", "options": ["a", "b", "c", "d"], "correctAnswer": 3},
			{"question": "Q5?", "options": ["a", "b", "c", "d"], "correctAnswer": 0}
		]}`},
		{"four questions", `{"questions": [
			{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctAnswer": 0},
			{"question": "Q2?", "options": ["a", "b", "c", "d"], "correctAnswer": 1},
			{"question": "Q3?", "options": ["a", "b", "c", "d"], "correctAnswer": 2},
			{"question": "Q4?", "options": ["a", "b", "c", "d"], "correctAnswer": 3}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(stubClient{response: tt.response})
			_, err := g.Quiz(context.Background(), "content", "Title")

			var ise *apperr.InvalidShapeError
			require.ErrorAs(t, err, &ise)
			assert.Equal(t, "questions", ise.Field)
		})
	}
}

func TestWritePrompts(t *testing.T) {
	g := New(stubClient{response: `{"prompts": ["First prompt.", "Second prompt.", "Third prompt."]}`})

	prompts, err := g.WritePrompts(context.Background(), "content", "Title")
	require.NoError(t, err)
	assert.Len(t, prompts, 3)
}

func TestWritePrompts_Missing(t *testing.T) {
	g := New(stubClient{response: `{"prompts": []}`})

	_, err := g.WritePrompts(context.Background(), "content", "Title")

	var ise *apperr.InvalidShapeError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "prompts", ise.Field)
}

func TestTitleAndTopic(t *testing.T) {
	g := New(stubClient{response: `{"title": "Recycling at School", "topic": "Environment"}`})

	title, topic, err := g.TitleAndTopic(context.Background(), "some long source text")
	require.NoError(t, err)
	assert.Equal(t, "Recycling at School", title)
	assert.Equal(t, domain.TopicEnvironment, topic)
}

func TestTitleAndTopic_UnknownTopicCoercesToGeneral(t *testing.T) {
	g := New(stubClient{response: `{"title": "A Title", "topic": "Astrology"}`})

	_, topic, err := g.TitleAndTopic(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, domain.TopicGeneral, topic)
}

func TestTitleAndTopic_MissingFields(t *testing.T) {
	for _, response := range []string{`{"topic": "Science"}`, `{"title": "A Title"}`} {
		g := New(stubClient{response: response})

		_, _, err := g.TitleAndTopic(context.Background(), "text")

		var ise *apperr.InvalidShapeError
		if !errors.As(err, &ise) {
			t.Fatalf("expected InvalidShapeError, got %v", err)
		}
	}
}
