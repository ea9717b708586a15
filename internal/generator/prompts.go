package generator

import (
	"fmt"
	"strings"

	"github.com/adaptivelearn/levelbook/internal/domain"
)

// extractSnippetLen bounds how much of the source text is sent for
// title/topic extraction. The full text is not needed to classify it.
const extractSnippetLen = 1000

func readingLevelsPrompt(text, title string) string {
	return fmt.Sprintf(`You are an educational content specialist for upper-primary students (ages 11+).

Transform the following article into 5 different reading levels for an adaptive textbook.

Level 1: Simple vocabulary, short sentences (struggling readers)
Level 2: Basic vocabulary, clear structure (average readers)
Level 3: Standard vocabulary, moderate complexity (strong readers)
Level 4: Advanced vocabulary, complex sentences
Level 5: Original complexity with enriched vocabulary

Title: %s

Original Text:
%s

Return a JSON object with this exact structure:
{
  "levels": [
    {"level": 1, "content": "Simplified version with 3-4 paragraphs...", "byline": "Adapted for younger readers"},
    {"level": 2, "content": "...", "byline": "..."},
    {"level": 3, "content": "...", "byline": "..."},
    {"level": 4, "content": "...", "byline": "..."},
    {"level": 5, "content": "...", "byline": "..."}
  ]
}

Important:
- Maintain the core facts and story
- Each level should be 3-5 paragraphs
- Ensure content is engaging and educational`, title, text)
}

func quizPrompt(content, title string) string {
	return fmt.Sprintf(`Create 5 comprehension questions for this textbook content.

Title: %s

Content:
%s

Return a JSON object with this exact structure:
{
  "questions": [
    {"question": "Clear, specific question about the content?", "options": ["Option A", "Option B", "Option C", "Option D"], "correctAnswer": 0}
  ]
}

Guidelines:
- Exactly 5 questions, each with exactly 4 options
- Questions should test understanding, not just recall
- Include one question about main idea, one about details, one inferential
- Ensure only one clearly correct answer per question
- correctAnswer is the index (0-3) of the correct option`, title, content)
}

func writePromptsPrompt(content, title string) string {
	return fmt.Sprintf(`Create 3 writing prompts based on this textbook content.

Title: %s

Content:
%s

Return a JSON object with this exact structure:
{
  "prompts": [
    "First writing prompt that encourages critical thinking...",
    "Second prompt that asks for personal connection...",
    "Third prompt that explores causes, effects or implications..."
  ]
}

Guidelines:
- Each prompt should encourage 2-3 paragraph responses
- Prompts should relate directly to the content
- Encourage evidence-based reasoning from the text`, title, content)
}

func titleTopicPrompt(text string) string {
	snippet := text
	if len(snippet) > extractSnippetLen {
		snippet = snippet[:extractSnippetLen] + "..."
	}

	labels := make([]string, len(domain.Topics))
	for i, t := range domain.Topics {
		labels[i] = string(t)
	}

	return fmt.Sprintf(`Analyze this text and extract a clear title and categorize it into one topic.

Text:
%s

Return a JSON object with this exact structure:
{
  "title": "Clear, engaging title for the content",
  "topic": "Single category: %s"
}`, snippet, strings.Join(labels, ", "))
}
