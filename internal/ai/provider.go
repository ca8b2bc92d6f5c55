package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/credentials"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// ErrNoProviderConfigured means no remote AI credential is available.
var ErrNoProviderConfigured = errors.New("no remote AI provider configured")

// MCQ is the structured payload a provider returns for one topic.
type MCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Provider is one remote AI backend able to extract topics from text and
// generate a multiple-choice question per topic. Implementations are
// interchangeable; the orchestrator treats any per-call failure as
// droppable and falls back to the local pipeline on extraction failure.
type Provider interface {
	Name() string
	ExtractTopics(ctx context.Context, text string, numTopics int) ([]models.Topic, error)
	GenerateMCQ(ctx context.Context, topic models.Topic) (*MCQ, error)
}

// SelectProvider picks the preferred configured backend: OpenAI when its
// credential is present, Gemini otherwise.
func SelectProvider(creds credentials.Provider, cfg *config.Config) (Provider, error) {
	if creds.Has(credentials.ProviderOpenAI) {
		return NewOpenAIClient(creds.Get(credentials.ProviderOpenAI), cfg), nil
	}
	if creds.Has(credentials.ProviderGemini) {
		return NewGeminiClient(creds.Get(credentials.ProviderGemini), cfg)
	}
	return nil, ErrNoProviderConfigured
}

// buildTopicsPrompt asks the model for topics in the exact JSON shape the
// boundary decoder validates.
func buildTopicsPrompt(text string, numTopics int) string {
	return fmt.Sprintf(`Extract %d main topics from this educational text and return them in JSON format. Each topic should include a title, context, and 3-5 keywords. Format the response as a valid JSON object with a "topics" array containing objects with the following structure:
{
  "topics": [
    {
      "id": "topic-1",
      "title": "Topic Title",
      "context": "Brief context about the topic",
      "keywords": ["keyword1", "keyword2", "keyword3"]
    }
  ]
}

Here is the text to analyze:
%s`, numTopics, text)
}

// buildMCQPrompt asks the model for one multiple-choice question about a
// topic in the validated JSON shape.
func buildMCQPrompt(topic models.Topic) string {
	title := topic.Title
	if title == "" {
		title = topic.PrimaryKeyword()
	}
	return fmt.Sprintf(`Create a challenging but fair multiple-choice question about %q.
Topic context: %q
Key terms: %s

Return it as a valid JSON object with these fields:
{
  "question": "the question text",
  "options": ["option 1", "option 2", "option 3", "option 4"],
  "correctAnswer": 0
}
The correctAnswer field is the 0-based index of the correct option.`, title, topic.Context, strings.Join(topic.Keywords, ", "))
}
