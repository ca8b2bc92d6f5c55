package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// Models wrap JSON answers in markdown fences more often than not, and
// sometimes return a bare array instead of the requested wrapper object.
// Everything that comes back is validated into typed records before it may
// enter the pipeline; a malformed payload fails the call.

var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// extractJSONBlock strips a markdown fence from model output, returning the
// raw text unchanged when no fence is present.
func extractJSONBlock(text string) string {
	if m := jsonFenceRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

type topicsEnvelope struct {
	Topics []topicPayload `json:"topics"`
}

type topicPayload struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Context  string   `json:"context"`
	Keywords []string `json:"keywords"`
}

// decodeTopics parses a topics response, accepting either the documented
// {"topics": [...]} envelope or a bare array.
func decodeTopics(text string) ([]models.Topic, error) {
	raw := extractJSONBlock(text)

	var payload []topicPayload
	var envelope topicsEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Topics != nil {
		payload = envelope.Topics
	} else {
		var bare []topicPayload
		if err := json.Unmarshal([]byte(raw), &bare); err != nil {
			return nil, fmt.Errorf("response is not valid topics JSON: %w", err)
		}
		payload = bare
	}

	topics := make([]models.Topic, 0, len(payload))
	for i, p := range payload {
		if p.Title == "" && len(p.Keywords) == 0 {
			continue
		}
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("topic-%d", i)
		}
		topics = append(topics, models.Topic{
			ID:       id,
			Title:    p.Title,
			Context:  p.Context,
			Keywords: p.Keywords,
		})
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("response contained no usable topics")
	}
	return topics, nil
}

// decodeMCQ parses and validates one generated question. The option-count
// and answer-index invariants are enforced here so malformed payloads never
// reach the exam store.
func decodeMCQ(text string) (*MCQ, error) {
	raw := extractJSONBlock(text)

	var mcq MCQ
	if err := json.Unmarshal([]byte(raw), &mcq); err != nil {
		return nil, fmt.Errorf("response is not valid MCQ JSON: %w", err)
	}
	if mcq.Question == "" {
		return nil, fmt.Errorf("MCQ response has empty question text")
	}
	if len(mcq.Options) != 4 {
		return nil, fmt.Errorf("MCQ response has %d options, want 4", len(mcq.Options))
	}
	if mcq.CorrectAnswer < 0 || mcq.CorrectAnswer >= len(mcq.Options) {
		return nil, fmt.Errorf("MCQ response has out-of-range correctAnswer %d", mcq.CorrectAnswer)
	}
	return &mcq, nil
}
