package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/logger"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
	"github.com/avast/retry-go/v4"
)

// OpenAIClient talks to the OpenAI chat-completions endpoint over plain
// HTTP. Transient failures are retried with exponential backoff; the
// response body is decoded through the validating JSON boundary.
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	model      string
	retries    uint
	httpClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewOpenAIClient(apiKey string, cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		apiURL:  cfg.OpenAIAPIURL,
		model:   cfg.OpenAIModel,
		retries: uint(cfg.RemoteRetries),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RemoteTimeout) * time.Second,
		},
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) ExtractTopics(ctx context.Context, text string, numTopics int) ([]models.Topic, error) {
	content, err := c.complete(ctx, buildTopicsPrompt(text, numTopics))
	if err != nil {
		return nil, err
	}
	return decodeTopics(content)
}

func (c *OpenAIClient) GenerateMCQ(ctx context.Context, topic models.Topic) (*MCQ, error) {
	content, err := c.complete(ctx, buildMCQPrompt(topic))
	if err != nil {
		return nil, err
	}
	return decodeMCQ(content)
}

// complete sends one chat-completion request and returns the first
// choice's message content.
func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	var content string
	err = retry.Do(
		func() error {
			result, err := c.makeRequest(ctx, body)
			if err != nil {
				logger.Warn("OpenAI call failed, may retry", "error", err.Error())
				return err
			}
			content = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retries+1),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *OpenAIClient) makeRequest(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
