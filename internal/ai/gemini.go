package ai

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/logger"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// GeminiClient talks to Google Gemini through the genai SDK. Calls go
// through a circuit breaker and an RPM limiter sized for the configured
// API tier; a tripped breaker fails fast so the orchestrator can fall back
// to the local pipeline instead of queueing doomed requests.
type GeminiClient struct {
	client      *genai.Client
	model       string
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	callTimeout time.Duration
}

func NewGeminiClient(apiKey string, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	rpm := tierRPM(cfg.GeminiTier)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	// RPM limit with some buffer
	rateLimiter := rate.NewLimiter(rate.Limit(float64(rpm)*0.9/60.0), max(rpm/10, 1))

	return &GeminiClient{
		client:      client,
		model:       cfg.GeminiModel,
		breaker:     breaker,
		rateLimiter: rateLimiter,
		callTimeout: time.Duration(cfg.RemoteTimeout) * time.Second,
	}, nil
}

func tierRPM(tier string) int {
	switch tier {
	case "tier1":
		return 1000
	case "tier2":
		return 2000
	default: // free
		return 10
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) ExtractTopics(ctx context.Context, text string, numTopics int) ([]models.Topic, error) {
	content, err := c.generate(ctx, "gemini.extract_topics", buildTopicsPrompt(text, numTopics))
	if err != nil {
		return nil, err
	}
	return decodeTopics(content)
}

func (c *GeminiClient) GenerateMCQ(ctx context.Context, topic models.Topic) (*MCQ, error) {
	content, err := c.generate(ctx, "gemini.generate_mcq", buildMCQPrompt(topic))
	if err != nil {
		return nil, err
	}
	return decodeMCQ(content)
}

// generate runs one prompt through the limiter, breaker and SDK, returning
// the concatenated text parts of the first candidate.
func (c *GeminiClient) generate(ctx context.Context, spanName, prompt string) (string, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		attribute.String("gemini.model", c.model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		model := c.client.GenerativeModel(c.model)
		model.SetTemperature(0.2)

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		span.SetAttributes(
			attribute.Bool("gemini.error", true),
			attribute.String("gemini.error_message", err.Error()),
		)
		return "", err
	}

	resp := result.(*genai.GenerateContentResponse)
	text := responseText(resp)
	span.SetAttributes(attribute.Int("gemini.response_chars", len(text)))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	out := ""
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
		break
	}
	return out
}

// Close the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
