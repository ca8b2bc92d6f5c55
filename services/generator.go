package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/ai"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/logger"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/telemetry"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// Stage is one step of a generation cycle. The orchestrator emits stages
// through a ProgressFunc so the UI can drive progress display without the
// core knowing anything about rendering.
type Stage string

const (
	StageValidatingInput     Stage = "validating_input"
	StageExtractingTopics    Stage = "extracting_topics"
	StageGeneratingQuestions Stage = "generating_questions"
	StageLocalExtraction     Stage = "local_extraction_fallback"
	StageLocalSynthesis      Stage = "local_synthesis_fallback"
	StageDone                Stage = "done"
)

// ProgressFunc receives stage transitions during one generation call.
type ProgressFunc func(stage Stage)

// Generator is the top-level entry point for question generation. It
// validates input, prefers the remote provider when one is configured and
// falls back to the local statistical pipeline on remote failure.
type Generator struct {
	cfg       *config.Config
	provider  ai.Provider // nil when no credential is configured
	topics    *TopicExtractor
	questions *QuestionSynthesizer
	metrics   *telemetry.Metrics
}

func NewGenerator(cfg *config.Config, provider ai.Provider, metrics *telemetry.Metrics) *Generator {
	return &Generator{
		cfg:       cfg,
		provider:  provider,
		topics:    NewTopicExtractor(),
		questions: NewQuestionSynthesizer(NewDistractorSynthesizer(nil)),
		metrics:   metrics,
	}
}

// GenerateQuestions runs one generation cycle. Validation failures happen
// before any network or CPU work; per-item remote failures degrade the
// result instead of failing it; only a total failure of both paths reaches
// the caller as an error. Progress may be nil.
func (g *Generator) GenerateQuestions(ctx context.Context, req models.GenerationRequest, progress ProgressFunc) (*models.GenerationResult, error) {
	emit := func(stage Stage) {
		if progress != nil {
			progress(stage)
		}
	}

	emit(StageValidatingInput)

	text := strings.TrimSpace(req.Text)
	if len(text) < g.cfg.MinTextLength {
		return nil, ErrInputTooShort
	}

	count := req.NumQuestions
	if count < 1 {
		count = 1
	}
	if count > g.cfg.MaxQuestions {
		count = g.cfg.MaxQuestions
	}

	types := validTypes(req.QuestionTypes)

	var questions []models.Question
	source := "local"

	if g.provider != nil {
		questions = g.generateRemote(ctx, emit, text, count, types)
		if len(questions) > 0 {
			source = g.provider.Name()
		}
	}

	if len(questions) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.provider != nil {
			g.metrics.RecordFallback(ctx, g.provider.Name())
		}

		emit(StageLocalExtraction)
		topics := g.topics.ExtractTopics(text, count)
		if len(topics) == 0 {
			if g.provider == nil {
				return nil, ErrNoProviderConfigured
			}
			return nil, ErrGenerationFailed
		}

		emit(StageLocalSynthesis)
		questions = g.questions.Synthesize(topics, types, count)
		if len(questions) == 0 {
			return nil, ErrGenerationFailed
		}
	}

	questions = finalize(questions, count)
	g.metrics.RecordQuestions(ctx, len(questions), source)
	emit(StageDone)

	return &models.GenerationResult{
		Questions: questions,
		Requested: count,
		Source:    source,
	}, nil
}

// generateRemote runs the remote path: one extract-topics call, then a
// bounded concurrent fan-out of per-topic generate calls joined with a
// settle-all policy. A failed item is dropped, never the batch. Any
// failure extracting topics returns nil so the caller falls back locally.
func (g *Generator) generateRemote(ctx context.Context, emit func(Stage), text string, count int, types []models.QuestionType) []models.Question {
	emit(StageExtractingTopics)

	callTimeout := time.Duration(g.cfg.RemoteTimeout) * time.Second

	extractCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	topics, err := g.provider.ExtractTopics(extractCtx, text, count)
	if err != nil {
		logger.Warn("Remote topic extraction failed, falling back to local pipeline",
			"provider", g.provider.Name(), "error", err.Error())
		return nil
	}
	if len(topics) > count {
		topics = topics[:count]
	}

	emit(StageGeneratingQuestions)

	concurrency := g.cfg.RemoteConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	results := make([]*ai.MCQ, len(topics))

	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic models.Topic) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			mcqCtx, cancel := context.WithTimeout(ctx, callTimeout)
			defer cancel()

			mcq, err := g.provider.GenerateMCQ(mcqCtx, topic)
			if err != nil {
				remoteErr := &RemoteCallError{Provider: g.provider.Name(), Op: "generate-mcq", Err: err}
				logger.Warn("Dropping failed topic generation", "topic", topic.ID, "error", remoteErr.Error())
				g.metrics.RecordRemoteFailure(ctx, g.provider.Name(), "generate-mcq")
				return
			}
			results[i] = mcq
		}(i, topic)
	}
	wg.Wait()

	questions := make([]models.Question, 0, len(results))
	for _, mcq := range results {
		if mcq == nil {
			continue
		}
		questions = append(questions, models.Question{
			Text:          mcq.Question,
			Type:          models.QuestionTypeMCQ,
			Options:       mcq.Options,
			CorrectAnswer: mcq.CorrectAnswer,
		})
	}
	return questions
}

// finalize drops duplicate questions, caps the batch at count and attaches
// fresh unique IDs combining a timestamp with the index. Two questions are
// duplicates only when both prompt and options match; the same prompt with
// a different option set is a distinct question.
func finalize(questions []models.Question, count int) []models.Question {
	batch := time.Now().UnixMilli()
	seen := make(map[string]struct{}, len(questions))
	out := make([]models.Question, 0, count)

	for _, q := range questions {
		key := strings.ToLower(strings.TrimSpace(q.Text) + "|" + strings.Join(q.Options, "|"))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		q.ID = fmt.Sprintf("gen-%d-%d", batch, len(out))
		out = append(out, q)
		if len(out) == count {
			break
		}
	}
	return out
}

// validTypes filters the requested mix down to known types, defaulting to
// both when nothing valid remains.
func validTypes(requested []models.QuestionType) []models.QuestionType {
	var types []models.QuestionType
	for _, t := range requested {
		if t == models.QuestionTypeMCQ || t == models.QuestionTypeBlank {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []models.QuestionType{models.QuestionTypeMCQ, models.QuestionTypeBlank}
	}
	return types
}
