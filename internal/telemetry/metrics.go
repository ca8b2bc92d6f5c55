package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the generation pipeline counters. A nil *Metrics is safe to
// use; every record method no-ops.
type Metrics struct {
	QuestionsGenerated  metric.Int64Counter
	FallbackActivations metric.Int64Counter
	RemoteCallFailures  metric.Int64Counter
	ExtractionDuration  metric.Float64Histogram
}

// InitMetrics initializes all pipeline metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("smart-exam-ai-genius")

	questionsGenerated, err := meter.Int64Counter(
		"generation.questions.total",
		metric.WithDescription("Total questions generated"),
	)
	if err != nil {
		return nil, err
	}

	fallbackActivations, err := meter.Int64Counter(
		"generation.fallback.total",
		metric.WithDescription("Remote-to-local fallback activations"),
	)
	if err != nil {
		return nil, err
	}

	remoteCallFailures, err := meter.Int64Counter(
		"generation.remote_failures.total",
		metric.WithDescription("Dropped per-item remote call failures"),
	)
	if err != nil {
		return nil, err
	}

	extractionDuration, err := meter.Float64Histogram(
		"extraction.duration",
		metric.WithDescription("PDF text extraction duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		QuestionsGenerated:  questionsGenerated,
		FallbackActivations: fallbackActivations,
		RemoteCallFailures:  remoteCallFailures,
		ExtractionDuration:  extractionDuration,
	}, nil
}

// RecordQuestions counts generated questions by source ("local" or a
// provider name).
func (m *Metrics) RecordQuestions(ctx context.Context, count int, source string) {
	if m == nil {
		return
	}
	m.QuestionsGenerated.Add(ctx, int64(count), metric.WithAttributes(attribute.String("source", source)))
}

// RecordFallback counts one remote-to-local fallback.
func (m *Metrics) RecordFallback(ctx context.Context, provider string) {
	if m == nil {
		return
	}
	m.FallbackActivations.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

// RecordRemoteFailure counts one dropped per-item remote failure.
func (m *Metrics) RecordRemoteFailure(ctx context.Context, provider, op string) {
	if m == nil {
		return
	}
	m.RemoteCallFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("op", op),
	))
}

// RecordExtraction records one extraction duration.
func (m *Metrics) RecordExtraction(ctx context.Context, seconds float64, method string) {
	if m == nil {
		return
	}
	m.ExtractionDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("method", method)))
}
