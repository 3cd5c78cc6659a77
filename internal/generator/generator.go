package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/BerylCAtieno/content-generator/internal/metrics"
	"github.com/BerylCAtieno/content-generator/internal/models"
	"github.com/BerylCAtieno/content-generator/internal/report"
	"github.com/BerylCAtieno/content-generator/internal/tracer"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const connectionPrompt = "Say 'Hello' in one word."

// Generator wraps a Client with prompt building, timing and metadata.
type Generator struct {
	client           Client
	maxContentLength int
	now              func() time.Time
}

type Option func(*Generator)

// WithMaxContentLength sets the length ceiling written into the prompt.
func WithMaxContentLength(n int) Option {
	return func(g *Generator) { g.maxContentLength = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(client Client, opts ...Option) *Generator {
	g := &Generator{client: client, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Provider() string { return g.client.Name() }
func (g *Generator) Model() string    { return g.client.Model() }

func (g *Generator) Close() error {
	return g.client.Close()
}

// GenerateWithMetadata calls the model once with the sanitized request. It
// never returns an error: failures, including a panicking client, become an
// outcome with Success false.
func (g *Generator) GenerateWithMetadata(ctx context.Context, req models.ContentRequest) models.GenerationOutcome {
	outcome := models.GenerationOutcome{
		ID:       uuid.NewString(),
		Provider: g.client.Name(),
		Model:    g.client.Model(),
	}

	ctx, span := tracer.Start(ctx, "generator.GenerateWithMetadata")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", outcome.Provider),
		attribute.String("llm.model", outcome.Model),
		attribute.String("content.language", req.Language),
	)

	start := g.now()
	completion, err := g.complete(ctx, BuildPrompt(req, g.maxContentLength))
	elapsed := g.now().Sub(start)

	metrics.LLMCallDuration.WithLabelValues(outcome.Provider, outcome.Model).Observe(elapsed.Seconds())

	if err == nil && strings.TrimSpace(completion.Text) == "" {
		err = apperror.ErrEmptyCompletion
	}
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(outcome.Provider, outcome.Model, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn(ctx, "content generation failed", "error", err, "provider", outcome.Provider)

		outcome.Error = errorMessage(err)
		return outcome
	}

	metrics.LLMCallTotal.WithLabelValues(outcome.Provider, outcome.Model, "success").Inc()
	metrics.LLMTokensUsed.WithLabelValues(outcome.Provider, outcome.Model, "prompt").Add(float64(completion.Usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(outcome.Provider, outcome.Model, "completion").Add(float64(completion.Usage.CompletionTokens))

	content := strings.TrimSpace(completion.Text)
	outcome.Success = true
	outcome.Content = content
	outcome.Usage = completion.Usage
	outcome.Metadata = models.Metadata{
		Language:       req.Language,
		Topic:          req.Topic,
		BrandVoice:     req.BrandVoice,
		WordCount:      report.WordCount(content),
		CharacterCount: report.CharacterCount(content),
		GenerationTime: report.Seconds(elapsed.Seconds()),
		GeneratedAt:    start.Add(elapsed),
	}
	return outcome
}

// TestConnection sends a one-word prompt. It reports false without error when
// the model answers with nothing.
func (g *Generator) TestConnection(ctx context.Context) (bool, error) {
	completion, err := g.complete(ctx, Prompt{User: connectionPrompt})
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(completion.Text) != "", nil
}

func (g *Generator) complete(ctx context.Context, prompt Prompt) (completion *Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("llm client panic: %v", r)
		}
	}()
	completion, err = g.client.Complete(ctx, prompt)
	if err == nil && completion == nil {
		err = apperror.ErrEmptyCompletion
	}
	return completion, err
}

func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
