package generator

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/report"
)

// Availability is the result of Init. Generator is nil exactly when Err is set;
// callers check Available before generating.
type Availability struct {
	Generator *Generator
	Err       error
}

func (a Availability) Available() bool {
	return a.Generator != nil && a.Err == nil
}

func (a Availability) Close() error {
	if a.Generator == nil {
		return nil
	}
	return a.Generator.Close()
}

// Status runs the connection test and renders its report line.
func (a Availability) Status(ctx context.Context) string {
	if !a.Available() {
		return report.StatusNotConfigured
	}
	ok, err := a.Generator.TestConnection(ctx)
	switch {
	case err != nil:
		return report.FormatConnectionError(err)
	case !ok:
		return report.StatusFailed
	default:
		return report.StatusConnected
	}
}

// Init checks the credential and builds the configured client. It never fails
// hard: a missing credential or a client that cannot be built is returned in Err.
func Init(ctx context.Context, cfg *config.Config) Availability {
	if err := cfg.Validate(); err != nil {
		return Availability{Err: err}
	}

	client, err := NewClient(ctx, cfg.LLM)
	if err != nil {
		return Availability{Err: apperror.Wrap(err, apperror.CodeConfiguration, "failed to create LLM client")}
	}

	return Availability{
		Generator: New(client, WithMaxContentLength(cfg.Content.MaxContentLength)),
	}
}

// NewClient builds the Client for cfg.Provider.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg)
	case config.ProviderMock:
		return OfflineClient{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
