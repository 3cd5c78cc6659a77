// Package generator talks to the hosted language model that writes the
// marketing content.
package generator

import (
	"context"

	"github.com/BerylCAtieno/content-generator/internal/models"
)

// Prompt is one system instruction plus one user message.
type Prompt struct {
	System string
	User   string
}

// Completion is the text returned by a Client with its token usage.
type Completion struct {
	Text  string
	Usage models.TokenUsage
}

// Client is the generation collaborator. Implementations must be safe for
// concurrent use.
type Client interface {
	Complete(ctx context.Context, prompt Prompt) (*Completion, error)
	Name() string
	Model() string
	Close() error
}
