package generator

import (
	"context"
	"strings"

	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/models"
)

var (
	_ Client = (*MockClient)(nil)
	_ Client = (*OfflineClient)(nil)
	_ Client = (*GeminiClient)(nil)
	_ Client = (*OpenAIClient)(nil)
)

// MockClient is a test double for Client.
// Set CompleteFn before calling Complete.
type MockClient struct {
	CompleteFn func(ctx context.Context, prompt Prompt) (*Completion, error)
	ModelName  string
}

// Complete delegates to CompleteFn.
func (m *MockClient) Complete(ctx context.Context, prompt Prompt) (*Completion, error) {
	return m.CompleteFn(ctx, prompt)
}

func (m *MockClient) Name() string  { return config.ProviderMock }
func (m *MockClient) Model() string { return m.ModelName }
func (m *MockClient) Close() error  { return nil }

// OfflineClient never calls a model. It echoes the brief back as markdown,
// which is enough to exercise the page locally without a credential.
type OfflineClient struct{}

func (OfflineClient) Name() string  { return config.ProviderMock }
func (OfflineClient) Model() string { return "offline" }
func (OfflineClient) Close() error  { return nil }

func (OfflineClient) Complete(_ context.Context, prompt Prompt) (*Completion, error) {
	var sb strings.Builder
	sb.WriteString("# Sample Marketing Content\n\n")
	sb.WriteString("This draft was produced without a language model. The brief it was built from:\n\n")
	for _, line := range strings.Split(strings.TrimSpace(prompt.User), "\n") {
		if key, value, ok := strings.Cut(line, ": "); ok {
			sb.WriteString("- **" + key + ":** " + value + "\n")
		}
	}

	text := sb.String()
	words := len(strings.Fields(text))
	return &Completion{
		Text: text,
		Usage: models.TokenUsage{
			PromptTokens:     len(strings.Fields(prompt.User)),
			CompletionTokens: words,
			TotalTokens:      len(strings.Fields(prompt.User)) + words,
		},
	}, nil
}
