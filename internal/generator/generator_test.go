package generator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/generator"
	"github.com/BerylCAtieno/content-generator/internal/models"
	"github.com/BerylCAtieno/content-generator/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request() models.ContentRequest {
	return models.ContentRequest{
		Language:       "English",
		Topic:          "AI in healthcare",
		PrimaryGoal:    "educate readers",
		TargetAudience: "clinicians",
		BrandVoice:     "Professional",
	}
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("required fields only", func(t *testing.T) {
		t.Parallel()
		p := generator.BuildPrompt(request(), 0)
		assert.Contains(t, p.System, "in English")
		assert.Contains(t, p.User, "Topic: AI in healthcare\n")
		assert.Contains(t, p.User, "Primary goal: educate readers\n")
		assert.Contains(t, p.User, "Target audience: clinicians\n")
		assert.Contains(t, p.User, "Brand voice: Professional\n")
		assert.NotContains(t, p.User, "Key message")
		assert.NotContains(t, p.User, "Additional information")
		assert.NotContains(t, p.User, "Keep the content under")
	})

	t.Run("optional fields and ceiling", func(t *testing.T) {
		t.Parallel()
		req := request()
		req.KeyMessage = "save time"
		req.AdditionalInfo = "mention HIPAA"
		p := generator.BuildPrompt(req, 10000)
		assert.Contains(t, p.User, "Key message: save time\n")
		assert.Contains(t, p.User, "Additional information: mention HIPAA\n")
		assert.Contains(t, p.User, "Keep the content under 10000 characters.")
	})
}

func TestGenerateWithMetadataSuccess(t *testing.T) {
	t.Parallel()

	var got generator.Prompt
	client := &generator.MockClient{
		ModelName: "test-model",
		CompleteFn: func(ctx context.Context, prompt generator.Prompt) (*generator.Completion, error) {
			got = prompt
			return &generator.Completion{
				Text:  "  Hello world\n",
				Usage: models.TokenUsage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
			}, nil
		},
	}
	start := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	g := generator.New(client,
		generator.WithClock(steppingClock(start, 1234*time.Millisecond)),
		generator.WithMaxContentLength(500),
	)

	outcome := g.GenerateWithMetadata(context.Background(), request())

	require.True(t, outcome.Success)
	assert.Empty(t, outcome.Error)
	assert.NotEmpty(t, outcome.ID)
	assert.Equal(t, "Hello world", outcome.Content)
	assert.Equal(t, config.ProviderMock, outcome.Provider)
	assert.Equal(t, "test-model", outcome.Model)
	assert.Equal(t, 12, outcome.Usage.TotalTokens)
	assert.Equal(t, models.Metadata{
		Language:       "English",
		Topic:          "AI in healthcare",
		BrandVoice:     "Professional",
		WordCount:      2,
		CharacterCount: 11,
		GenerationTime: 1.23,
		GeneratedAt:    start.Add(1234 * time.Millisecond),
	}, outcome.Metadata)
	assert.Equal(t, generator.BuildPrompt(request(), 500), got)
}

func TestGenerateWithMetadataFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fn      func(context.Context, generator.Prompt) (*generator.Completion, error)
		wantErr string
	}{
		{
			name: "client error",
			fn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
				return nil, errors.New("quota exceeded")
			},
			wantErr: "quota exceeded",
		},
		{
			name: "blank completion",
			fn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
				return &generator.Completion{Text: " \n "}, nil
			},
			wantErr: apperror.ErrEmptyCompletion.Message,
		},
		{
			name: "nil completion",
			fn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
				return nil, nil
			},
			wantErr: apperror.ErrEmptyCompletion.Message,
		},
		{
			name: "client panics",
			fn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
				panic("boom")
			},
			wantErr: "llm client panic: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := generator.New(&generator.MockClient{CompleteFn: tt.fn})
			outcome := g.GenerateWithMetadata(context.Background(), request())
			assert.False(t, outcome.Success)
			assert.Empty(t, outcome.Content)
			assert.Equal(t, tt.wantErr, outcome.Error)
			assert.Zero(t, outcome.Metadata.WordCount)
		})
	}
}

func TestGenerateWithMetadataPassesContext(t *testing.T) {
	t.Parallel()
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	g := generator.New(&generator.MockClient{
		CompleteFn: func(ctx context.Context, _ generator.Prompt) (*generator.Completion, error) {
			assert.Equal(t, "v", ctx.Value(key{}))
			return &generator.Completion{Text: "ok"}, nil
		},
	})
	assert.True(t, g.GenerateWithMetadata(ctx, request()).Success)
}

func TestTestConnection(t *testing.T) {
	t.Parallel()

	reply := func(text string, err error) *generator.Generator {
		return generator.New(&generator.MockClient{
			CompleteFn: func(_ context.Context, p generator.Prompt) (*generator.Completion, error) {
				if err != nil {
					return nil, err
				}
				return &generator.Completion{Text: text}, nil
			},
		})
	}

	ok, err := reply("Hello", nil).TestConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reply("", nil).TestConnection(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = reply("", errors.New("unauthorized")).TestConnection(context.Background())
	assert.EqualError(t, err, "unauthorized")
}

func TestAvailabilityStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	unavailable := generator.Availability{Err: apperror.ErrMissingCredential}
	assert.False(t, unavailable.Available())
	assert.Equal(t, report.StatusNotConfigured, unavailable.Status(ctx))
	assert.NoError(t, unavailable.Close())

	withReply := func(text string, err error) generator.Availability {
		return generator.Availability{Generator: generator.New(&generator.MockClient{
			CompleteFn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
				return &generator.Completion{Text: text}, err
			},
		})}
	}
	assert.Equal(t, report.StatusConnected, withReply("Hello", nil).Status(ctx))
	assert.Equal(t, report.StatusFailed, withReply("", nil).Status(ctx))
	assert.Equal(t, "❌ **Connection Test Error:** timeout", withReply("", errors.New("timeout")).Status(ctx))
}

func TestInit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing credential", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderGemini}}
		avail := generator.Init(ctx, cfg)
		assert.False(t, avail.Available())
		assert.Nil(t, avail.Generator)
		assert.ErrorIs(t, avail.Err, apperror.ErrMissingCredential)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{LLM: config.LLMConfig{Provider: "watson", APIKey: "k"}}
		avail := generator.Init(ctx, cfg)
		assert.False(t, avail.Available())
		assert.Equal(t, apperror.CodeConfiguration, apperror.As(avail.Err).Code)
	})

	t.Run("mock provider needs no credential", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderMock}}
		avail := generator.Init(ctx, cfg)
		require.True(t, avail.Available())
		assert.Equal(t, config.ProviderMock, avail.Generator.Provider())
		assert.Equal(t, "offline", avail.Generator.Model())
	})

	t.Run("openai client is built without network", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			APIKey:   "sk-test",
			Model:    "gpt-4o-mini",
			BaseURL:  "http://127.0.0.1:1/v1",
		}}
		avail := generator.Init(ctx, cfg)
		require.True(t, avail.Available())
		assert.Equal(t, config.ProviderOpenAI, avail.Generator.Provider())
		assert.NoError(t, avail.Close())
	})
}

func TestOfflineClient(t *testing.T) {
	t.Parallel()
	c := generator.OfflineClient{}
	completion, err := c.Complete(context.Background(), generator.BuildPrompt(request(), 0))
	require.NoError(t, err)
	assert.Contains(t, completion.Text, "- **Topic:** AI in healthcare\n")
	assert.Contains(t, completion.Text, "- **Brand voice:** Professional\n")
	assert.Positive(t, completion.Usage.TotalTokens)
}
