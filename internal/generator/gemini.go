package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string

	temperature     float32
	topP            float32
	maxOutputTokens int32
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		modelName:       cfg.Model,
		temperature:     cfg.Temperature,
		topP:            cfg.TopP,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

func (g *GeminiClient) Name() string  { return config.ProviderGemini }
func (g *GeminiClient) Model() string { return g.modelName }

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Complete builds a model handle per call so the system instruction of one
// request never leaks into another.
func (g *GeminiClient) Complete(ctx context.Context, prompt Prompt) (*Completion, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetTopP(g.topP)
	if g.maxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.maxOutputTokens)
	}
	if prompt.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(prompt.System))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	completion := &Completion{Text: b.String()}
	if u := resp.UsageMetadata; u != nil {
		completion.Usage = models.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return completion, nil
}
