package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SupportedLanguages is the default language choice list.
var SupportedLanguages = []string{
	"English", "Ukrainian", "Russian", "Polish", "German",
	"French", "Spanish", "Italian", "Portuguese", "Chinese",
	"Japanese", "Korean", "Arabic", "Hindi", "Dutch", "Swedish",
}

// BrandVoices is the default brand voice choice list.
var BrandVoices = []string{
	"Professional", "Friendly", "Authoritative", "Creative",
	"Formal", "Conversational", "Motivational", "Expert",
	"Casual", "Academic", "Persuasive", "Informative",
	"Inspiring", "Technical", "Storytelling", "Humorous",
}

// Load reads .env (if present), then the YAML file at path (if non-empty and
// present), then the environment, falling back to defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if os.Getenv("LLM_API_KEY") == "" {
		if key := providerKey(cfg.LLM.Provider); key != "" {
			cfg.LLM.APIKey = key
		}
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel(cfg.LLM.Provider)
	}
	return &cfg, nil
}

// providerKey returns the first non-empty credential variable belonging to
// provider, so a key for one vendor is never sent to another.
func providerKey(provider string) string {
	var names []string
	switch provider {
	case ProviderGemini:
		names = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}
	case ProviderOpenAI:
		names = []string{"OPENAI_API_KEY"}
	}
	for _, name := range names {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"app.name", "APP_NAME"},
		{"app.env", "APP_ENV"},
		{"app.debug", "DEBUG"},
		{"server.host", "SERVER_HOST"},
		{"server.port", "SERVER_PORT"},
		{"llm.provider", "LLM_PROVIDER"},
		{"llm.api_key", "LLM_API_KEY"},
		{"llm.base_url", "LLM_BASE_URL"},
		{"llm.model", "LLM_MODEL"},
		{"content.max_content_length", "MAX_CONTENT_LENGTH"},
		{"content.enforce_choices", "ENFORCE_CHOICES"},
		{"observability.logging.level", "LOG_LEVEL"},
		{"observability.logging.format", "LOG_FORMAT"},
		{"observability.metrics.enabled", "METRICS_ENABLED"},
		{"observability.tracing.enabled", "TRACING_ENABLED"},
		{"observability.tracing.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", b[0], err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "content-generator")
	v.SetDefault("app.version", "v2.0.0")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7860)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_p", 0.95)
	v.SetDefault("llm.max_output_tokens", 4096)

	v.SetDefault("content.languages", SupportedLanguages)
	v.SetDefault("content.brand_voices", BrandVoices)
	v.SetDefault("content.default_language", "English")
	v.SetDefault("content.default_brand_voice", "Professional")
	v.SetDefault("content.max_content_length", 10000)
	v.SetDefault("content.enforce_choices", true)

	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "text")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)

	v.SetDefault("security.cors.allowed_origins", []string{"*"})
}
