// Package config loads the application configuration from .env, an optional
// YAML file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
)

// LLM providers understood by the generator.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Config is the root configuration. It is read-only after Load returns.
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Content       ContentConfig       `yaml:"content" mapstructure:"content"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
	Debug   bool   `yaml:"debug" mapstructure:"debug"`
}

type ServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LLMConfig selects and tunes the generation collaborator.
type LLMConfig struct {
	Provider        string  `yaml:"provider" mapstructure:"provider"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	Model           string  `yaml:"model" mapstructure:"model"`
	Temperature     float32 `yaml:"temperature" mapstructure:"temperature"`
	TopP            float32 `yaml:"top_p" mapstructure:"top_p"`
	MaxOutputTokens int32   `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
}

// ContentConfig holds the enumerated choices and limits for content requests.
type ContentConfig struct {
	Languages         []string `yaml:"languages" mapstructure:"languages"`
	BrandVoices       []string `yaml:"brand_voices" mapstructure:"brand_voices"`
	DefaultLanguage   string   `yaml:"default_language" mapstructure:"default_language"`
	DefaultBrandVoice string   `yaml:"default_brand_voice" mapstructure:"default_brand_voice"`
	MaxContentLength  int      `yaml:"max_content_length" mapstructure:"max_content_length"`
	EnforceChoices    bool     `yaml:"enforce_choices" mapstructure:"enforce_choices"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

type SecurityConfig struct {
	CORS CORSConfig `yaml:"cors" mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

// Validate reports configuration problems that prevent generation. A missing
// credential is returned as apperror.ErrMissingCredential.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderOpenAI:
	default:
		return apperror.New(apperror.CodeConfiguration, "unsupported llm provider").
			WithDetail(c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("%s provider: %w", c.LLM.Provider, apperror.ErrMissingCredential)
	}
	return nil
}

// defaultModel picks a model when none is configured.
func defaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderMock:
		return "mock"
	default:
		return "gemini-1.5-flash"
	}
}
