package models

import (
	"fmt"
	"time"
)

// Field names used in raw form mappings.
const (
	FieldLanguage       = "language"
	FieldTopic          = "topic"
	FieldPrimaryGoal    = "primary_goal"
	FieldTargetAudience = "target_audience"
	FieldBrandVoice     = "brand_voice"
	FieldKeyMessage     = "key_message"
	FieldAdditionalInfo = "additional_info"
)

// ContentRequest is the set of parameters sent to the generator.
// KeyMessage and AdditionalInfo are optional and may be empty.
type ContentRequest struct {
	Language       string `json:"language" form:"language"`
	Topic          string `json:"topic" form:"topic"`
	PrimaryGoal    string `json:"primary_goal" form:"primary_goal"`
	TargetAudience string `json:"target_audience" form:"target_audience"`
	BrandVoice     string `json:"brand_voice" form:"brand_voice"`
	KeyMessage     string `json:"key_message" form:"key_message"`
	AdditionalInfo string `json:"additional_info" form:"additional_info"`
}

// Fields returns the request as a raw field mapping.
func (r ContentRequest) Fields() map[string]any {
	return map[string]any{
		FieldLanguage:       r.Language,
		FieldTopic:          r.Topic,
		FieldPrimaryGoal:    r.PrimaryGoal,
		FieldTargetAudience: r.TargetAudience,
		FieldBrandVoice:     r.BrandVoice,
		FieldKeyMessage:     r.KeyMessage,
		FieldAdditionalInfo: r.AdditionalInfo,
	}
}

// RequestFromFields builds a ContentRequest from a field mapping. Absent keys
// become empty strings; non-string values are formatted with %v.
func RequestFromFields(fields map[string]any) ContentRequest {
	return ContentRequest{
		Language:       StringField(fields, FieldLanguage),
		Topic:          StringField(fields, FieldTopic),
		PrimaryGoal:    StringField(fields, FieldPrimaryGoal),
		TargetAudience: StringField(fields, FieldTargetAudience),
		BrandVoice:     StringField(fields, FieldBrandVoice),
		KeyMessage:     StringField(fields, FieldKeyMessage),
		AdditionalInfo: StringField(fields, FieldAdditionalInfo),
	}
}

// StringField looks up key in fields, treating absent and nil values as "".
func StringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ValidationResult is produced once per validation call and not modified after.
type ValidationResult struct {
	IsValid       bool           `json:"is_valid"`
	Errors        []string       `json:"errors"`
	SanitizedData map[string]any `json:"sanitized_data"`
}

// Request returns the sanitized data as a ContentRequest.
func (v ValidationResult) Request() ContentRequest {
	return RequestFromFields(v.SanitizedData)
}

// TokenUsage reports token consumption for one generation call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Metadata describes a successful generation.
type Metadata struct {
	Language       string    `json:"language"`
	Topic          string    `json:"topic"`
	BrandVoice     string    `json:"brand_voice"`
	WordCount      int       `json:"word_count"`
	CharacterCount int       `json:"character_count"`
	GenerationTime float64   `json:"generation_time"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// GenerationOutcome is the result of one generation call. Content is set iff
// Success; Error is set iff not.
type GenerationOutcome struct {
	ID       string     `json:"id"`
	Success  bool       `json:"success"`
	Content  string     `json:"content,omitempty"`
	Error    string     `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
	Provider string     `json:"provider,omitempty"`
	Model    string     `json:"model,omitempty"`
	Usage    TokenUsage `json:"usage"`
}
