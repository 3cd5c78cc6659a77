package validation

import (
	"fmt"

	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/models"
)

// Rules is the static configuration of the aggregate validator.
type Rules struct {
	Limits      Limits
	Languages   []string
	BrandVoices []string

	// EnforceChoices rejects a language or brand voice outside the lists.
	EnforceChoices bool

	// MaxOptionalLength bounds key_message and additional_info. Zero disables it.
	MaxOptionalLength int
}

// DefaultRules uses the default limits and choice lists with enforcement on.
func DefaultRules() Rules {
	return Rules{
		Limits:            DefaultLimits(),
		Languages:         config.SupportedLanguages,
		BrandVoices:       config.BrandVoices,
		EnforceChoices:    true,
		MaxOptionalLength: 10000,
	}
}

// RulesFromConfig builds Rules from the content configuration.
func RulesFromConfig(cfg config.ContentConfig) Rules {
	return Rules{
		Limits:            DefaultLimits(),
		Languages:         cfg.Languages,
		BrandVoices:       cfg.BrandVoices,
		EnforceChoices:    cfg.EnforceChoices,
		MaxOptionalLength: cfg.MaxContentLength,
	}
}

// ValidateAll sanitizes every string value of data, passes other values
// through, and validates the sanitized fields. SanitizedData is filled even
// when the result is invalid. Absent keys are treated as empty strings.
func ValidateAll(data map[string]any, rules Rules) models.ValidationResult {
	sanitized := make(map[string]any, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			sanitized[key] = Sanitize(s)
		} else {
			sanitized[key] = value
		}
	}

	errs := ValidateContentInput(
		models.StringField(sanitized, models.FieldTopic),
		models.StringField(sanitized, models.FieldPrimaryGoal),
		models.StringField(sanitized, models.FieldTargetAudience),
		rules.Limits,
	)

	if rules.EnforceChoices {
		errs = append(errs, validateChoices(sanitized, rules)...)
	}
	if rules.MaxOptionalLength > 0 {
		errs = append(errs, validateOptional(sanitized, rules.MaxOptionalLength)...)
	}

	return models.ValidationResult{
		IsValid:       len(errs) == 0,
		Errors:        errs,
		SanitizedData: sanitized,
	}
}

// ValidateRequest is ValidateAll over the fields of req.
func ValidateRequest(req models.ContentRequest, rules Rules) models.ValidationResult {
	return ValidateAll(req.Fields(), rules)
}

func validateChoices(sanitized map[string]any, rules Rules) []string {
	var errs []string

	language := models.StringField(sanitized, models.FieldLanguage)
	switch {
	case language == "":
		errs = append(errs, "Please select a content language")
	case !ValidateLanguage(language, rules.Languages):
		errs = append(errs, fmt.Sprintf("Unsupported language: %s", language))
	}

	voice := models.StringField(sanitized, models.FieldBrandVoice)
	switch {
	case voice == "":
		errs = append(errs, "Please select a brand voice")
	case !ValidateBrandVoice(voice, rules.BrandVoices):
		errs = append(errs, fmt.Sprintf("Unsupported brand voice: %s", voice))
	}

	return errs
}

func validateOptional(sanitized map[string]any, limit int) []string {
	var errs []string
	if length(models.StringField(sanitized, models.FieldKeyMessage)) > limit {
		errs = append(errs, fmt.Sprintf("Key message should be under %d characters", limit))
	}
	if length(models.StringField(sanitized, models.FieldAdditionalInfo)) > limit {
		errs = append(errs, fmt.Sprintf("Additional information should be under %d characters", limit))
	}
	return errs
}
