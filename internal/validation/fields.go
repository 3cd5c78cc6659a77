package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	MsgTopicRequired          = "Topic is required and cannot be empty"
	MsgPrimaryGoalRequired    = "Primary goal is required and cannot be empty"
	MsgTargetAudienceRequired = "Target audience is required and cannot be empty"
)

// Limits are the length bounds, in characters, of the required fields.
type Limits struct {
	TopicMin          int
	TopicMax          int
	PrimaryGoalMax    int
	TargetAudienceMax int
}

// DefaultLimits returns the standard bounds: topic 3..200, primary goal up to
// 300, target audience up to 200.
func DefaultLimits() Limits {
	return Limits{
		TopicMin:          3,
		TopicMax:          200,
		PrimaryGoalMax:    300,
		TargetAudienceMax: 200,
	}
}

// ValidateContentInput checks the required fields and returns every violation
// in rule order. An empty slice means the fields are valid.
func ValidateContentInput(topic, primaryGoal, targetAudience string, limits Limits) []string {
	errs := make([]string, 0)

	if strings.TrimSpace(topic) == "" {
		errs = append(errs, MsgTopicRequired)
	}
	if strings.TrimSpace(primaryGoal) == "" {
		errs = append(errs, MsgPrimaryGoalRequired)
	}
	if strings.TrimSpace(targetAudience) == "" {
		errs = append(errs, MsgTargetAudienceRequired)
	}

	if topic != "" && length(strings.TrimSpace(topic)) < limits.TopicMin {
		errs = append(errs, fmt.Sprintf("Topic should be at least %d characters long", limits.TopicMin))
	}
	if topic != "" && length(topic) > limits.TopicMax {
		errs = append(errs, fmt.Sprintf("Topic should be under %d characters", limits.TopicMax))
	}
	if primaryGoal != "" && length(primaryGoal) > limits.PrimaryGoalMax {
		errs = append(errs, fmt.Sprintf("Primary goal should be under %d characters", limits.PrimaryGoalMax))
	}
	if targetAudience != "" && length(targetAudience) > limits.TargetAudienceMax {
		errs = append(errs, fmt.Sprintf("Target audience should be under %d characters", limits.TargetAudienceMax))
	}

	return errs
}

// ValidateLanguage reports whether language is in supported.
func ValidateLanguage(language string, supported []string) bool {
	return slices.Contains(supported, language)
}

// ValidateBrandVoice reports whether voice is in supported.
func ValidateBrandVoice(voice string, supported []string) bool {
	return slices.Contains(supported, voice)
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
