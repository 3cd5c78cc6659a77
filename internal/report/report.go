// Package report turns validation results and generation outcomes into the
// markdown text shown to the user.
package report

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/content-generator/internal/models"
)

// TimeLayout is how generated_at is printed in the statistics block.
const TimeLayout = "2006-01-02 15:04:05"

const (
	SuccessBanner    = "✅ **Content Generated Successfully!**"
	StatisticsHeader = "📊 **Generation Statistics:**"
	ValidationHeader = "**Validation Errors:**"

	ConfigurationError = "❌ **Configuration Error:** Please check your API key configuration in .env file."
	ReadyMessage       = "Ready to generate new content..."
)

// Connection test messages.
const (
	StatusNotConfigured = "❌ **API Not Configured:** Please check your .env file"
	StatusConnected     = "✅ **API Connection Successful!** Ready to generate content."
	StatusFailed        = "❌ **API Connection Failed:** Please check your API key."
)

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharacterCount counts characters, not bytes.
func CharacterCount(s string) int {
	return utf8.RuneCountInString(s)
}

// Seconds rounds a duration in seconds to two decimals.
func Seconds(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatSuccess renders the success banner, the content and the statistics
// block. Word and character counts are computed from the content itself.
func FormatSuccess(outcome models.GenerationOutcome) string {
	md := outcome.Metadata

	var b strings.Builder
	b.WriteString(SuccessBanner)
	b.WriteString("\n\n---\n\n")
	b.WriteString(outcome.Content)
	b.WriteString("\n\n---\n\n")
	b.WriteString(StatisticsHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Language:** %s\n", md.Language)
	fmt.Fprintf(&b, "- **Topic:** %s\n", md.Topic)
	fmt.Fprintf(&b, "- **Brand Voice:** %s\n", md.BrandVoice)
	fmt.Fprintf(&b, "- **Word Count:** %d words\n", WordCount(outcome.Content))
	fmt.Fprintf(&b, "- **Character Count:** %d characters\n", CharacterCount(outcome.Content))
	fmt.Fprintf(&b, "- **Generation Time:** %s seconds\n", formatSeconds(md.GenerationTime))
	fmt.Fprintf(&b, "- **Generated:** %s\n", md.GeneratedAt.Format(TimeLayout))
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "*Powered by %s*\n", ProviderLabel(outcome.Provider))
	return b.String()
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.2f", Seconds(v))
}

// FormatGenerationError reports a failed generation. It never carries statistics.
func FormatGenerationError(message string) string {
	return "❌ **Generation Error:** " + message
}

// FormatValidationErrors lists every validation message in order.
func FormatValidationErrors(errs []string) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, "❌ "+e)
	}
	return ValidationHeader + "\n" + strings.Join(lines, "\n")
}

// FormatUnexpected reports an error caught at the pipeline boundary.
func FormatUnexpected(message string) string {
	return "❌ **Unexpected Error:** " + message + "\n\nPlease try again or contact support if the issue persists."
}

// FormatConnectionError reports a connection test that failed with an error.
func FormatConnectionError(err error) string {
	return "❌ **Connection Test Error:** " + err.Error()
}

// Format renders an outcome as either the success report or the error report.
func Format(outcome models.GenerationOutcome) string {
	if !outcome.Success {
		return FormatGenerationError(outcome.Error)
	}
	return FormatSuccess(outcome)
}

// CountReport summarises a rendered report. Only successful reports are analysed.
func CountReport(text string) string {
	if !strings.Contains(text, "Generated Successfully") {
		return "📊 No content to analyze"
	}
	return fmt.Sprintf("📊 **Statistics:** %d words, %d characters", WordCount(text), CharacterCount(text))
}

// ProviderLabel is the display name used in the report footer.
func ProviderLabel(provider string) string {
	switch provider {
	case "gemini":
		return "Google Gemini AI"
	case "openai":
		return "OpenAI"
	case "mock":
		return "the offline generator"
	case "":
		return "AI"
	default:
		return provider
	}
}
