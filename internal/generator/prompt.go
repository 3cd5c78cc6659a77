package generator

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-generator/internal/models"
)

// BuildPrompt turns a sanitized request into the model prompt. Optional
// fields are only listed when present. maxContentLength <= 0 omits the ceiling.
func BuildPrompt(req models.ContentRequest, maxContentLength int) Prompt {
	system := fmt.Sprintf(`You are an expert marketing copywriter. You write original, engaging marketing content in %s.
Match the requested brand voice exactly and keep every claim grounded in the brief.
Answer with the content only, formatted as Markdown, without any preamble or explanation.`, req.Language)

	var b strings.Builder
	b.WriteString("Write marketing content from the following brief.\n\n")
	fmt.Fprintf(&b, "Language: %s\n", req.Language)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Primary goal: %s\n", req.PrimaryGoal)
	fmt.Fprintf(&b, "Target audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "Brand voice: %s\n", req.BrandVoice)
	if req.KeyMessage != "" {
		fmt.Fprintf(&b, "Key message: %s\n", req.KeyMessage)
	}
	if req.AdditionalInfo != "" {
		fmt.Fprintf(&b, "Additional information: %s\n", req.AdditionalInfo)
	}
	if maxContentLength > 0 {
		fmt.Fprintf(&b, "\nKeep the content under %d characters.\n", maxContentLength)
	}

	return Prompt{System: system, User: b.String()}
}
