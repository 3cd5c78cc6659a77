package web

import "github.com/BerylCAtieno/content-generator/internal/models"

// Example is a quick-start request shown on the page.
type Example struct {
	Name    string                `json:"name"`
	Request models.ContentRequest `json:"request"`
}

var examples = []Example{
	{
		Name: "Healthy eating",
		Request: models.ContentRequest{
			Language:       "English",
			Topic:          "Benefits of healthy eating for busy professionals",
			PrimaryGoal:    "Motivate working professionals to adopt healthier eating habits",
			TargetAudience: "Busy professionals aged 25-45",
			BrandVoice:     "Motivational",
			KeyMessage:     "Small changes in diet lead to big improvements in energy and productivity",
			AdditionalInfo: "Include quick meal prep tips, time-saving strategies, and energy-boosting foods",
		},
	},
	{
		Name: "Digital marketing trends",
		Request: models.ContentRequest{
			Language:       "English",
			Topic:          "Digital marketing trends for small businesses in 2024",
			PrimaryGoal:    "Educate small business owners about latest marketing strategies",
			TargetAudience: "Small business owners and entrepreneurs",
			BrandVoice:     "Professional",
			KeyMessage:     "Stay competitive with cutting-edge digital marketing approaches",
			AdditionalInfo: "Focus on AI tools, social commerce, video marketing, and automation",
		},
	},
	{
		Name: "Remote work",
		Request: models.ContentRequest{
			Language:       "English",
			Topic:          "Remote work productivity and work-life balance",
			PrimaryGoal:    "Help remote workers maintain productivity while achieving better work-life balance",
			TargetAudience: "Remote workers, freelancers, and digital nomads",
			BrandVoice:     "Expert",
			KeyMessage:     "Productivity isn't about working harder, it's about working smarter",
			AdditionalInfo: "Include time management techniques, home office setup, communication tools",
		},
	},
}

// Examples returns a copy of the quick-start examples.
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}
