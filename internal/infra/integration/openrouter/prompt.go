package openrouter

import (
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// buildPrompt monta o prompt fixo de classificação. Os critérios de score
// são orientação para o modelo, não regra aplicada localmente.
func buildPrompt(lead *entity.Lead) string {
	budget := lead.Budget
	if budget == "" {
		budget = "Not specified"
	}
	timeline := lead.Timeline
	if timeline == "" {
		timeline = "Not specified"
	}

	return fmt.Sprintf(`Analyze this business lead and provide ONLY a JSON response with no additional text.

Lead Details:
- Name: %s
- Email: %s
- Phone: %s
- Business Type: %s
- Budget: %s
- Timeline: %s
- Requirement: %s

Return ONLY valid JSON in this exact format:
{
  "summary": "One sentence describing the lead's core need, budget, and timeline.",
  "leadQualityScore": "Hot" | "Warm" | "Cold",
  "suggestedNextAction": "Call" | "Email" | "Follow-up" | "Schedule Demo"
}

Scoring criteria:
- Hot: High budget (5L+), urgent timeline (Immediate/1-3 Months), clear requirements.
- Warm: Medium budget (50k-5L), medium timeline (3-6 Months), exploring but serious.
- Cold: Low budget (<50k), distant timeline (Exploratory), vague requirements.`,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.BusinessType,
		budget,
		timeline,
		lead.Requirement,
	)
}
