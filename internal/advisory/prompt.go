package advisory

import "github.com/intelligrit/incident-atlas/internal/model"

const systemPrompt = `You are a global security analyst. You produce concise, factual travel safety advisories for civilians based on historical incident data. Never speculate beyond the provided context.`

func buildAdvisoryPrompt(req model.AdvisoryRequest) string {
	return `Based on the following recent incident data in ` + req.Country + ` (circa ` + req.Year + `), provide a concise 3-bullet point travel safety advisory for civilians.

Incident Context: "` + req.SummaryText + `"

Format:
- Threat Level: [Low/Medium/High]
- Key Risk: [One sentence]
- Advice: [One sentence]`
}

// fallbackAdvisory is the deterministic template used when no remote service
// is configured or the remote call fails. It must never be empty and always
// embeds the requested country and year.
func fallbackAdvisory(req model.AdvisoryRequest) string {
	risk := req.AttackType
	if risk == "" {
		risk = "violent"
	}
	return `Simulated Security Advisory for ` + req.Country + ` (circa ` + req.Year + `)

- Threat Level: High (Simulated)
- Key Risk: Potential for ` + risk + ` incidents in public areas.
- Advice: Avoid large gatherings and monitor local news outlets.`
}
