// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/content-engine/internal/llm"
)

// insightPromptTmpl asks the model for a single content insight from a fresh
// angle. Distinctness from earlier insights is requested in the prompt text;
// the model receives no other memory of them.
var insightPromptTmpl = template.Must(template.New("insight").Parse(`You are a creative content strategist. Generate one unique content insight for creating a LinkedIn post, based on:

Content Source:
{{.Content}}

Target Audience: {{.TargetAudience}}
Value Proposition: {{.ValueProposition}}

Respond with a JSON object containing:
- "title": a creative title for the insight (max 10 words)
- "description": 1-2 sentences explaining the insight
- "audience_relevance": 1-2 sentences explaining how this insight specifically connects with the target audience
- "value_alignment": 1-2 sentences explaining how this insight aligns with the value proposition

Do not include any text outside the JSON object.

This is insight #{{.Index}} of {{.Total}}. Take a unique angle, different from the other insights, and do not repeat any previous insight.
`))

// insightSchema validates the structured insight reply.
var insightSchema = llm.MustSchema(`{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"audience_relevance": {"type": "string"},
		"value_alignment": {"type": "string"}
	},
	"required": ["title", "description", "audience_relevance", "value_alignment"]
}`)

// insightPromptData feeds insightPromptTmpl.
type insightPromptData struct {
	Content          string
	TargetAudience   string
	ValueProposition string
	Index            int
	Total            int
}

// renderInsightPrompt executes the insight prompt template.
func renderInsightPrompt(data insightPromptData) (string, error) {
	var buf bytes.Buffer
	if err := insightPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
