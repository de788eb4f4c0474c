// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package post

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/pkg/types"
)

// draftPromptTmpl turns one insight plus the brand configuration into a
// structured post request.
var draftPromptTmpl = template.Must(template.New("draft").Parse(`Generate a compelling LinkedIn post based on the following insight:

Insight Title: {{.Insight.Title}}
Insight Description: {{.Insight.Description}}
Audience Relevance: {{.Insight.AudienceRelevance}}
Value Alignment: {{.Insight.ValueAlignment}}

Post Generation Guidelines:
- Tone: {{.Tone}}
- Target Audience: {{.TargetAudience}}
- Value Proposition: {{.ValueProposition}}
- Brand Persona: {{.BrandPersona}}

Respond with a JSON object containing:
- "title": an attention-grabbing title
- "hook": a strong opening line that immediately engages the reader
- "body": substantive content that provides real value
- "call_to_action": a clear call to action
- "hashtags": an array of relevant hashtags to increase post visibility

Do not include any text outside the JSON object.
`))

// postSchema validates the structured draft reply. Hashtags are optional.
var postSchema = llm.MustSchema(`{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"hook": {"type": "string"},
		"body": {"type": "string"},
		"call_to_action": {"type": "string"},
		"hashtags": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["title", "hook", "body", "call_to_action"]
}`)

// draftPromptData feeds draftPromptTmpl.
type draftPromptData struct {
	Insight          types.ContentInsight
	Tone             string
	TargetAudience   string
	ValueProposition string
	BrandPersona     string
}

func renderDraftPrompt(data draftPromptData) (string, error) {
	var buf bytes.Buffer
	if err := draftPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// selectionPromptTmpl lists every draft, numbered from 1, and asks for the
// best one by four criteria.
var selectionPromptTmpl = template.Must(template.New("selection").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`You are an experienced LinkedIn content editor. Below are {{len .}} candidate posts, numbered from 1.
{{range $i, $p := .}}
Post {{inc $i}}:
Title: {{$p.Title}}
Hook: {{$p.Hook}}
Body: {{$p.Body}}
Call to Action: {{$p.CallToAction}}
Hashtags: {{range $p.Hashtags}}{{.}} {{end}}
{{end}}
Choose the single best post, judged by:
1. Engagement potential
2. Audience alignment
3. Clarity
4. Uniqueness

Respond with a JSON object containing:
- "id": the number of the best post
- "reason": 1-2 sentences justifying the choice

Do not include any text outside the JSON object.
`))

// selectionSchema validates the structured selection reply.
var selectionSchema = llm.MustSchema(`{
	"type": "object",
	"properties": {
		"id": {"type": "integer", "minimum": 1},
		"reason": {"type": "string"}
	},
	"required": ["id", "reason"]
}`)

func renderSelectionPrompt(posts []types.GeneratedPost) (string, error) {
	var buf bytes.Buffer
	if err := selectionPromptTmpl.Execute(&buf, posts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
