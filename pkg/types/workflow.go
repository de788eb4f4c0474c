// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContentInsight is one structured content angle produced by the insight
// stage. Insights are immutable once created; each feeds exactly one
// drafting branch.
type ContentInsight struct {
	// Title is a creative title for the insight (max 10 words).
	Title string `json:"title" yaml:"title"`

	// Description explains the insight in 1-2 sentences.
	Description string `json:"description" yaml:"description"`

	// AudienceRelevance explains how the insight connects with the
	// target audience.
	AudienceRelevance string `json:"audience_relevance" yaml:"audience_relevance"`

	// ValueAlignment explains how the insight aligns with the value
	// proposition.
	ValueAlignment string `json:"value_alignment" yaml:"value_alignment"`
}

// GeneratedPost is one drafted LinkedIn post, produced by a single drafting
// branch from a single insight.
type GeneratedPost struct {
	// Title is the attention-grabbing title for the post.
	Title string `json:"title" yaml:"title"`

	// Hook is the opening line that engages the reader.
	Hook string `json:"hook" yaml:"hook"`

	// Body is the substantive content of the post.
	Body string `json:"body" yaml:"body"`

	// CallToAction encourages reader engagement.
	CallToAction string `json:"call_to_action" yaml:"call_to_action"`

	// Hashtags lists optional hashtags to increase visibility.
	Hashtags []string `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
}

// SelectedBest identifies the best drafted post and the reason it was chosen.
type SelectedBest struct {
	// ID is the 1-based index into the drafted post list.
	ID int `json:"id" yaml:"id"`

	// Reason justifies the choice.
	Reason string `json:"reason" yaml:"reason"`
}

// PostRequest is the caller-supplied input for one pipeline invocation.
// WebsiteURL and GivenContent are optional, but callers normally supply at
// least one; the four brand fields are required.
type PostRequest struct {
	// WebsiteURL is an optional page to fetch content from. A missing
	// scheme defaults to http://.
	WebsiteURL string `json:"website_url,omitempty" yaml:"website_url,omitempty"`

	// GivenContent is optional literal source text.
	GivenContent string `json:"given_content,omitempty" yaml:"given_content,omitempty"`

	// Tone sets the writing tone for drafted posts.
	Tone string `json:"tone" yaml:"tone"`

	// TargetAudience describes who the posts are written for.
	TargetAudience string `json:"target_audience" yaml:"target_audience"`

	// ValueProposition states the value the posts should convey.
	ValueProposition string `json:"value_proposition" yaml:"value_proposition"`

	// BrandPersona describes the authorial voice.
	BrandPersona string `json:"brand_persona" yaml:"brand_persona"`
}

// WorkflowState is the accumulating record threaded through the pipeline.
// It is created once per invocation from a PostRequest; each stage only ever
// adds fields (WebsiteContent, then ContentInsights, then LinkedinPosts,
// then BestSelected). It is not persisted between invocations.
type WorkflowState struct {
	// WebsiteURL is the requested page, copied from the request.
	WebsiteURL string `json:"website_url,omitempty" yaml:"website_url,omitempty"`

	// GivenContent is the literal source text, copied from the request.
	GivenContent string `json:"given_content,omitempty" yaml:"given_content,omitempty"`

	// Tone, TargetAudience, ValueProposition, and BrandPersona carry the
	// brand configuration, copied from the request.
	Tone             string `json:"tone" yaml:"tone"`
	TargetAudience   string `json:"target_audience" yaml:"target_audience"`
	ValueProposition string `json:"value_proposition" yaml:"value_proposition"`
	BrandPersona     string `json:"brand_persona" yaml:"brand_persona"`

	// WebsiteContent is the merged source blob: fetched web text first,
	// then GivenContent, separated by a blank line. May be empty.
	WebsiteContent string `json:"website_content" yaml:"website_content"`

	// ContentInsights always holds exactly three entries after the insight
	// stage, real or fallback.
	ContentInsights []ContentInsight `json:"content_insights" yaml:"content_insights"`

	// LinkedinPosts holds one drafted post per insight, in insight order.
	LinkedinPosts []GeneratedPost `json:"linkedin_posts" yaml:"linkedin_posts"`

	// BestSelected is the selection result, or nil when no posts were drafted.
	BestSelected *SelectedBest `json:"best_selected,omitempty" yaml:"best_selected,omitempty"`
}

// NewWorkflowState initializes a state record from a request.
func NewWorkflowState(req PostRequest) *WorkflowState {
	return &WorkflowState{
		WebsiteURL:       req.WebsiteURL,
		GivenContent:     req.GivenContent,
		Tone:             req.Tone,
		TargetAudience:   req.TargetAudience,
		ValueProposition: req.ValueProposition,
		BrandPersona:     req.BrandPersona,
	}
}
