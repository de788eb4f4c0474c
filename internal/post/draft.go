// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package post drafts LinkedIn posts from content insights and selects the
// best draft. Drafting is fail-fast: a failed model call propagates and
// aborts the invocation. Selection recovers: a failed call falls back to the
// first draft.
package post

import (
	"context"
	"fmt"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Draft produces one post from one insight. Unlike insight generation, an
// invocation failure here is returned to the caller.
func Draft(ctx context.Context, b llm.Backend, ins types.ContentInsight, req types.PostRequest) (types.GeneratedPost, error) {
	prompt, err := renderDraftPrompt(draftPromptData{
		Insight:          ins,
		Tone:             req.Tone,
		TargetAudience:   req.TargetAudience,
		ValueProposition: req.ValueProposition,
		BrandPersona:     req.BrandPersona,
	})
	if err != nil {
		return types.GeneratedPost{}, fmt.Errorf("rendering draft prompt: %w", err)
	}

	p, err := llm.Invoke[types.GeneratedPost](ctx, b, prompt, postSchema)
	if err != nil {
		return types.GeneratedPost{}, fmt.Errorf("drafting post for %q: %w", ins.Title, err)
	}
	return p, nil
}
