// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package post

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/pkg/types"
)

// FallbackReason is the fixed justification recorded when selection falls
// back to the first draft.
const FallbackReason = "default selection due to error"

// SelectBest asks the model to choose the best draft from posts and justify
// the choice. An empty post list is a no-op returning nil. An invocation
// failure, or a returned id outside [1, len(posts)], degrades to selecting
// post #1 with FallbackReason; selection never returns an error.
func SelectBest(ctx context.Context, b llm.Backend, posts []types.GeneratedPost, w io.Writer) *types.SelectedBest {
	if len(posts) == 0 {
		return nil
	}

	fallback := &types.SelectedBest{ID: 1, Reason: FallbackReason}

	prompt, err := renderSelectionPrompt(posts)
	if err != nil {
		fmt.Fprintf(w, "warning: selection prompt: %v\n", err)
		return fallback
	}

	sel, err := llm.Invoke[types.SelectedBest](ctx, b, prompt, selectionSchema)
	if err != nil {
		fmt.Fprintf(w, "warning: selecting best post: %v\n", err)
		return fallback
	}
	if sel.ID < 1 || sel.ID > len(posts) {
		fmt.Fprintf(w, "warning: selection id %d out of range [1, %d]\n", sel.ID, len(posts))
		return fallback
	}
	return &sel
}
