// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package insight generates distinct content angles from the merged source
// blob. The stage always yields exactly Count insights: a failed model call
// is replaced by a fixed fallback so one bad call never aborts the run.
package insight

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Count is the fixed number of insights produced per run.
const Count = 3

// Generate issues Count sequential model calls and returns one insight per
// call. Uniqueness across insights is enforced by prompting only; the calls
// carry no memory of earlier responses. Failed calls are reported on w and
// replaced with Fallback values.
func Generate(ctx context.Context, b llm.Backend, blob string, req types.PostRequest, w io.Writer) []types.ContentInsight {
	insights := make([]types.ContentInsight, 0, Count)

	for i := 1; i <= Count; i++ {
		prompt, err := renderInsightPrompt(insightPromptData{
			Content:          blob,
			TargetAudience:   req.TargetAudience,
			ValueProposition: req.ValueProposition,
			Index:            i,
			Total:            Count,
		})
		if err != nil {
			fmt.Fprintf(w, "warning: insight %d prompt: %v\n", i, err)
			insights = append(insights, Fallback(i))
			continue
		}

		ins, err := llm.Invoke[types.ContentInsight](ctx, b, prompt, insightSchema)
		if err != nil {
			fmt.Fprintf(w, "warning: insight %d: %v\n", i, err)
			ins = Fallback(i)
		}
		insights = append(insights, ins)
	}

	return insights
}

// Fallback is the fixed insight substituted when the model call for position
// i (1-based) fails.
func Fallback(i int) types.ContentInsight {
	return types.ContentInsight{
		Title:             fmt.Sprintf("Insight %d", i),
		Description:       "Unable to generate insight. Please try again.",
		AudienceRelevance: "N/A",
		ValueAlignment:    "N/A",
	}
}
