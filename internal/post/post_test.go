// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package post

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/content-engine/pkg/types"
)

// scriptedBackend returns a fixed reply or a forced error, recording prompts.
type scriptedBackend struct {
	reply   string
	err     error
	prompts []string
}

func (s *scriptedBackend) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func sampleInsight() types.ContentInsight {
	return types.ContentInsight{
		Title:             "Shipping beats planning",
		Description:       "Small releases compound.",
		AudienceRelevance: "Founders value speed.",
		ValueAlignment:    "Matches the ship-faster promise.",
	}
}

func sampleRequest() types.PostRequest {
	return types.PostRequest{
		Tone:             "direct",
		TargetAudience:   "founders",
		ValueProposition: "ship faster",
		BrandPersona:     "pragmatic builder",
	}
}

func samplePosts(n int) []types.GeneratedPost {
	posts := make([]types.GeneratedPost, n)
	for i := range posts {
		posts[i] = types.GeneratedPost{
			Title:        fmt.Sprintf("Post %d", i+1),
			Hook:         "Stop planning.",
			Body:         "Ship something small today.",
			CallToAction: "What did you ship this week?",
			Hashtags:     []string{"#shipit"},
		}
	}
	return posts
}

func TestDraft_Success(t *testing.T) {
	b := &scriptedBackend{reply: `{
		"title": "Ship It",
		"hook": "Most plans die in drafts.",
		"body": "Release small, learn fast.",
		"call_to_action": "Share your last launch.",
		"hashtags": ["#startups", "#shipping"]
	}`}

	got, err := Draft(context.Background(), b, sampleInsight(), sampleRequest())
	if err != nil {
		t.Fatalf("Draft returned error: %v", err)
	}
	if got.Title != "Ship It" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Hashtags) != 2 {
		t.Errorf("Hashtags = %v", got.Hashtags)
	}
}

func TestDraft_HashtagsOptional(t *testing.T) {
	b := &scriptedBackend{reply: `{
		"title": "T", "hook": "H", "body": "B", "call_to_action": "C"
	}`}

	got, err := Draft(context.Background(), b, sampleInsight(), sampleRequest())
	if err != nil {
		t.Fatalf("Draft returned error: %v", err)
	}
	if got.Hashtags != nil {
		t.Errorf("Hashtags = %v, want nil", got.Hashtags)
	}
}

func TestDraft_FailurePropagates(t *testing.T) {
	forced := errors.New("provider down")
	b := &scriptedBackend{err: forced}

	_, err := Draft(context.Background(), b, sampleInsight(), sampleRequest())
	if !errors.Is(err, forced) {
		t.Errorf("err = %v, want wrapped %v", err, forced)
	}
}

func TestDraft_MalformedReplyIsError(t *testing.T) {
	b := &scriptedBackend{reply: `{"title": "only a title"}`}

	if _, err := Draft(context.Background(), b, sampleInsight(), sampleRequest()); err == nil {
		t.Error("expected error for schema-violating reply")
	}
}

func TestDraft_PromptEmbedsInsightAndBrand(t *testing.T) {
	b := &scriptedBackend{reply: `{"title": "T", "hook": "H", "body": "B", "call_to_action": "C"}`}

	_, err := Draft(context.Background(), b, sampleInsight(), sampleRequest())
	if err != nil {
		t.Fatalf("Draft returned error: %v", err)
	}

	prompt := b.prompts[0]
	for _, want := range []string{
		"Shipping beats planning", "Small releases compound.",
		"direct", "founders", "ship faster", "pragmatic builder",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSelectBest_EmptyListIsNoOp(t *testing.T) {
	b := &scriptedBackend{reply: `{"id": 1, "reason": "r"}`}

	got := SelectBest(context.Background(), b, nil, io.Discard)
	if got != nil {
		t.Errorf("SelectBest = %+v, want nil", got)
	}
	if len(b.prompts) != 0 {
		t.Error("no model call expected for an empty post list")
	}
}

func TestSelectBest_PicksModelChoice(t *testing.T) {
	b := &scriptedBackend{reply: `{"id": 2, "reason": "strongest hook"}`}

	got := SelectBest(context.Background(), b, samplePosts(3), io.Discard)
	if got == nil {
		t.Fatal("SelectBest returned nil")
	}
	if got.ID != 2 || got.Reason != "strongest hook" {
		t.Errorf("SelectBest = %+v", got)
	}
}

func TestSelectBest_FailureFallsBackToFirst(t *testing.T) {
	b := &scriptedBackend{err: errors.New("timeout")}
	var warnings strings.Builder

	got := SelectBest(context.Background(), b, samplePosts(3), &warnings)
	if got == nil {
		t.Fatal("SelectBest returned nil")
	}
	if got.ID != 1 || got.Reason != FallbackReason {
		t.Errorf("SelectBest = %+v, want fallback", got)
	}
	if !strings.Contains(warnings.String(), "warning") {
		t.Errorf("expected warning, got %q", warnings.String())
	}
}

func TestSelectBest_OutOfRangeIDFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"too large", `{"id": 7, "reason": "r"}`},
		{"zero", `{"id": 0, "reason": "r"}`},
		{"negative", `{"id": -1, "reason": "r"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &scriptedBackend{reply: tt.reply}
			got := SelectBest(context.Background(), b, samplePosts(3), io.Discard)
			if got == nil || got.ID != 1 || got.Reason != FallbackReason {
				t.Errorf("SelectBest = %+v, want fallback", got)
			}
		})
	}
}

func TestSelectBest_PromptNumbersPostsFromOne(t *testing.T) {
	b := &scriptedBackend{reply: `{"id": 1, "reason": "r"}`}

	SelectBest(context.Background(), b, samplePosts(3), io.Discard)

	prompt := b.prompts[0]
	for i := 1; i <= 3; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("Post %d:", i)) {
			t.Errorf("prompt missing numbered entry for post %d", i)
		}
	}
	for _, criterion := range []string{"Engagement potential", "Audience alignment", "Clarity", "Uniqueness"} {
		if !strings.Contains(prompt, criterion) {
			t.Errorf("prompt missing criterion %q", criterion)
		}
	}
}
