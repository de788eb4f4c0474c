// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/content-engine/pkg/types"
)

// sequenceBackend replies with one scripted response per call; a "FAIL"
// entry forces an error for that call.
type sequenceBackend struct {
	replies []string
	calls   int
	prompts []string
}

func (s *sequenceBackend) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.calls >= len(s.replies) {
		return "", fmt.Errorf("unexpected call %d", s.calls+1)
	}
	reply := s.replies[s.calls]
	s.calls++
	if reply == "FAIL" {
		return "", fmt.Errorf("forced failure")
	}
	return reply, nil
}

func insightJSON(title string) string {
	return fmt.Sprintf(`{"title": %q, "description": "d", "audience_relevance": "a", "value_alignment": "v"}`, title)
}

func testRequest() types.PostRequest {
	return types.PostRequest{
		Tone:             "inspiring",
		TargetAudience:   "founders",
		ValueProposition: "ship faster",
		BrandPersona:     "pragmatic builder",
	}
}

func TestGenerate_ThreeInsights(t *testing.T) {
	b := &sequenceBackend{replies: []string{
		insightJSON("First"), insightJSON("Second"), insightJSON("Third"),
	}}

	got := Generate(context.Background(), b, "some source text", testRequest(), io.Discard)

	if len(got) != Count {
		t.Fatalf("got %d insights, want %d", len(got), Count)
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if got[i].Title != want {
			t.Errorf("insight[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
	if b.calls != Count {
		t.Errorf("backend called %d times, want %d", b.calls, Count)
	}
}

func TestGenerate_FailedCallUsesFallback(t *testing.T) {
	b := &sequenceBackend{replies: []string{
		insightJSON("First"), "FAIL", insightJSON("Third"),
	}}
	var warnings strings.Builder

	got := Generate(context.Background(), b, "source", testRequest(), &warnings)

	if len(got) != Count {
		t.Fatalf("got %d insights, want %d", len(got), Count)
	}
	if got[1] != Fallback(2) {
		t.Errorf("insight[1] = %+v, want fallback", got[1])
	}
	if got[0].Title != "First" || got[2].Title != "Third" {
		t.Error("surviving insights were disturbed by the failure")
	}
	if !strings.Contains(warnings.String(), "insight 2") {
		t.Errorf("expected warning for insight 2, got %q", warnings.String())
	}
}

func TestGenerate_AllCallsFailStillThreeInsights(t *testing.T) {
	b := &sequenceBackend{replies: []string{"FAIL", "FAIL", "FAIL"}}

	got := Generate(context.Background(), b, "", testRequest(), io.Discard)

	if len(got) != Count {
		t.Fatalf("got %d insights, want %d", len(got), Count)
	}
	for i, ins := range got {
		if ins != Fallback(i+1) {
			t.Errorf("insight[%d] = %+v, want fallback %d", i, ins, i+1)
		}
	}
}

func TestGenerate_MalformedReplyUsesFallback(t *testing.T) {
	b := &sequenceBackend{replies: []string{
		`{"title": 99}`, insightJSON("B"), insightJSON("C"),
	}}

	got := Generate(context.Background(), b, "source", testRequest(), io.Discard)

	if got[0] != Fallback(1) {
		t.Errorf("insight[0] = %+v, want fallback", got[0])
	}
}

func TestGenerate_PromptsCarryPositionAndInputs(t *testing.T) {
	b := &sequenceBackend{replies: []string{
		insightJSON("A"), insightJSON("B"), insightJSON("C"),
	}}

	Generate(context.Background(), b, "the source blob", testRequest(), io.Discard)

	if len(b.prompts) != Count {
		t.Fatalf("got %d prompts, want %d", len(b.prompts), Count)
	}
	for i, p := range b.prompts {
		if !strings.Contains(p, fmt.Sprintf("insight #%d of %d", i+1, Count)) {
			t.Errorf("prompt %d missing position marker", i+1)
		}
		if !strings.Contains(p, "the source blob") {
			t.Errorf("prompt %d missing content blob", i+1)
		}
		if !strings.Contains(p, "founders") || !strings.Contains(p, "ship faster") {
			t.Errorf("prompt %d missing audience or value proposition", i+1)
		}
	}
}

func TestGenerate_EmptyBlobStillGenerates(t *testing.T) {
	b := &sequenceBackend{replies: []string{
		insightJSON("A"), insightJSON("B"), insightJSON("C"),
	}}

	got := Generate(context.Background(), b, "", testRequest(), io.Discard)
	if len(got) != Count {
		t.Fatalf("got %d insights, want %d", len(got), Count)
	}
}

func TestFallback(t *testing.T) {
	f := Fallback(2)
	if f.Title != "Insight 2" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.AudienceRelevance != "N/A" || f.ValueAlignment != "N/A" {
		t.Errorf("placeholder fields = %q, %q", f.AudienceRelevance, f.ValueAlignment)
	}
}
