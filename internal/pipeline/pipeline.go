// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes the four generation stages into a directed
// acyclic task graph: acquire, then insights, then one drafting branch per
// insight, then select. The drafting branches fan out from the insight stage
// and fan back in at selection; the graph executor runs them concurrently and
// the run fails fast on the first branch error, cancelling in-flight siblings.
//
// Error policy per stage: acquisition absorbs fetch failures, insight
// generation degrades per call, drafting is fatal, selection falls back to
// the first draft. A run therefore either returns a complete WorkflowState
// or the first drafting error.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/bpradana/weave"

	"github.com/pdiddy/content-engine/internal/content"
	"github.com/pdiddy/content-engine/internal/insight"
	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/post"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Pipeline runs the generation workflow. Each invocation gets a fresh state
// record and a fresh task graph; nothing is shared between invocations.
type Pipeline struct {
	backend llm.Backend
	fetcher content.Fetcher
	out     io.Writer
}

// New builds a pipeline. Progress and stage warnings are written to out;
// pass nil to discard them.
func New(backend llm.Backend, fetcher content.Fetcher, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{backend: backend, fetcher: fetcher, out: out}
}

// Run executes one invocation: it builds the task graph for req, runs it,
// and assembles the final WorkflowState. The returned state always carries
// exactly insight.Count insights and one post per insight; on a drafting
// failure Run returns nil and the branch error instead.
func (p *Pipeline) Run(ctx context.Context, req types.PostRequest) (*types.WorkflowState, error) {
	g := weave.NewGraph()

	acquireTask, err := weave.AddTask(g, "acquire",
		func(ctx context.Context, _ weave.DependencyResolver) (string, error) {
			return content.Acquire(ctx, p.fetcher, req, p.out), nil
		})
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	insightsTask, err := weave.AddTask(g, "insights",
		func(ctx context.Context, deps weave.DependencyResolver) ([]types.ContentInsight, error) {
			blob, err := acquireTask.Value(deps)
			if err != nil {
				return nil, err
			}
			return insight.Generate(ctx, p.backend, blob, req, p.out), nil
		}, weave.DependsOn(acquireTask))
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	draftTasks := make([]*weave.Handle[types.GeneratedPost], insight.Count)
	for i := range draftTasks {
		idx := i
		draftTasks[i], err = weave.AddTask(g, fmt.Sprintf("draft-%d", idx+1),
			func(ctx context.Context, deps weave.DependencyResolver) (types.GeneratedPost, error) {
				insights, err := insightsTask.Value(deps)
				if err != nil {
					return types.GeneratedPost{}, err
				}
				return post.Draft(ctx, p.backend, insights[idx], req)
			}, weave.DependsOn(insightsTask))
		if err != nil {
			return nil, fmt.Errorf("building graph: %w", err)
		}
	}

	draftRefs := make([]weave.TaskReference, len(draftTasks))
	for i, h := range draftTasks {
		draftRefs[i] = h
	}
	selectTask, err := weave.AddTask(g, "select",
		func(ctx context.Context, deps weave.DependencyResolver) (*types.SelectedBest, error) {
			posts := make([]types.GeneratedPost, 0, len(draftTasks))
			for _, h := range draftTasks {
				draft, err := h.Value(deps)
				if err != nil {
					return nil, err
				}
				posts = append(posts, draft)
			}
			return post.SelectBest(ctx, p.backend, posts, p.out), nil
		}, weave.DependsOn(draftRefs...))
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	// FailFast is the executor default: the first branch error cancels the
	// run and surfaces here.
	results, _, runErr := g.Run(ctx)
	if runErr != nil {
		return nil, fmt.Errorf("running pipeline: %w", runErr)
	}

	return assembleState(req, results, acquireTask, insightsTask, draftTasks, selectTask)
}

// assembleState reads every completed task's value into the final record.
func assembleState(
	req types.PostRequest,
	results *weave.Results,
	acquireTask *weave.Handle[string],
	insightsTask *weave.Handle[[]types.ContentInsight],
	draftTasks []*weave.Handle[types.GeneratedPost],
	selectTask *weave.Handle[*types.SelectedBest],
) (*types.WorkflowState, error) {
	state := types.NewWorkflowState(req)

	blob, err := acquireTask.Value(results)
	if err != nil {
		return nil, fmt.Errorf("reading acquisition result: %w", err)
	}
	state.WebsiteContent = blob

	insights, err := insightsTask.Value(results)
	if err != nil {
		return nil, fmt.Errorf("reading insights result: %w", err)
	}
	state.ContentInsights = insights

	state.LinkedinPosts = make([]types.GeneratedPost, 0, len(draftTasks))
	for i, h := range draftTasks {
		draft, err := h.Value(results)
		if err != nil {
			return nil, fmt.Errorf("reading draft %d result: %w", i+1, err)
		}
		state.LinkedinPosts = append(state.LinkedinPosts, draft)
	}

	selected, err := selectTask.Value(results)
	if err != nil {
		return nil, fmt.Errorf("reading selection result: %w", err)
	}
	state.BestSelected = selected

	return state, nil
}
