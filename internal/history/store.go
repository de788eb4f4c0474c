// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed generation runs in a local SQLite
// database so they can be listed and re-read from the CLI. Recording is a
// caller-side audit step after a run completes; the pipeline itself shares
// no state between invocations.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-engine/pkg/types"
)

const dbFile = "runs.db"

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at dir/runs.db, creating
// the schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "history"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			website_url TEXT,
			given_content TEXT,
			tone TEXT,
			target_audience TEXT,
			value_proposition TEXT,
			brand_persona TEXT,
			website_content TEXT,
			best_id INTEGER,
			best_reason TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS insights (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			title TEXT,
			description TEXT,
			audience_relevance TEXT,
			value_alignment TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			title TEXT,
			hook TEXT,
			body TEXT,
			call_to_action TEXT,
			hashtags TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a completed run and returns its generated id.
func (s *Store) Record(ctx context.Context, state *types.WorkflowState) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var bestID sql.NullInt64
	var bestReason sql.NullString
	if state.BestSelected != nil {
		bestID = sql.NullInt64{Int64: int64(state.BestSelected.ID), Valid: true}
		bestReason = sql.NullString{String: state.BestSelected.Reason, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, website_url, given_content, tone,
			target_audience, value_proposition, brand_persona, website_content,
			best_id, best_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, state.WebsiteURL, state.GivenContent, state.Tone,
		state.TargetAudience, state.ValueProposition, state.BrandPersona,
		state.WebsiteContent, bestID, bestReason)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, ins := range state.ContentInsights {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO insights (run_id, position, title, description,
				audience_relevance, value_alignment)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, i+1, ins.Title, ins.Description, ins.AudienceRelevance, ins.ValueAlignment)
		if err != nil {
			return "", fmt.Errorf("inserting insight %d: %w", i+1, err)
		}
	}

	for i, p := range state.LinkedinPosts {
		tags, err := json.Marshal(p.Hashtags)
		if err != nil {
			return "", fmt.Errorf("marshaling hashtags for post %d: %w", i+1, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO posts (run_id, position, title, hook, body,
				call_to_action, hashtags)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i+1, p.Title, p.Hook, p.Body, p.CallToAction, string(tags))
		if err != nil {
			return "", fmt.Errorf("inserting post %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID         string
	CreatedAt  time.Time
	WebsiteURL string
	Tone       string
	PostCount  int
	BestID     int
}

// List returns the most recent runs, newest first. A limit of 0 uses the
// configured default.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.website_url, r.tone, r.best_id,
			(SELECT COUNT(*) FROM posts p WHERE p.run_id = r.id)
		 FROM runs r
		 ORDER BY r.created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var createdAt string
		var bestID sql.NullInt64
		if err := rows.Scan(&sum.ID, &createdAt, &sum.WebsiteURL, &sum.Tone, &bestID, &sum.PostCount); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			sum.CreatedAt = t
		}
		if bestID.Valid {
			sum.BestID = int(bestID.Int64)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get reconstructs the stored WorkflowState for a run id.
func (s *Store) Get(ctx context.Context, id string) (*types.WorkflowState, error) {
	state := &types.WorkflowState{}
	var bestID sql.NullInt64
	var bestReason sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT website_url, given_content, tone, target_audience,
			value_proposition, brand_persona, website_content, best_id, best_reason
		 FROM runs WHERE id = ?`, id).
		Scan(&state.WebsiteURL, &state.GivenContent, &state.Tone,
			&state.TargetAudience, &state.ValueProposition, &state.BrandPersona,
			&state.WebsiteContent, &bestID, &bestReason)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	if bestID.Valid {
		state.BestSelected = &types.SelectedBest{
			ID:     int(bestID.Int64),
			Reason: bestReason.String,
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, description, audience_relevance, value_alignment
		 FROM insights WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ins types.ContentInsight
		if err := rows.Scan(&ins.Title, &ins.Description, &ins.AudienceRelevance, &ins.ValueAlignment); err != nil {
			return nil, fmt.Errorf("scanning insight row: %w", err)
		}
		state.ContentInsights = append(state.ContentInsights, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	postRows, err := s.db.QueryContext(ctx,
		`SELECT title, hook, body, call_to_action, hashtags
		 FROM posts WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer postRows.Close()
	for postRows.Next() {
		var p types.GeneratedPost
		var tags string
		if err := postRows.Scan(&p.Title, &p.Hook, &p.Body, &p.CallToAction, &tags); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		if tags != "" && tags != "null" {
			if err := json.Unmarshal([]byte(tags), &p.Hashtags); err != nil {
				return nil, fmt.Errorf("parsing hashtags: %w", err)
			}
		}
		state.LinkedinPosts = append(state.LinkedinPosts, p)
	}
	return state, postRows.Err()
}
