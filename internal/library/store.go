// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists saved drafts and playlists in SQLite. Drafts
// outlive the in-memory job registry; playlists group drafts and cascade
// their memberships on delete.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/draftwright/pkg/types"
)

const dbFile = "library.db"

var (
	// ErrDraftNotFound is returned when no draft has the requested ID.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrPlaylistNotFound is returned when no playlist has the requested ID.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrNotInPlaylist is returned when removing a draft that is not a
	// member of the playlist.
	ErrNotInPlaylist = errors.New("draft is not in this playlist")
)

// InvalidDraftsError reports draft IDs that do not exist in the library.
type InvalidDraftsError struct {
	IDs []string
}

func (e *InvalidDraftsError) Error() string {
	return fmt.Sprintf("invalid draft IDs: %v", e.IDs)
}

// Store manages the library SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the library database at dataDir/library.db
// and creates the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS drafts (
			draft_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			research_id TEXT NOT NULL DEFAULT '',
			query TEXT NOT NULL DEFAULT '',
			content_style TEXT NOT NULL DEFAULT '',
			draft_content TEXT NOT NULL DEFAULT '',
			reference_list TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS playlists (
			playlist_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_drafts (
			playlist_id TEXT NOT NULL REFERENCES playlists(playlist_id) ON DELETE CASCADE,
			draft_id TEXT NOT NULL REFERENCES drafts(draft_id) ON DELETE CASCADE,
			added_at TEXT NOT NULL,
			PRIMARY KEY (playlist_id, draft_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// SaveDraft persists the draft content of a completed research job under a
// fresh draft ID. Title and tags are caller-supplied; the remaining fields
// come from the job's final state.
func (s *Store) SaveDraft(ctx context.Context, job types.ResearchJob, title string, tags []string) (types.Draft, error) {
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	draft := types.Draft{
		DraftID:      uuid.NewString(),
		Title:        title,
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
		ResearchID:   job.ID,
		Query:        job.Query,
		ContentStyle: job.ContentStyle,
		DraftContent: job.DraftContent,
		References:   job.References,
	}
	if draft.References == nil {
		draft.References = []string{}
	}

	tagsJSON, _ := json.Marshal(draft.Tags)
	refsJSON, _ := json.Marshal(draft.References)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (draft_id, title, tags, created_at, updated_at,
			research_id, query, content_style, draft_content, reference_list)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.DraftID, draft.Title, string(tagsJSON),
		formatTime(draft.CreatedAt), formatTime(draft.UpdatedAt),
		draft.ResearchID, draft.Query, draft.ContentStyle,
		draft.DraftContent, string(refsJSON),
	)
	if err != nil {
		return types.Draft{}, fmt.Errorf("inserting draft: %w", err)
	}
	return draft, nil
}

const draftColumns = `draft_id, title, tags, created_at, updated_at,
	research_id, query, content_style, draft_content, reference_list`

func scanDraft(row interface{ Scan(...any) error }) (types.Draft, error) {
	var d types.Draft
	var tagsJSON, refsJSON, createdAt, updatedAt string
	err := row.Scan(&d.DraftID, &d.Title, &tagsJSON, &createdAt, &updatedAt,
		&d.ResearchID, &d.Query, &d.ContentStyle, &d.DraftContent, &refsJSON)
	if err != nil {
		return types.Draft{}, err
	}
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	if err := jsonList(tagsJSON, &d.Tags); err != nil {
		d.Tags = []string{}
	}
	if err := jsonList(refsJSON, &d.References); err != nil {
		d.References = []string{}
	}
	return d, nil
}

// jsonList decodes a JSON string-array column, normalizing null to an
// empty slice.
func jsonList(raw string, dst *[]string) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

// ListDrafts returns all drafts, newest first. A non-empty tag restricts
// the result to drafts carrying that tag; tags live in a JSON text column,
// so the filter is applied after scanning.
func (s *Store) ListDrafts(ctx context.Context, tag string) ([]types.Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	drafts := []types.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		if tag != "" && !containsTag(d.Tags, tag) {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GetDraft returns one draft by ID.
func (s *Store) GetDraft(ctx context.Context, id string) (types.Draft, error) {
	d, err := scanDraft(s.db.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE draft_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return types.Draft{}, fmt.Errorf("querying draft: %w", err)
	}
	return d, nil
}

// UpdateDraft changes a draft's title and/or tags. Nil means "leave the
// field as it is". The updated draft is returned.
func (s *Store) UpdateDraft(ctx context.Context, id string, title *string, tags []string) (types.Draft, error) {
	if _, err := s.GetDraft(ctx, id); err != nil {
		return types.Draft{}, err
	}

	set := "updated_at = ?"
	args := []any{formatTime(time.Now())}
	if title != nil {
		set += ", title = ?"
		args = append(args, *title)
	}
	if tags != nil {
		tagsJSON, _ := json.Marshal(tags)
		set += ", tags = ?"
		args = append(args, string(tagsJSON))
	}
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE drafts SET `+set+` WHERE draft_id = ?`, args...); err != nil {
		return types.Draft{}, fmt.Errorf("updating draft: %w", err)
	}
	return s.GetDraft(ctx, id)
}

// DeleteDraft removes a draft; its playlist memberships cascade.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE draft_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// Tags returns the sorted set of distinct tags across all drafts.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tags FROM drafts`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	seen := map[string]bool{}
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, fmt.Errorf("scanning tags: %w", err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			continue
		}
		for _, t := range tags {
			seen[t] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}
