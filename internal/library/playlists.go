// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meshintel/draftwright/pkg/types"
)

// validateDraftIDs returns an *InvalidDraftsError listing any IDs that do
// not exist in the drafts table.
func (s *Store) validateDraftIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT draft_id FROM drafts WHERE draft_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("validating draft IDs: %w", err)
	}
	defer rows.Close()

	valid := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning draft ID: %w", err)
		}
		valid[id] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var invalid []string
	for _, id := range ids {
		if !valid[id] {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return &InvalidDraftsError{IDs: invalid}
	}
	return nil
}

// CreatePlaylist creates a playlist, optionally seeded with existing
// drafts. All supplied draft IDs must exist.
func (s *Store) CreatePlaylist(ctx context.Context, name, description string, draftIDs []string) (types.Playlist, error) {
	if err := s.validateDraftIDs(ctx, draftIDs); err != nil {
		return types.Playlist{}, err
	}

	now := time.Now()
	p := types.Playlist{
		PlaylistID:  uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		DraftCount:  len(draftIDs),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Playlist{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO playlists (playlist_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.PlaylistID, p.Name, p.Description, formatTime(now), formatTime(now),
	); err != nil {
		return types.Playlist{}, fmt.Errorf("inserting playlist: %w", err)
	}

	for _, draftID := range draftIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_drafts (playlist_id, draft_id, added_at) VALUES (?, ?, ?)`,
			p.PlaylistID, draftID, formatTime(now),
		); err != nil {
			return types.Playlist{}, fmt.Errorf("adding draft %s: %w", draftID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Playlist{}, fmt.Errorf("committing playlist: %w", err)
	}
	return p, nil
}

// ListPlaylists returns all playlists with their member counts, newest
// first. Member drafts are not loaded.
func (s *Store) ListPlaylists(ctx context.Context) ([]types.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.playlist_id, p.name, p.description, p.created_at, p.updated_at,
			COUNT(pd.draft_id)
		 FROM playlists p
		 LEFT JOIN playlist_drafts pd ON p.playlist_id = pd.playlist_id
		 GROUP BY p.playlist_id
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying playlists: %w", err)
	}
	defer rows.Close()

	playlists := []types.Playlist{}
	for rows.Next() {
		var p types.Playlist
		var createdAt, updatedAt string
		if err := rows.Scan(&p.PlaylistID, &p.Name, &p.Description,
			&createdAt, &updatedAt, &p.DraftCount); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// GetPlaylist returns a playlist with its member drafts, most recently
// added first. Each draft carries the time it was added to the playlist.
func (s *Store) GetPlaylist(ctx context.Context, id string) (types.Playlist, error) {
	var p types.Playlist
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT playlist_id, name, description, created_at, updated_at
		 FROM playlists WHERE playlist_id = ?`, id,
	).Scan(&p.PlaylistID, &p.Name, &p.Description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return types.Playlist{}, fmt.Errorf("querying playlist: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+qualifiedDraftColumns+`, pd.added_at
		 FROM drafts d
		 JOIN playlist_drafts pd ON d.draft_id = pd.draft_id
		 WHERE pd.playlist_id = ?
		 ORDER BY pd.added_at DESC`, id)
	if err != nil {
		return types.Playlist{}, fmt.Errorf("querying playlist drafts: %w", err)
	}
	defer rows.Close()

	p.Drafts = []types.Draft{}
	for rows.Next() {
		d, addedAt, err := scanPlaylistDraft(rows)
		if err != nil {
			return types.Playlist{}, fmt.Errorf("scanning playlist draft: %w", err)
		}
		d.AddedAt = addedAt
		p.Drafts = append(p.Drafts, d)
	}
	if err := rows.Err(); err != nil {
		return types.Playlist{}, err
	}
	p.DraftCount = len(p.Drafts)
	return p, nil
}

const qualifiedDraftColumns = `d.draft_id, d.title, d.tags, d.created_at, d.updated_at,
	d.research_id, d.query, d.content_style, d.draft_content, d.reference_list`

func scanPlaylistDraft(rows *sql.Rows) (types.Draft, time.Time, error) {
	var d types.Draft
	var tagsJSON, refsJSON, createdAt, updatedAt, addedAt string
	err := rows.Scan(&d.DraftID, &d.Title, &tagsJSON, &createdAt, &updatedAt,
		&d.ResearchID, &d.Query, &d.ContentStyle, &d.DraftContent, &refsJSON, &addedAt)
	if err != nil {
		return types.Draft{}, time.Time{}, err
	}
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	if err := jsonList(tagsJSON, &d.Tags); err != nil {
		d.Tags = []string{}
	}
	if err := jsonList(refsJSON, &d.References); err != nil {
		d.References = []string{}
	}
	return d, parseTime(addedAt), nil
}

// AddDrafts adds drafts to a playlist, skipping ones already present. It
// returns how many were newly added and the playlist's new member count.
func (s *Store) AddDrafts(ctx context.Context, playlistID string, draftIDs []string) (added, total int, err error) {
	if err := s.playlistExists(ctx, playlistID); err != nil {
		return 0, 0, err
	}
	if err := s.validateDraftIDs(ctx, draftIDs); err != nil {
		return 0, 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for _, draftID := range draftIDs {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO playlist_drafts (playlist_id, draft_id, added_at)
			 VALUES (?, ?, ?)`,
			playlistID, draftID, now)
		if err != nil {
			return 0, 0, fmt.Errorf("adding draft %s: %w", draftID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE playlists SET updated_at = ? WHERE playlist_id = ?`, now, playlistID); err != nil {
		return 0, 0, fmt.Errorf("touching playlist: %w", err)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playlist_drafts WHERE playlist_id = ?`, playlistID,
	).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("counting playlist drafts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing: %w", err)
	}
	return added, total, nil
}

// RemoveDraft removes one draft from a playlist and returns the playlist's
// new member count.
func (s *Store) RemoveDraft(ctx context.Context, playlistID, draftID string) (total int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM playlist_drafts WHERE playlist_id = ? AND draft_id = ?`,
		playlistID, draftID)
	if err != nil {
		return 0, fmt.Errorf("removing draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotInPlaylist
	}

	now := formatTime(time.Now())
	if _, err := tx.ExecContext(ctx,
		`UPDATE playlists SET updated_at = ? WHERE playlist_id = ?`, now, playlistID); err != nil {
		return 0, fmt.Errorf("touching playlist: %w", err)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playlist_drafts WHERE playlist_id = ?`, playlistID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting playlist drafts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return total, nil
}

// DeletePlaylist removes a playlist; memberships cascade, drafts survive.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE playlist_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (s *Store) playlistExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM playlists WHERE playlist_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("querying playlist: %w", err)
	}
	return nil
}
