// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Draft is a user-curated piece of content saved from a completed research
// job. Unlike jobs, drafts are durably stored in the library database.
type Draft struct {
	DraftID      string    `json:"draft_id"`
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ResearchID   string    `json:"research_id"`
	Query        string    `json:"query"`
	ContentStyle string    `json:"content_style"`
	DraftContent string    `json:"draft_content"`
	References   []string  `json:"references"`

	// AddedAt is set only when the draft is listed as part of a playlist.
	AddedAt time.Time `json:"added_at,omitzero"`
}

// Playlist is a named, ordered collection of drafts.
type Playlist struct {
	PlaylistID  string    `json:"playlist_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DraftCount  int       `json:"draft_count"`
	Drafts      []Draft   `json:"drafts,omitempty"`
}

// Document is the metadata of an uploaded document indexed for retrieval
// context. The extracted text itself lives in the chunk index.
type Document struct {
	DocumentID string    `json:"document_id"`
	Name       string    `json:"name"`
	Chunks     int       `json:"chunks"`
	CreatedAt  time.Time `json:"created_at"`
}
