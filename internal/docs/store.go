// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docs indexes uploaded document text for retrieval. Text is split
// into overlapping chunks held in a SQLite FTS5 index; the top-ranked
// chunks for a query become the document context fed to the research and
// draft prompts.
package docs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/draftwright/pkg/types"
)

const dbFile = "docs.db"

// ErrDocumentNotFound is returned when no document has the requested ID.
var ErrDocumentNotFound = errors.New("document not found")

// Store manages the document chunk index.
type Store struct {
	db        *sql.DB
	chunkSize int
	maxChunks int
}

// NewStore opens or creates the document database at dataDir/docs.db and
// creates the schema if it does not exist.
func NewStore(cfg types.DocsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1200
	}
	maxChunks := cfg.MaxChunks
	if maxChunks <= 0 {
		maxChunks = 4
	}

	s := &Store{db: db, chunkSize: chunkSize, maxChunks: maxChunks}
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
		`CREATE TABLE IF NOT EXISTS documents (
			document_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			chunks INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON chunks(document_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='chunks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE chunks_fts USING fts5(content, content=chunks, content_rowid=rowid)`,
			`CREATE TRIGGER chunks_ai AFTER INSERT ON chunks BEGIN
				INSERT INTO chunks_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER chunks_ad AFTER DELETE ON chunks BEGIN
				INSERT INTO chunks_fts(chunks_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// AddDocument chunks and indexes already-extracted document text under a
// fresh document ID. Empty text is rejected.
func (s *Store) AddDocument(ctx context.Context, name, text string) (types.Document, error) {
	chunks := chunkText(text, s.chunkSize)
	if len(chunks) == 0 {
		return types.Document{}, fmt.Errorf("document %q has no indexable text", name)
	}

	doc := types.Document{
		DocumentID: uuid.NewString(),
		Name:       name,
		Chunks:     len(chunks),
		CreatedAt:  time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Document{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (document_id, name, chunks, created_at) VALUES (?, ?, ?, ?)`,
		doc.DocumentID, doc.Name, doc.Chunks, doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return types.Document{}, fmt.Errorf("inserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (document_id, seq, content) VALUES (?, ?, ?)`)
	if err != nil {
		return types.Document{}, fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, doc.DocumentID, i, chunk); err != nil {
			return types.Document{}, fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Document{}, fmt.Errorf("committing document: %w", err)
	}
	return doc, nil
}

// RelevantContext returns the top-ranked chunks for the query joined into
// one context blob. An empty index, or a query with no searchable terms,
// yields an empty string.
func (s *Store) RelevantContext(ctx context.Context, query string) (string, error) {
	match := ftsQuery(query)
	if match == "" {
		return "", nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.content
		 FROM chunks_fts
		 JOIN chunks c ON c.rowid = chunks_fts.rowid
		 WHERE chunks_fts MATCH ?
		 ORDER BY chunks_fts.rank
		 LIMIT ?`, match, s.maxChunks)
	if err != nil {
		return "", fmt.Errorf("querying chunk index: %w", err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return "", fmt.Errorf("scanning chunk: %w", err)
		}
		parts = append(parts, content)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strings.Join(parts, "\n\n"), nil
}

// List returns all indexed documents, newest first.
func (s *Store) List(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, name, chunks, created_at
		 FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []types.Document{}
	for rows.Next() {
		var d types.Document
		var createdAt string
		if err := rows.Scan(&d.DocumentID, &d.Name, &d.Chunks, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes a document; its chunks cascade and the delete trigger
// keeps the FTS index in sync.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// chunkText splits text into word-boundary chunks of roughly size bytes.
// Each chunk carries a short tail of the previous one so passages split
// across a boundary remain findable.
func chunkText(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var cur []string
	curLen := 0
	fresh := 0

	flush := func() {
		chunks = append(chunks, strings.Join(cur, " "))
		tail := len(cur) / 8
		cur = append([]string(nil), cur[len(cur)-tail:]...)
		curLen = 0
		for _, w := range cur {
			curLen += len(w) + 1
		}
		fresh = 0
	}

	for _, w := range words {
		cur = append(cur, w)
		curLen += len(w) + 1
		fresh++
		if curLen >= size {
			flush()
		}
	}
	if fresh > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}
	return chunks
}

// ftsQuery turns free text into an FTS5 OR-query of quoted terms, dropping
// punctuation that FTS would treat as syntax.
func ftsQuery(query string) string {
	terms := strings.FieldsFunc(query, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " OR ")
}
