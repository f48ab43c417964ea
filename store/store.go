// Package store keeps raw legacy documents in a local SQLite database,
// keyed by PID.
package store

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/encoding/json"
	_ "modernc.org/sqlite"

	"github.com/lehigh-university-libraries/metaexport/document"
)

// ErrNotFound is returned when no document has the requested PID.
var ErrNotFound = errors.New("document not found")

// maxLine bounds one JSONL record; legacy documents with many citations
// run to several megabytes.
const maxLine = 64 << 20

// Store wraps a SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			pid TEXT PRIMARY KEY,
			collection TEXT,
			raw TEXT NOT NULL
		);
	`)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, doc *document.Article) error {
	pid := doc.PublisherID()
	if pid == "" {
		return fmt.Errorf("%w: no PID", document.ErrInvalidDocument)
	}
	raw, err := json.Marshal(doc.Raw())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", pid, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (pid, collection, raw) VALUES (?, ?, ?)
		ON CONFLICT(pid) DO UPDATE SET collection = excluded.collection, raw = excluded.raw
	`, pid, doc.CollectionAcronym(), string(raw))
	if err != nil {
		return fmt.Errorf("storing %s: %w", pid, err)
	}
	return nil
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, doc *document.Article) error {
	return put(ctx, s.db, doc)
}

// Get returns the raw JSON of the document with the given PID.
func (s *Store) Get(ctx context.Context, pid string) ([]byte, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT raw FROM documents WHERE pid = ?", pid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pid)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pid, err)
	}
	return []byte(raw), nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Import stores every document of a JSONL stream in one transaction and
// returns how many were written. Blank lines are skipped; a malformed line
// aborts the import.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLine)
	var n, line int
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		doc, err := document.Parse(data)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		if err := put(ctx, tx, doc); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		n++
		if n%10000 == 0 {
			slog.Info("importing", "documents", n)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading dump: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return n, nil
}
