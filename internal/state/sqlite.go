package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite cache store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// OpenWithDB attaches an existing connection, such as a mock.
func (s *SQLiteStore) OpenWithDB(db *sql.DB) {
	s.db = db
	s.path = ""
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

// GetCompilation returns the cached compilation for a content hash,
// or ErrNotFound.
func (s *SQLiteStore) GetCompilation(hash string) (*Compilation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rec := &Compilation{}
	var compiledAt int64
	err := s.db.QueryRow(
		`SELECT id, source_path, content_hash, output, compiled_at FROM compilations WHERE content_hash = ?`,
		hash,
	).Scan(&rec.ID, &rec.SourcePath, &rec.ContentHash, &rec.Output, &compiledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compilation: %w", err)
	}

	rec.CompiledAt = time.Unix(0, compiledAt).UTC()
	return rec, nil
}

// SaveCompilation inserts rec, replacing any earlier entry for its hash.
// Missing ID and CompiledAt fields are filled in.
func (s *SQLiteStore) SaveCompilation(rec *Compilation) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if rec.ID == "" {
		rec.ID = generateID()
	}
	if rec.CompiledAt.IsZero() {
		rec.CompiledAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO compilations (id, source_path, content_hash, output, compiled_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (content_hash) DO UPDATE SET
		   id = excluded.id,
		   source_path = excluded.source_path,
		   output = excluded.output,
		   compiled_at = excluded.compiled_at`,
		rec.ID, rec.SourcePath, rec.ContentHash, rec.Output, rec.CompiledAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save compilation: %w", err)
	}

	s.logger.Debug("cached compilation", "source", rec.SourcePath, "hash", rec.ContentHash)
	return nil
}

// PruneBefore deletes compilations older than t and reports how many went.
func (s *SQLiteStore) PruneBefore(t time.Time) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(`DELETE FROM compilations WHERE compiled_at < ?`, t.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune compilations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned compilations: %w", err)
	}
	return n, nil
}
