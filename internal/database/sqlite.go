package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS documents (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	doc_id     TEXT NOT NULL,
	body       BLOB NOT NULL,
	UNIQUE (collection, doc_id)
)`

// SQLiteStore keeps documents as BSON blobs in a single SQLite table
type SQLiteStore struct {
	db     *sql.DB
	config Config
}

// NewSQLiteStore creates a new SQLite store for cfg.Path
func NewSQLiteStore(cfg Config) *SQLiteStore {
	return &SQLiteStore{config: cfg}
}

// Connect opens the database file and creates the documents table
func (s *SQLiteStore) Connect(ctx context.Context) error {
	ctx, cancel := withConnectTimeout(ctx, s.config.ConnectTimeout)
	defer cancel()

	if dir := filepath.Dir(s.config.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory: %v", ErrConnection, err)
		}
	}

	db, err := sql.Open("sqlite", s.config.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Single connection for SQLite to avoid locking issues.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA busy_timeout=5000", sqliteSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return fmt.Errorf("%w: exec %q: %v", ErrConnection, stmt, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Drop deletes every document of the named collections in one transaction
func (s *SQLiteStore) Drop(ctx context.Context, collections ...string) error {
	if s.db == nil {
		return ErrConnection
	}
	for _, name := range collections {
		if err := checkCollection(name); err != nil {
			return err
		}
	}
	if len(collections) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(collections)), ",")
	args := make([]any, len(collections))
	for i, name := range collections {
		args[i] = name
	}

	query := fmt.Sprintf("DELETE FROM documents WHERE collection IN (%s)", placeholders)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: drop: %v", ErrQuery, err)
	}
	return nil
}

// InsertMany inserts docs in a single transaction
func (s *SQLiteStore) InsertMany(ctx context.Context, collection string, docs []any) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return err
	}

	encoded := make([]encodedDoc, 0, len(docs))
	for _, doc := range docs {
		e, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		encoded = append(encoded, e)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrQuery, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO documents (collection, doc_id, body) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%w: prepare: %v", ErrQuery, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range encoded {
		if _, err := stmt.ExecContext(ctx, collection, e.key, []byte(e.raw)); err != nil {
			if isSQLiteUnique(err) {
				return fmt.Errorf("%w: %s _id %s", ErrDuplicate, collection, e.key)
			}
			return fmt.Errorf("%w: insert into %s: %v", ErrQuery, collection, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrQuery, err)
	}
	return nil
}

// Count returns the number of documents in collection
func (s *SQLiteStore) Count(ctx context.Context, collection string) (int64, error) {
	if s.db == nil {
		return 0, ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE collection = ?", collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", ErrQuery, collection, err)
	}
	return count, nil
}

// Find decodes every document of collection in insertion order
func (s *SQLiteStore) Find(ctx context.Context, collection string, results any) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT body FROM documents WHERE collection = ? ORDER BY seq", collection)
	if err != nil {
		return fmt.Errorf("%w: find %s: %v", ErrQuery, collection, err)
	}
	defer func() { _ = rows.Close() }()

	var raws []bson.Raw
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("%w: scan %s: %v", ErrQuery, collection, err)
		}
		raws = append(raws, bson.Raw(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: find %s: %v", ErrQuery, collection, err)
	}

	return decodeAll(ctx, raws, results)
}

// isSQLiteUnique reports whether err is a UNIQUE constraint violation
func isSQLiteUnique(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
