// Package database provides the document store abstraction for the hollow
// fixture loader.
//
// This package defines the Store interface that the loader and verifier
// program against, plus one implementation per supported backend.
//
// # Interface Design
//
// The Store interface is deliberately collection-shaped:
//   - Drop: Remove collections and their documents
//   - InsertMany: Bulk insert one batch into one collection
//   - Count: Number of documents in a collection
//   - Find: Decode every document of a collection into a slice
//
// Documents are Go structs with bson tags. Every backend stores the same
// logical document layout, so records read back from any backend decode into
// the same model types.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//   - ErrDuplicate: Unique identifier violation
//   - ErrNotFound: Record does not exist
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    // Handle duplicate _id
//	}
//
// # Usage Example
//
//	store, err := database.New(cfg)
//	if err := store.Connect(ctx); err != nil { ... }
//	defer store.Close()
//
//	err = store.InsertMany(ctx, "users", []any{user1, user2})
package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique identifier violation (e.g., duplicate _id).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")

	// ErrUnsupported indicates an unknown backend or an invalid collection name.
	ErrUnsupported = errors.New("unsupported")
)

// Store defines the document operations the loader needs
type Store interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Drop removes the named collections. Missing collections are not an error.
	Drop(ctx context.Context, collections ...string) error

	// InsertMany persists docs into collection in a single bulk operation
	InsertMany(ctx context.Context, collection string, docs []any) error

	// Count returns the number of documents in collection
	Count(ctx context.Context, collection string) (int64, error)

	// Find decodes every document in collection into results, which must be
	// a pointer to a slice of bson-decodable structs.
	Find(ctx context.Context, collection string, results any) error
}

// BlobReader is implemented by stores with native chunked-file support.
// ReadBlob streams the complete content of the blob with the given ID.
type BlobReader interface {
	ReadBlob(ctx context.Context, id any, w io.Writer) (int64, error)
}

// Backend names a Store implementation
type Backend string

const (
	BackendMongo   Backend = "mongo"
	BackendSurreal Backend = "surreal"
	BackendSQLite  Backend = "sqlite"
	BackendMemory  Backend = "memory"
)

// ParseBackend parses a backend name, case-insensitively
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMongo, BackendSurreal, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("%w: backend %q", ErrUnsupported, s)
	}
}

// Config holds database configuration
type Config struct {
	Backend Backend

	// MongoDB
	URI string

	// SurrealDB
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string

	// Logical database name (MongoDB database, SurrealDB database)
	Database string

	// SQLite file path
	Path string

	// ConnectTimeout bounds Connect. Zero means no timeout.
	ConnectTimeout time.Duration
}

// withConnectTimeout derives the context used while establishing a connection
func withConnectTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// checkCollection rejects names no backend can store safely
func checkCollection(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty collection name", ErrUnsupported)
	}
	if strings.ContainsAny(name, "`$\x00") {
		return fmt.Errorf("%w: collection name %q", ErrUnsupported, name)
	}
	return nil
}
