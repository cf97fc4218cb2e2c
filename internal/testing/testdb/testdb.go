package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/forgo/hollow/seed/internal/database"
	"github.com/forgo/hollow/seed/internal/model"
)

// TestDB provides an isolated store for testing.
// Live backends get a unique database name to ensure test isolation.
type TestDB struct {
	Store   database.Store
	Backend database.Backend
	Name    string
	t       *testing.T
	closed  bool
}

var (
	// counterMu protects the name counter
	counterMu sync.Mutex
	counter   int64
)

// getTestConfig returns the store config from environment or defaults
func getTestConfig() database.Config {
	backend := database.BackendMemory
	if b, err := database.ParseBackend(getEnv("TEST_DB_BACKEND", "memory")); err == nil {
		backend = b
	}

	return database.Config{
		Backend:        backend,
		URI:            getEnv("TEST_MONGO_URI", "mongodb://localhost:27017"),
		Host:           getEnv("TEST_DB_HOST", "localhost"),
		Port:           getEnv("TEST_DB_PORT", "8000"),
		User:           getEnv("TEST_DB_USER", "root"),
		Password:       getEnv("TEST_DB_PASSWORD", "root"),
		ConnectTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// uniqueName generates a unique database name for test isolation
func uniqueName() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// New creates a new isolated, connected test store.
// Close is registered as a test cleanup; calling it earlier is allowed.
func New(t *testing.T) *TestDB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	name := uniqueName()

	switch cfg.Backend {
	case database.BackendMongo:
		cfg.Database = name
	case database.BackendSurreal:
		cfg.Namespace = name
		cfg.Database = "test"
	case database.BackendSQLite:
		cfg.Path = filepath.Join(t.TempDir(), name+".db")
	}

	store, err := database.New(cfg)
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}
	if err := store.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect to %s: %v", database.Describe(cfg), err)
	}

	tdb := &TestDB{
		Store:   store,
		Backend: cfg.Backend,
		Name:    name,
		t:       t,
	}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close removes the test database and closes the store
func (tdb *TestDB) Close() {
	if tdb.closed {
		return
	}
	tdb.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Cleanup errors are ignored; the names are unique
	switch s := tdb.Store.(type) {
	case *database.MongoStore:
		_ = s.DropDatabase(ctx)
	case *database.SurrealDB:
		_ = s.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE IF EXISTS %s", tdb.Name), nil)
	}

	_ = tdb.Store.Close()
}

// Reset drops every fixture collection, leaving an empty database
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()

	err := tdb.Store.Drop(tdb.Ctx(),
		model.CollectionUsers,
		model.CollectionBoxes,
		model.CollectionMessages,
		model.CollectionFiles,
		model.CollectionChunks,
	)
	if err != nil {
		t.Fatalf("testdb: reset failed: %v", err)
	}
}

// Ctx returns a context with a reasonable timeout for test operations.
// It is cancelled when the test finishes.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustInsert inserts docs into collection and fails the test on error
func (tdb *TestDB) MustInsert(collection string, docs ...any) {
	tdb.t.Helper()
	if err := tdb.Store.InsertMany(tdb.Ctx(), collection, docs); err != nil {
		tdb.t.Fatalf("testdb: insert into %s failed: %v", collection, err)
	}
}

// MustCount returns the document count of collection, failing the test on error
func (tdb *TestDB) MustCount(collection string) int64 {
	tdb.t.Helper()
	n, err := tdb.Store.Count(tdb.Ctx(), collection)
	if err != nil {
		tdb.t.Fatalf("testdb: count %s failed: %v", collection, err)
	}
	return n
}
