package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SurrealDB implements the Store interface for SurrealDB.
// Collections map to tables and each document's _id becomes its record key.
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB
func (s *SurrealDB) Connect(ctx context.Context) error {
	ctx, cancel := withConnectTimeout(ctx, s.config.ConnectTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Sign in as root user
	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	// Use namespace and database
	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	// Execute a simple query to verify connection
	_, err := s.db.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns one {status, result} entry per statement
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// Drop removes the named tables in a single transaction
func (s *SurrealDB) Drop(ctx context.Context, collections ...string) error {
	tb := NewTxBuilder()
	for _, name := range collections {
		if err := checkCollection(name); err != nil {
			return err
		}
		tb.AddRaw("REMOVE TABLE IF EXISTS " + quoteIdent(name))
	}

	if _, err := ExecuteTransaction(ctx, s, tb); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}

// InsertMany inserts docs into the table with a single INSERT statement.
// The statement runs in a transaction, so a duplicate key inserts nothing.
func (s *SurrealDB) InsertMany(ctx context.Context, collection string, docs []any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	records := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		rec, err := toRecord(doc)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	tb := NewTxBuilder()
	tb.Add("INSERT INTO "+quoteIdent(collection)+" $records", map[string]interface{}{"records": records})
	if _, err := ExecuteTransaction(ctx, s, tb); err != nil {
		if isSurrealDuplicate(err) {
			return fmt.Errorf("%w: %s: %v", ErrDuplicate, collection, err)
		}
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// Count returns the number of records in the table
func (s *SurrealDB) Count(ctx context.Context, collection string) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	rows, err := s.selectRows(ctx, "SELECT count() AS count FROM "+quoteIdent(collection)+" GROUP ALL")
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	if len(rows) == 0 {
		// Missing or empty table
		return 0, nil
	}
	return toInt64(rows[0]["count"])
}

// Find decodes every record of the table, ordered by record key
func (s *SurrealDB) Find(ctx context.Context, collection string, results any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	rows, err := s.selectRows(ctx, "SELECT * FROM "+quoteIdent(collection)+" ORDER BY id")
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}

	raws := make([]bson.Raw, 0, len(rows))
	for _, row := range rows {
		data, err := bson.Marshal(fromRecord(row))
		if err != nil {
			return fmt.Errorf("%w: encode record: %v", ErrQuery, err)
		}
		raws = append(raws, bson.Raw(data))
	}
	return decodeAll(ctx, raws, results)
}

// selectRows runs a single SELECT statement and returns its rows
func (s *SurrealDB) selectRows(ctx context.Context, query string) ([]map[string]any, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[[]map[string]any](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	first := (*results)[0]
	if first.Status != "OK" {
		if first.Error != nil {
			return nil, fmt.Errorf("%w: %s", ErrQuery, first.Error.Message)
		}
		return nil, ErrQuery
	}
	return first.Result, nil
}
