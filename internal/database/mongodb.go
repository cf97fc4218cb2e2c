package database

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoStore implements the Store interface for MongoDB
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	config Config
}

// NewMongoStore creates a new MongoDB store
func NewMongoStore(cfg Config) *MongoStore {
	return &MongoStore{config: cfg}
}

// Connect establishes a connection to MongoDB and selects the logical database
func (s *MongoStore) Connect(ctx context.Context) error {
	ctx, cancel := withConnectTimeout(ctx, s.config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(s.config.URI))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Connect is lazy; ping to surface an unreachable server now
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	s.client = client
	s.db = client.Database(s.config.Database)
	return nil
}

// Close disconnects the client
func (s *MongoStore) Close() error {
	if s.client != nil {
		return s.client.Disconnect(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *MongoStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrConnection
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Drop drops each named collection
func (s *MongoStore) Drop(ctx context.Context, collections ...string) error {
	if s.db == nil {
		return ErrConnection
	}
	for _, name := range collections {
		if err := checkCollection(name); err != nil {
			return err
		}
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("%w: drop %s: %v", ErrQuery, name, err)
		}
	}
	return nil
}

// InsertMany bulk inserts docs with a single insertMany command
func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []any) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := s.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s: %v", ErrDuplicate, collection, err)
		}
		return fmt.Errorf("%w: insert into %s: %v", ErrQuery, collection, err)
	}
	return nil
}

// Count returns the number of documents in collection
func (s *MongoStore) Count(ctx context.Context, collection string) (int64, error) {
	if s.db == nil {
		return 0, ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", ErrQuery, collection, err)
	}
	return n, nil
}

// Find decodes every document of collection, ordered by _id
func (s *MongoStore) Find(ctx context.Context, collection string, results any) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := checkCollection(collection); err != nil {
		return err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return fmt.Errorf("%w: find %s: %v", ErrQuery, collection, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrQuery, collection, err)
	}
	return nil
}

// ReadBlob streams a blob from the default GridFS bucket (fs.files / fs.chunks)
func (s *MongoStore) ReadBlob(ctx context.Context, id any, w io.Writer) (int64, error) {
	if s.db == nil {
		return 0, ErrConnection
	}

	n, err := s.db.GridFSBucket().DownloadToStream(ctx, id, w)
	if err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return 0, fmt.Errorf("%w: blob %v", ErrNotFound, id)
		}
		return n, fmt.Errorf("%w: read blob %v: %v", ErrQuery, id, err)
	}
	return n, nil
}

// DropDatabase drops the whole logical database
func (s *MongoStore) DropDatabase(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if err := s.db.Drop(ctx); err != nil {
		return fmt.Errorf("%w: drop database %s: %v", ErrQuery, s.config.Database, err)
	}
	return nil
}
