// Package database provides document storage for the hollow fixture loader.
//
// # Backends
//
// Four Store implementations share one logical document layout:
//
//   - MongoStore: MongoDB via the official v2 driver. The canonical target.
//     fs.files / fs.chunks are readable through the driver's GridFS bucket.
//   - SurrealDB: SurrealDB over websocket. Collections map to tables, _id maps
//     to the record key, object IDs are stored as hex strings.
//   - SQLiteStore: an embedded single-file store. Documents are BSON blobs in
//     one table keyed by (collection, _id).
//   - MemoryStore: in-process maps of BSON documents, used by tests.
//
// Select a backend with New:
//
//	store, err := database.New(database.Config{
//	    Backend:  database.BackendMongo,
//	    URI:      "mongodb://localhost:27017",
//	    Database: "hollow",
//	})
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrConnection: Database connection failed
//   - ErrQuery: Statement execution failed
//   - ErrDuplicate: A document with the same _id already exists
//   - ErrNotFound: Record does not exist
//   - ErrUnsupported: Unknown backend or invalid collection name
package database
