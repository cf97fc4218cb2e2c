package model

// Collection names as they appear in the target database.
const (
	CollectionUsers    = "users"
	CollectionBoxes    = "boxes"
	CollectionMessages = "messages"
	CollectionFiles    = "fs.files"  // Blob metadata (GridFS files collection)
	CollectionChunks   = "fs.chunks" // Blob bytes (GridFS chunks collection)
)

// DefaultChunkSize is the GridFS default chunk size in bytes.
const DefaultChunkSize int32 = 255 * 1024
