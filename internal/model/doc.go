// Package model defines the records the hollow fixture loader writes.
//
// Every record carries both bson tags (the on-disk document layout shared by
// all store backends) and json tags (for printing and diagnostics).
//
// # Records
//
//   - User: account with email, precomputed password hash and optional avatar
//   - Box: a named message box owned by one User
//   - Message: a message posted into a Box, optionally anonymous
//   - Blob: avatar file metadata stored in fs.files
//   - Chunk: one slice of a Blob's bytes stored in fs.chunks
//
// # Collections
//
// Collection names are constants so the loader, the verifier and tests agree
// on the layout:
//
//	const (
//	    CollectionUsers    = "users"
//	    CollectionBoxes    = "boxes"
//	    CollectionMessages = "messages"
//	    CollectionFiles    = "fs.files"
//	    CollectionChunks   = "fs.chunks"
//	)
package model
