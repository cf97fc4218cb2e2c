package model

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Blob is the metadata document of a binary object stored across chunks.
// The field layout follows the GridFS files collection.
type Blob struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Filename    string        `bson:"filename" json:"filename"`
	ContentType string        `bson:"contentType" json:"content_type"`
	Length      int64         `bson:"length" json:"length"`
	ChunkSize   int32         `bson:"chunkSize" json:"chunk_size"`
	UploadDate  time.Time     `bson:"uploadDate" json:"upload_date"`
}

// Chunk holds one slice of a blob's bytes
type Chunk struct {
	ID      bson.ObjectID `bson:"_id" json:"id"`
	FilesID bson.ObjectID `bson:"files_id" json:"files_id"`
	N       int32         `bson:"n" json:"n"`
	Data    []byte        `bson:"data" json:"-"`
}

// Assemble concatenates the chunks belonging to blobID in sequence-index
// order. Chunks of other blobs are ignored. A gap or repeated index is an
// error.
func Assemble(blobID bson.ObjectID, chunks []Chunk) ([]byte, error) {
	own := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.FilesID == blobID {
			own = append(own, c)
		}
	}
	sort.Slice(own, func(i, j int) bool { return own[i].N < own[j].N })

	var buf bytes.Buffer
	for i, c := range own {
		if c.N != int32(i) {
			return nil, fmt.Errorf("blob %s: expected chunk %d, found %d", blobID.Hex(), i, c.N)
		}
		buf.Write(c.Data)
	}
	return buf.Bytes(), nil
}
