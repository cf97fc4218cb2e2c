package fixtures

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/forgo/hollow/seed/internal/model"
)

// Set is the complete record graph for one run
type Set struct {
	Variant  Variant
	Users    []model.User
	Boxes    []model.Box
	Messages []model.Message
	Blobs    []model.Blob
	Chunks   []model.Chunk
}

// Batch is one bulk insert: all documents destined for a single collection
type Batch struct {
	Collection string
	Documents  []any
}

// Collections returns the collections a variant owns, in insert order.
// These are the collections the loader drops before inserting.
func Collections(v Variant) []string {
	names := []string{
		model.CollectionUsers,
		model.CollectionBoxes,
		model.CollectionMessages,
	}
	if v == VariantAvatars {
		names = append(names, model.CollectionFiles, model.CollectionChunks)
	}
	return names
}

// Build creates every record of the fixture set from p. All timestamps are
// now, truncated to milliseconds so they survive a BSON round trip intact.
func Build(p Plan, v Variant, now time.Time) *Set {
	now = now.UTC().Truncate(time.Millisecond)
	set := &Set{Variant: v}

	set.Users = make([]model.User, 0, UserCount)
	for i, def := range userDefs {
		u := model.User{
			ID:        p.Users[i],
			Email:     def.email,
			Password:  PasswordHash,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if v == VariantAvatars {
			avatar := p.Avatars[i]
			u.Avatar = &avatar
		}
		set.Users = append(set.Users, u)
	}

	set.Boxes = make([]model.Box, 0, BoxCount)
	for i, def := range boxDefs {
		set.Boxes = append(set.Boxes, model.Box{
			ID:          p.Boxes[i],
			Name:        def.name,
			Description: def.description,
			OwnerID:     p.Users[def.owner],
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	set.Messages = make([]model.Message, 0, MessageCount)
	for i, def := range messageDefs {
		msg := model.Message{
			ID:          p.Messages[i],
			BoxID:       p.Boxes[def.box],
			Content:     def.content,
			IsAnonymous: def.sender == anonymous,
			LikeCount:   def.likeCount,
			LikedBy:     make([]bson.ObjectID, 0, len(def.likedBy)),
			CreatedAt:   now,
		}
		if def.sender != anonymous {
			sender := p.Users[def.sender]
			msg.SenderID = &sender
		}
		for _, liker := range def.likedBy {
			msg.LikedBy = append(msg.LikedBy, p.Users[liker])
		}
		set.Messages = append(set.Messages, msg)
	}

	if v != VariantAvatars {
		return set
	}

	set.Blobs = make([]model.Blob, 0, AvatarCount)
	set.Chunks = make([]model.Chunk, 0, AvatarCount)
	for i, def := range avatarDefs {
		data := []byte(def.payload)
		set.Blobs = append(set.Blobs, model.Blob{
			ID:          p.Avatars[i],
			Filename:    def.filename,
			ContentType: def.contentType,
			Length:      int64(len(data)),
			ChunkSize:   model.DefaultChunkSize,
			UploadDate:  now,
		})
		set.Chunks = append(set.Chunks, model.Chunk{
			ID:      p.Chunks[i],
			FilesID: p.Avatars[i],
			N:       0,
			Data:    data,
		})
	}

	return set
}

// Batches returns the set as bulk inserts in dependency order: users, boxes,
// messages, then blob metadata before blob chunks.
func (s *Set) Batches() []Batch {
	batches := []Batch{
		{Collection: model.CollectionUsers, Documents: documents(s.Users)},
		{Collection: model.CollectionBoxes, Documents: documents(s.Boxes)},
		{Collection: model.CollectionMessages, Documents: documents(s.Messages)},
	}
	if s.Variant == VariantAvatars {
		batches = append(batches,
			Batch{Collection: model.CollectionFiles, Documents: documents(s.Blobs)},
			Batch{Collection: model.CollectionChunks, Documents: documents(s.Chunks)},
		)
	}
	return batches
}

// ExpectedCounts returns the document count each of the variant's
// collections holds after a successful load.
func ExpectedCounts(v Variant) map[string]int64 {
	expected := map[string]int64{
		model.CollectionUsers:    UserCount,
		model.CollectionBoxes:    BoxCount,
		model.CollectionMessages: MessageCount,
	}
	if v == VariantAvatars {
		expected[model.CollectionFiles] = AvatarCount
		expected[model.CollectionChunks] = AvatarCount
	}
	return expected
}

func documents[T any](records []T) []any {
	docs := make([]any, len(records))
	for i := range records {
		docs[i] = records[i]
	}
	return docs
}
