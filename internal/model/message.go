package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is a post inside a box. Anonymous messages carry no sender.
type Message struct {
	ID          bson.ObjectID   `bson:"_id" json:"id"`
	BoxID       bson.ObjectID   `bson:"box_id" json:"box_id"`
	SenderID    *bson.ObjectID  `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	Content     string          `bson:"content" json:"content"`
	IsAnonymous bool            `bson:"is_anonymous" json:"is_anonymous"`
	LikeCount   int             `bson:"like_count" json:"like_count"`
	LikedBy     []bson.ObjectID `bson:"liked_by" json:"liked_by"` // Not cross-checked against LikeCount
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// HasSender returns true if the message names its sender
func (m *Message) HasSender() bool {
	return m.SenderID != nil && !m.SenderID.IsZero()
}
