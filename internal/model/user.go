package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a user account
type User struct {
	ID        bson.ObjectID  `bson:"_id" json:"id"`
	Email     string         `bson:"email" json:"email"`
	Password  string         `bson:"password" json:"-"`                        // bcrypt hash, never exposed
	Avatar    *bson.ObjectID `bson:"avatar,omitempty" json:"avatar,omitempty"` // Blob ID in fs.files
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

// HasAvatar returns true if the user references an avatar blob
func (u *User) HasAvatar() bool {
	return u.Avatar != nil && !u.Avatar.IsZero()
}
