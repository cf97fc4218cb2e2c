package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Box is a message box owned by exactly one user
type Box struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	OwnerID     bson.ObjectID `bson:"owner_id" json:"owner_id"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}
