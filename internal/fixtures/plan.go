// Package fixtures holds the hollow fixture data and builds the record graph
// the loader inserts.
//
// Construction is two-phase. NewPlan allocates every identifier that any
// record refers to, including avatar blob IDs that users reference before
// the blobs exist. Build then creates every record purely from the plan, so
// nothing depends on a previous insert having happened.
package fixtures

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Fixture sizes
const (
	UserCount    = 2
	BoxCount     = 3
	MessageCount = 3
	AvatarCount  = UserCount // one avatar per user
)

// Variant selects which schema generation the fixtures target
type Variant string

const (
	// VariantAvatars seeds users with avatar blobs (fs.files / fs.chunks)
	VariantAvatars Variant = "avatars"
	// VariantBasic seeds users, boxes and messages only
	VariantBasic Variant = "basic"
)

// ParseVariant parses a variant name, case-insensitively
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantAvatars, VariantBasic:
		return v, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantAvatars, VariantBasic)
	}
}

// Plan holds every identifier allocated for one run
type Plan struct {
	Users    [UserCount]bson.ObjectID
	Boxes    [BoxCount]bson.ObjectID
	Messages [MessageCount]bson.ObjectID
	Avatars  [AvatarCount]bson.ObjectID
	Chunks   [AvatarCount]bson.ObjectID
}

// NewPlan allocates fresh object IDs for a run
func NewPlan() Plan {
	return NewPlanWith(bson.NewObjectID)
}

// NewPlanWith allocates identifiers using next, in a fixed order:
// users, boxes, messages, avatars, chunks.
func NewPlanWith(next func() bson.ObjectID) Plan {
	var p Plan
	for i := range p.Users {
		p.Users[i] = next()
	}
	for i := range p.Boxes {
		p.Boxes[i] = next()
	}
	for i := range p.Messages {
		p.Messages[i] = next()
	}
	for i := range p.Avatars {
		p.Avatars[i] = next()
	}
	for i := range p.Chunks {
		p.Chunks[i] = next()
	}
	return p
}
