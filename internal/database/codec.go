package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// encodedDoc is a document marshaled to BSON together with its key
type encodedDoc struct {
	key string
	raw bson.Raw
}

// encodeDocument marshals doc to BSON and extracts its _id as a string key.
// Documents without an _id are rejected: every fixture record carries one.
func encodeDocument(doc any) (encodedDoc, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return encodedDoc{}, fmt.Errorf("%w: encode document: %v", ErrQuery, err)
	}
	raw := bson.Raw(data)

	id, err := raw.LookupErr("_id")
	if err != nil {
		return encodedDoc{}, fmt.Errorf("%w: document has no _id", ErrQuery)
	}
	return encodedDoc{key: idKey(id), raw: raw}, nil
}

// idKey renders an _id value as a stable string key
func idKey(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return v.String()
}

// decodeAll decodes raw documents into the slice results points to, using
// the driver's cursor so every backend decodes exactly as MongoStore.Find does.
func decodeAll(ctx context.Context, raws []bson.Raw, results any) error {
	docs := make([]any, len(raws))
	for i, raw := range raws {
		docs[i] = raw
	}

	cursor, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("%w: decode documents: %v", ErrQuery, err)
	}
	return nil
}
