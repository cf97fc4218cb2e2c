package database

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// quoteIdent escapes a table name for SurrealQL. Names are validated by
// checkCollection first, so they never contain a backtick.
func quoteIdent(name string) string {
	return "`" + name + "`"
}

// toRecord converts a bson-tagged document into a SurrealDB record.
// _id becomes the record key "id"; object IDs become hex strings.
func toRecord(doc any) (map[string]any, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %v", ErrQuery, err)
	}

	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrQuery, err)
	}
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrQuery)
	}

	rec := make(map[string]any, len(d))
	for _, e := range d {
		key := e.Key
		if key == "_id" {
			key = "id"
		}
		rec[key] = toSurrealValue(e.Value)
	}
	if _, ok := rec["id"]; !ok {
		return nil, fmt.Errorf("%w: document has no _id", ErrQuery)
	}
	return rec, nil
}

func toSurrealValue(v any) any {
	switch x := v.(type) {
	case bson.ObjectID:
		return x.Hex()
	case bson.DateTime:
		return models.CustomDateTime{Time: x.Time().UTC()}
	case time.Time:
		return models.CustomDateTime{Time: x.UTC()}
	case bson.Binary:
		return x.Data
	case bson.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toSurrealValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = toSurrealValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = toSurrealValue(item)
		}
		return out
	default:
		return v
	}
}

// fromRecord converts a SurrealDB record back into a BSON document.
// The record key becomes _id; hex strings decode into object ID fields.
func fromRecord(rec map[string]any) bson.D {
	d := make(bson.D, 0, len(rec))
	if id, ok := rec["id"]; ok {
		d = append(d, bson.E{Key: "_id", Value: recordKey(id)})
	}
	for k, v := range rec {
		if k == "id" {
			continue
		}
		d = append(d, bson.E{Key: k, Value: fromSurrealValue(v)})
	}
	return d
}

// recordKey extracts the key part of a record ID
func recordKey(v any) any {
	switch x := v.(type) {
	case models.RecordID:
		return fmt.Sprint(x.ID)
	case *models.RecordID:
		if x == nil {
			return nil
		}
		return fmt.Sprint(x.ID)
	case string:
		// table:key form
		if i := strings.IndexByte(x, ':'); i >= 0 {
			return strings.Trim(x[i+1:], "⟨⟩`")
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

func fromSurrealValue(v any) any {
	switch x := v.(type) {
	case models.CustomDateTime:
		return x.Time.UTC()
	case *models.CustomDateTime:
		if x == nil {
			return nil
		}
		return x.Time.UTC()
	case []any:
		out := make(bson.A, len(x))
		for i, item := range x {
			out[i] = fromSurrealValue(item)
		}
		return out
	case map[string]any:
		out := make(bson.D, 0, len(x))
		for k, item := range x {
			out = append(out, bson.E{Key: k, Value: fromSurrealValue(item)})
		}
		return out
	case map[any]any:
		out := make(bson.D, 0, len(x))
		for k, item := range x {
			out = append(out, bson.E{Key: fmt.Sprint(k), Value: fromSurrealValue(item)})
		}
		return out
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	default:
		return v
	}
}

// toInt64 converts a numeric query result
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: count %d overflows int64", ErrQuery, n)
		}
		return int64(n), nil
	case float64:
		return int64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unexpected count type %T", ErrQuery, v)
	}
}

// isSurrealDuplicate reports whether err is a record-already-exists failure
func isSurrealDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists")
}
