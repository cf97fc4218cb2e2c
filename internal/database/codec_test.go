package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestDecodeAll(t *testing.T) {
	ctx := context.Background()
	a := newTestDoc("a")
	b := newTestDoc("b")

	ea, err := encodeDocument(a)
	require.NoError(t, err)
	eb, err := encodeDocument(b)
	require.NoError(t, err)
	assert.Equal(t, a.ID.Hex(), ea.key)

	var got []testDoc
	require.NoError(t, decodeAll(ctx, []bson.Raw{ea.raw, eb.raw}, &got))
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, "b", got[1].Name)
}

func TestDecodeAll_Empty(t *testing.T) {
	got := []testDoc{newTestDoc("stale")}
	require.NoError(t, decodeAll(context.Background(), nil, &got))
	assert.Empty(t, got)
}

func TestDecodeAll_RequiresSlicePointer(t *testing.T) {
	e, err := encodeDocument(newTestDoc("a"))
	require.NoError(t, err)

	var single testDoc
	err = decodeAll(context.Background(), []bson.Raw{e.raw}, &single)
	assert.ErrorIs(t, err, ErrQuery)
}
