package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type testDoc struct {
	ID      bson.ObjectID   `bson:"_id"`
	Name    string          `bson:"name"`
	Parent  *bson.ObjectID  `bson:"parent,omitempty"`
	Refs    []bson.ObjectID `bson:"refs"`
	Data    []byte          `bson:"data"`
	Count   int             `bson:"count"`
	Created time.Time       `bson:"created"`
}

func newTestDoc(name string) testDoc {
	return testDoc{
		ID:      bson.NewObjectID(),
		Name:    name,
		Refs:    []bson.ObjectID{},
		Data:    []byte{0x89, 'P', 'N', 'G'},
		Count:   3,
		Created: time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC),
	}
}

// runStoreContract exercises the behaviour every Store backend shares
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, store.Ping(ctx))
	})

	t.Run("count of missing collection is zero", func(t *testing.T) {
		n, err := store.Count(ctx, "nothing_here")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("insert and find round trip", func(t *testing.T) {
		require.NoError(t, store.Drop(ctx, "things"))

		parent := bson.NewObjectID()
		a := newTestDoc("a")
		a.Parent = &parent
		a.Refs = []bson.ObjectID{parent}
		b := newTestDoc("b")

		require.NoError(t, store.InsertMany(ctx, "things", []any{a, b}))

		n, err := store.Count(ctx, "things")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		var got []testDoc
		require.NoError(t, store.Find(ctx, "things", &got))
		require.Len(t, got, 2)

		byName := map[string]testDoc{got[0].Name: got[0], got[1].Name: got[1]}
		require.Contains(t, byName, "a")
		require.Contains(t, byName, "b")

		gotA := byName["a"]
		assert.Equal(t, a.ID, gotA.ID)
		require.NotNil(t, gotA.Parent)
		assert.Equal(t, parent, *gotA.Parent)
		assert.Equal(t, []bson.ObjectID{parent}, gotA.Refs)
		assert.Equal(t, a.Data, gotA.Data)
		assert.Equal(t, 3, gotA.Count)
		assert.True(t, a.Created.Equal(gotA.Created), "created: want %v got %v", a.Created, gotA.Created)

		assert.Nil(t, byName["b"].Parent)
		assert.Empty(t, byName["b"].Refs)
	})

	t.Run("dotted collection names", func(t *testing.T) {
		require.NoError(t, store.Drop(ctx, "fs.files"))
		require.NoError(t, store.InsertMany(ctx, "fs.files", []any{newTestDoc("f")}))

		n, err := store.Count(ctx, "fs.files")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("drop empties collections", func(t *testing.T) {
		require.NoError(t, store.InsertMany(ctx, "drop_a", []any{newTestDoc("x")}))
		require.NoError(t, store.InsertMany(ctx, "drop_b", []any{newTestDoc("y")}))

		require.NoError(t, store.Drop(ctx, "drop_a", "drop_b", "never_existed"))

		for _, name := range []string{"drop_a", "drop_b"} {
			n, err := store.Count(ctx, name)
			require.NoError(t, err)
			assert.Zero(t, n, name)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		require.NoError(t, store.Drop(ctx, "dups"))
		doc := newTestDoc("dup")
		require.NoError(t, store.InsertMany(ctx, "dups", []any{doc}))

		err := store.InsertMany(ctx, "dups", []any{doc})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("invalid collection name", func(t *testing.T) {
		err := store.InsertMany(ctx, "bad`name", []any{newTestDoc("z")})
		assert.ErrorIs(t, err, ErrUnsupported)

		_, err = store.Count(ctx, "")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("find requires slice pointer", func(t *testing.T) {
		var notSlice testDoc
		err := store.Find(ctx, "things", &notSlice)
		assert.Error(t, err)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Connect(context.Background()))
	defer store.Close()

	runStoreContract(t, store)
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := NewSQLiteStore(Config{
		Backend:        BackendSQLite,
		Path:           filepath.Join(t.TempDir(), "nested", "hollow.db"),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, store.Connect(context.Background()))
	defer store.Close()

	runStoreContract(t, store)
}

func TestMemoryStore_DuplicateWithinBatchLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := newTestDoc("same")
	err := store.InsertMany(ctx, "things", []any{newTestDoc("other"), doc, doc})
	assert.ErrorIs(t, err, ErrDuplicate)

	n, err := store.Count(ctx, "things")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStore_ClosedStoreFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Ping(ctx), ErrConnection)
	assert.ErrorIs(t, store.InsertMany(ctx, "things", []any{newTestDoc("a")}), ErrConnection)

	require.NoError(t, store.Connect(ctx))
	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStore_RejectsDocumentWithoutID(t *testing.T) {
	store := NewMemoryStore()
	err := store.InsertMany(context.Background(), "things", []any{bson.D{{Key: "name", Value: "no id"}}})
	assert.ErrorIs(t, err, ErrQuery)
}

func TestSQLiteStore_UnconnectedFails(t *testing.T) {
	store := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "x.db")})

	assert.ErrorIs(t, store.Ping(context.Background()), ErrConnection)
	_, err := store.Count(context.Background(), "users")
	assert.ErrorIs(t, err, ErrConnection)
	assert.NoError(t, store.Close())
}

func TestMemoryStore_DropHonoursCancelledContext(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.InsertMany(context.Background(), "users", []any{newTestDoc("a")}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Drop(ctx, "users"), context.Canceled)

	n, err := store.Count(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLiteStore_DuplicateRollsBackBatch(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "dup.db")})
	require.NoError(t, store.Connect(ctx))
	defer func() { _ = store.Close() }()

	doc := newTestDoc("same")
	err := store.InsertMany(ctx, "things", []any{newTestDoc("other"), doc, doc})
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), doc.ID.Hex())

	n, err := store.Count(ctx, "things")
	require.NoError(t, err)
	assert.Zero(t, n)
}
