package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/forgo/hollow/seed/internal/database"
	"github.com/forgo/hollow/seed/internal/fixtures"
	"github.com/forgo/hollow/seed/internal/model"
)

// SeederService loads the hollow fixture set into a store
type SeederService struct {
	store   database.Store
	variant fixtures.Variant
	clock   func() time.Time
	newPlan func() fixtures.Plan
	logger  *slog.Logger
}

// SeederConfig holds dependencies for the seeder service
type SeederConfig struct {
	Store   database.Store
	Variant fixtures.Variant
	// Clock supplies the timestamp shared by every record of a run. Defaults to time.Now.
	Clock func() time.Time
	// NewPlan allocates the run's identifiers. Defaults to fixtures.NewPlan.
	NewPlan func() fixtures.Plan
	Logger  *slog.Logger
}

// CollectionCount is the number of documents in one collection
type CollectionCount struct {
	Collection string `json:"collection"`
	Count      int64  `json:"count"`
}

// SeedResult contains the results of a load
type SeedResult struct {
	RunID    string            `json:"run_id"`
	Variant  fixtures.Variant  `json:"variant"`
	Counts   []CollectionCount `json:"counts"`
	Duration int64             `json:"duration_ms"`
}

// NewSeederService creates a new seeder service
func NewSeederService(cfg SeederConfig) (*SeederService, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}

	variant := fixtures.VariantAvatars
	if cfg.Variant != "" {
		v, err := fixtures.ParseVariant(string(cfg.Variant))
		if err != nil {
			return nil, err
		}
		variant = v
	}

	s := &SeederService{
		store:   cfg.Store,
		variant: variant,
		clock:   cfg.Clock,
		newPlan: cfg.NewPlan,
		logger:  cfg.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newPlan == nil {
		s.newPlan = fixtures.NewPlan
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Variant returns the fixture variant this service loads
func (s *SeederService) Variant() fixtures.Variant {
	return s.variant
}

// Load replaces the variant's collections with a freshly built fixture set
// and returns the resulting document counts. Running it twice leaves the
// same counts; identifiers differ between runs.
func (s *SeederService) Load(ctx context.Context) (*SeedResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID, "variant", string(s.variant))

	collections := fixtures.Collections(s.variant)
	log.Info("dropping collections", "collections", collections)
	if err := s.store.Drop(ctx, collections...); err != nil {
		return nil, fmt.Errorf("drop collections: %w", err)
	}

	set := fixtures.Build(s.newPlan(), s.variant, s.clock())

	for _, batch := range set.Batches() {
		if err := s.store.InsertMany(ctx, batch.Collection, batch.Documents); err != nil {
			return nil, fmt.Errorf("insert %s: %w", batch.Collection, err)
		}
		log.Debug("inserted batch", "collection", batch.Collection, "documents", len(batch.Documents))
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}

	result := &SeedResult{
		RunID:    runID,
		Variant:  s.variant,
		Counts:   counts,
		Duration: time.Since(start).Milliseconds(),
	}
	log.Info("fixtures loaded", "duration_ms", result.Duration)
	return result, nil
}

// Counts returns the document count of each of the variant's collections,
// in insert order
func (s *SeederService) Counts(ctx context.Context) ([]CollectionCount, error) {
	collections := fixtures.Collections(s.variant)
	counts := make([]CollectionCount, 0, len(collections))
	for _, name := range collections {
		n, err := s.store.Count(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts = append(counts, CollectionCount{Collection: name, Count: n})
	}
	return counts, nil
}

// Verify reads the loaded fixtures back and checks counts, cross-references
// and blob contents. Every violation found is reported in one error wrapping
// ErrVerification. Store failures are returned as-is.
func (s *SeederService) Verify(ctx context.Context) error {
	var problems []error

	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	expected := fixtures.ExpectedCounts(s.variant)
	for _, c := range counts {
		if want := expected[c.Collection]; c.Count != want {
			problems = append(problems, fmt.Errorf("%s: expected %d documents, found %d", c.Collection, want, c.Count))
		}
	}

	var (
		users    []model.User
		boxes    []model.Box
		messages []model.Message
	)
	if err := s.store.Find(ctx, model.CollectionUsers, &users); err != nil {
		return fmt.Errorf("read %s: %w", model.CollectionUsers, err)
	}
	if err := s.store.Find(ctx, model.CollectionBoxes, &boxes); err != nil {
		return fmt.Errorf("read %s: %w", model.CollectionBoxes, err)
	}
	if err := s.store.Find(ctx, model.CollectionMessages, &messages); err != nil {
		return fmt.Errorf("read %s: %w", model.CollectionMessages, err)
	}

	userIDs := idSet(users, func(u model.User) bson.ObjectID { return u.ID })
	boxIDs := idSet(boxes, func(b model.Box) bson.ObjectID { return b.ID })

	for _, b := range boxes {
		if !userIDs[b.OwnerID] {
			problems = append(problems, fmt.Errorf("box %s: owner %s not found", b.ID.Hex(), b.OwnerID.Hex()))
		}
	}
	for _, m := range messages {
		problems = append(problems, checkMessage(m, userIDs, boxIDs)...)
	}

	if s.variant == fixtures.VariantAvatars {
		avatarProblems, err := s.verifyAvatars(ctx, users)
		if err != nil {
			return err
		}
		problems = append(problems, avatarProblems...)
	} else {
		for _, u := range users {
			if u.HasAvatar() {
				problems = append(problems, fmt.Errorf("user %s: unexpected avatar in %s variant", u.ID.Hex(), s.variant))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrVerification, errors.Join(problems...))
	}
	s.logger.Info("fixtures verified", "variant", string(s.variant))
	return nil
}

func checkMessage(m model.Message, userIDs, boxIDs map[bson.ObjectID]bool) []error {
	var problems []error
	if !boxIDs[m.BoxID] {
		problems = append(problems, fmt.Errorf("message %s: box %s not found", m.ID.Hex(), m.BoxID.Hex()))
	}
	switch {
	case m.IsAnonymous && m.HasSender():
		problems = append(problems, fmt.Errorf("message %s: anonymous message has sender %s", m.ID.Hex(), m.SenderID.Hex()))
	case !m.IsAnonymous && !m.HasSender():
		problems = append(problems, fmt.Errorf("message %s: missing sender", m.ID.Hex()))
	case m.HasSender() && !userIDs[*m.SenderID]:
		problems = append(problems, fmt.Errorf("message %s: sender %s not found", m.ID.Hex(), m.SenderID.Hex()))
	}
	if m.LikeCount < 0 {
		problems = append(problems, fmt.Errorf("message %s: negative like count %d", m.ID.Hex(), m.LikeCount))
	}
	for _, liker := range m.LikedBy {
		if !userIDs[liker] {
			problems = append(problems, fmt.Errorf("message %s: liked by unknown user %s", m.ID.Hex(), liker.Hex()))
		}
	}
	return problems
}

// verifyAvatars checks that every user's avatar resolves to a blob whose
// content is exactly its declared length
func (s *SeederService) verifyAvatars(ctx context.Context, users []model.User) ([]error, error) {
	var (
		blobs  []model.Blob
		chunks []model.Chunk
	)
	if err := s.store.Find(ctx, model.CollectionFiles, &blobs); err != nil {
		return nil, fmt.Errorf("read %s: %w", model.CollectionFiles, err)
	}

	reader, native := s.store.(database.BlobReader)
	if !native {
		if err := s.store.Find(ctx, model.CollectionChunks, &chunks); err != nil {
			return nil, fmt.Errorf("read %s: %w", model.CollectionChunks, err)
		}
	}

	var problems []error
	blobIDs := idSet(blobs, func(b model.Blob) bson.ObjectID { return b.ID })
	for _, u := range users {
		switch {
		case !u.HasAvatar():
			problems = append(problems, fmt.Errorf("user %s: missing avatar", u.ID.Hex()))
		case !blobIDs[*u.Avatar]:
			problems = append(problems, fmt.Errorf("user %s: avatar %s not found", u.ID.Hex(), u.Avatar.Hex()))
		}
	}

	for _, b := range blobs {
		var size int64
		if native {
			n, err := reader.ReadBlob(ctx, b.ID, io.Discard)
			if err != nil {
				problems = append(problems, fmt.Errorf("blob %s: %w", b.ID.Hex(), err))
				continue
			}
			size = n
		} else {
			data, err := model.Assemble(b.ID, chunks)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			size = int64(len(data))
		}
		if size != b.Length {
			problems = append(problems, fmt.Errorf("blob %s: declared length %d, content is %d bytes", b.ID.Hex(), b.Length, size))
		}
	}
	return problems, nil
}

func idSet[T any](records []T, id func(T) bson.ObjectID) map[bson.ObjectID]bool {
	set := make(map[bson.ObjectID]bool, len(records))
	for _, r := range records {
		set[id(r)] = true
	}
	return set
}
