// Package service implements the fixture loading workflow for hollow.
//
// SeederService owns the linear load sequence: drop the variant's
// collections, build the record graph from a fresh identifier plan, bulk
// insert one batch per collection in dependency order, then count what
// landed. The same service verifies a loaded database by reading every
// collection back and resolving each cross-reference.
//
// # Store Interface
//
// The service depends only on database.Store, so any backend (MongoDB,
// SurrealDB, SQLite, or the in-memory store used in tests) can be seeded:
//
//	svc, err := NewSeederService(SeederConfig{
//	    Store:   store,
//	    Variant: fixtures.VariantAvatars,
//	    Logger:  slog.Default(),
//	})
//	result, err := svc.Load(ctx)
//
// # Error Handling
//
// Store failures are returned wrapped with the step that failed. Nothing is
// retried or rolled back: a failed load leaves whatever was already written.
// Verification failures wrap ErrVerification and join every violation found:
//
//	if errors.Is(err, service.ErrVerification) {
//	    // the database does not hold a consistent fixture set
//	}
package service
