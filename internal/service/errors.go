package service

import "errors"

// Service layer errors.
// Callers check these with errors.Is.

// ===== Seeder Errors =====
var (
	ErrStoreRequired = errors.New("store is required")
	ErrVerification  = errors.New("fixture verification failed")
)
