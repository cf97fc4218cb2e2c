// Package testdb provides test store utilities for the hollow fixture loader.
//
// The testdb package hands each test a connected store with automatic
// cleanup.
//
// # Test Store Setup
//
// Create a test store for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.Store for database operations
//	}
//
// # Backends
//
// TEST_DB_BACKEND selects the backend (default memory). Live backends read
// TEST_MONGO_URI, or TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD for SurrealDB.
//
// # Isolation
//
// Each test gets an isolated database:
//
//	func TestA(t *testing.T) {
//	    tdb := testdb.New(t) // mongo database test_1712_1
//	}
//
//	func TestB(t *testing.T) {
//	    tdb := testdb.New(t) // mongo database test_1712_2
//	}
//
// SurrealDB isolates by namespace and SQLite by a file in t.TempDir().
//
// # Timeout Context
//
//	ctx := tdb.Ctx() // 10 second timeout
package testdb
