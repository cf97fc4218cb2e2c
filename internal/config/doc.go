// Package config manages configuration for the hollow fixture loader.
//
// Running with no configuration at all reproduces the classic behaviour:
// the avatars fixtures are loaded into the "hollow" database of a MongoDB
// server on localhost.
//
// # Configuration Loading
//
// Sources are merged in order, later ones winning:
//
//	defaults < TOML file < .env file < process environment
//
//	cfg, err := config.Load("hollow-seed.toml")
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - DatabaseConfig: backend selection and connection settings
//   - SeedConfig: fixture variant
//   - LogConfig: slog level and format
//
// # Environment Variables
//
//	DB_BACKEND         - mongo, surreal, sqlite or memory (default: mongo)
//	MONGO_URI          - MongoDB URI (default: mongodb://localhost:27017)
//	DB_NAME            - logical database name (default: hollow)
//	DB_HOST, DB_PORT   - SurrealDB endpoint (default: localhost:8000)
//	DB_NAMESPACE       - SurrealDB namespace (default: hollow)
//	DB_USER            - SurrealDB username (default: root)
//	DB_PASSWORD        - SurrealDB password (default: root)
//	SQLITE_PATH        - SQLite file (default: hollow.db)
//	DB_CONNECT_TIMEOUT - connect timeout (default: 10s)
//	SEED_VARIANT       - avatars or basic (default: avatars)
//	LOG_LEVEL          - debug, info, warn, error (default: info)
//	LOG_FORMAT         - text or json (default: text)
package config
