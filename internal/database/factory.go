package database

import "fmt"

// New creates the Store selected by cfg.Backend. The store is not yet
// connected; call Connect before use.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMongo:
		if cfg.URI == "" {
			return nil, fmt.Errorf("mongo backend requires a URI")
		}
		return NewMongoStore(cfg), nil
	case BackendSurreal:
		if cfg.Host == "" || cfg.Port == "" {
			return nil, fmt.Errorf("surreal backend requires host and port")
		}
		return NewSurrealDB(cfg), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLiteStore(cfg), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: backend %q", ErrUnsupported, cfg.Backend)
	}
}

// Describe returns a human-readable location of the configured database,
// without credentials.
func Describe(cfg Config) string {
	switch cfg.Backend {
	case BackendMongo:
		return fmt.Sprintf("mongo database %q", cfg.Database)
	case BackendSurreal:
		return fmt.Sprintf("surreal %s:%s ns=%q db=%q", cfg.Host, cfg.Port, cfg.Namespace, cfg.Database)
	case BackendSQLite:
		return fmt.Sprintf("sqlite file %q", cfg.Path)
	case BackendMemory:
		return "in-memory store"
	default:
		return string(cfg.Backend)
	}
}
