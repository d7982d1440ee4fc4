package backend

import (
	"context"

	"finboard/internal/store"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// BackendResult is an opened backend.
type BackendResult struct {
	Store      store.Store
	Categories store.CategoryReader
	Cleanup    CleanupFunc
}

// Close runs Cleanup if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	// Migrate prepares the backend schema: sqlite migrations or Mongo
	// indexes. The memory backend has nothing to do.
	Migrate(ctx context.Context, config Config) error
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath string

	MongoURI      string
	MongoDatabase string

	// SeedDir holds seed_categories.txt for the memory backend.
	SeedDir string
}

// BackendType names a storage backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	MongoBackend  BackendType = "mongo"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, MongoBackend:
		return true
	default:
		return false
	}
}
