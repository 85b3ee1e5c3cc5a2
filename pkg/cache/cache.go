package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache stores rendered artifacts by key.
//
// Get reports a miss as (nil, false, nil); errors are reserved for a
// backend that could not answer.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// DefaultTTL is how long artifacts are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultDir returns the per-user cache directory, e.g.
// ~/.cache/bluefish on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "bluefish"), nil
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey is the key of one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Background string  `json:"background,omitempty"`
	Bounds     bool    `json:"bounds,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	MaxPasses  int     `json:"max_passes,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the document hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
