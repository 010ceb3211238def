// Package passport persists user profile images as PNG blobs on the
// filesystem, keyed by a hash of the username.
package passport

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/techbay/auth-backend/internal/apperr"
)

// Store reads and writes passport blobs under a single directory. There is
// no locking; concurrent writes to the same key are last-write-wins.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create passport directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// KeyFor returns the stable blob key for a username. It is a lookup key, not
// a capability: anyone with filesystem access can enumerate it.
func KeyFor(username string) string {
	sum := sha256.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}

// Write persists png bytes for username, overwriting any existing blob.
func (s *Store) Write(username string, data []byte) error {
	if err := os.WriteFile(s.path(username), data, 0644); err != nil {
		return apperr.Newf(apperr.Validation, "Error writing passport. %v", err)
	}
	return nil
}

// Read returns the stored blob for username. Callers must re-sniff the bytes
// before serving them as PNG.
func (s *Store) Read(username string) ([]byte, error) {
	data, err := os.ReadFile(s.path(username))
	if err != nil {
		return nil, apperr.Newf(apperr.Validation, "Error reading passport. %v", err)
	}
	return data, nil
}

func (s *Store) path(username string) string {
	return filepath.Join(s.dir, KeyFor(username)+".png")
}
