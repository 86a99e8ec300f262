package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codelayers/strata/pkg/layer"
)

// entryExt is the cache entry file extension.
const entryExt = ".slr"

// dirMode and fileMode are the permissions for cache entries.
const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Store is a content-addressed, on-disk classification cache with an
// in-memory front. Entries are immutable: the key is the digest of the
// exact source bytes, so a hit can never be stale.
type Store struct {
	dir string
	mem *MemoryCache
}

// NewStore opens (creating if needed) a cache rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}

	return &Store{dir: dir, mem: NewMemoryCache(DefaultMemoryCacheSize)}, nil
}

// Key returns the content digest used to address src.
func Key(src []byte) string {
	sum := sha256.Sum256(src)

	return hex.EncodeToString(sum[:])
}

func (s *Store) path(key string) string {
	// Two-level fanout keeps directories small on big trees.
	return filepath.Join(s.dir, key[:2], key+entryExt)
}

// Get returns the cached regions for src, or ok=false on a miss. A
// corrupt entry reads as a miss; the next Put overwrites it.
func (s *Store) Get(src []byte) ([]layer.Region, bool) {
	key := Key(src)

	data := s.mem.Get(key)
	if data == nil {
		var err error

		data, err = os.ReadFile(s.path(key))
		if err != nil {
			return nil, false
		}

		s.mem.Put(key, data)
	}

	regions, err := DecodeRegions(data)
	if err != nil {
		return nil, false
	}

	return regions, true
}

// MemoryStats reports the in-memory front's counters.
func (s *Store) MemoryStats() MemoryStats {
	return s.mem.Stats()
}

// Put stores the regions for src.
func (s *Store) Put(src []byte, regions []layer.Region) error {
	data, err := EncodeRegions(regions)
	if err != nil {
		return err
	}

	key := Key(src)
	s.mem.Put(key, data)

	path := s.path(key)

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("cache: create fanout dir: %w", err)
	}

	// Write-then-rename keeps concurrent readers from seeing a torn
	// entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("cache: write entry: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cache: commit entry: %w", err)
	}

	return nil
}
