package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Cache stores fetched audio on disk keyed by the word.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// NewCache creates a cache rooted at dir.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

func cacheKey(word string) string {
	h := sha256.Sum256([]byte("en:" + strings.ToLower(strings.TrimSpace(word))))
	return hex.EncodeToString(h[:16])
}

// Path returns the file holding the audio for word, fetching it when it is
// not cached yet. Failed fetches are not cached.
func (c *Cache) Path(ctx context.Context, word string, f Fetcher) (string, error) {
	path := filepath.Join(c.dir, cacheKey(word)+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data, err := f.Audio(ctx, word)
	if err != nil {
		return "", fmt.Errorf("fetch audio for %q: %w", word, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("fetch audio for %q: empty stream", word)
	}

	tmp, err := os.CreateTemp(c.dir, ".audio-*")
	if err != nil {
		return "", fmt.Errorf("cache audio: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("cache audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("cache audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("cache audio: %w", err)
	}
	return path, nil
}
