package bibleapi

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

// FileCache keeps raw API responses on disk, one JSON file per key.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(key string) string {
	return filepath.Join(f.rootDir, key+".json")
}

// cache returns the stored contents for key, or calls fetch and stores its
// result. A failed write still returns the fetched contents.
func (f *FileCache) cache(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if contents, err := f.read(key); err == nil {
		return contents, nil
	}

	contents, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("fetch(%s) > %w", key, err)
	}

	if err := os.MkdirAll(f.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(f.filePath(key))
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (f *FileCache) read(key string) ([]byte, error) {
	file, err := os.Open(f.filePath(key))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}

type memoryEntry struct {
	verse     Verse
	expiresAt time.Time
}

// memoryCache is an LRU bounded by entry count whose entries also expire.
type memoryCache struct {
	mu  sync.Mutex
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func newMemoryCache(size int, ttl time.Duration) *memoryCache {
	return &memoryCache{
		lru: lru.New(size),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *memoryCache) get(key string) (Verse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.lru.Get(key)
	if !ok {
		return Verse{}, false
	}
	entry := value.(memoryEntry)
	if !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return Verse{}, false
	}
	return entry.verse, true
}

func (c *memoryCache) add(key string, verse Verse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, memoryEntry{
		verse:     verse,
		expiresAt: c.now().Add(c.ttl),
	})
}

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
