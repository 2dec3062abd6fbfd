package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"docfmt/internal/printer"
)

// Current schema version - increment when snippetPayload format changes.
const snippetCacheSchema uint16 = 1

// SnippetCache stores printed code samples on disk, keyed by a hash of the
// sample text and the printer options. A corrupt or stale entry is a cache
// miss, never an error. Thread-safe for concurrent access.
type SnippetCache struct {
	mu  sync.RWMutex
	dir string
}

type snippetPayload struct {
	Schema    uint16
	Formatted string
}

// OpenSnippetCache opens (creating if needed) a cache directory.
func OpenSnippetCache(dir string) (*SnippetCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("snippet cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snippet cache: %w", err)
	}
	return &SnippetCache{dir: dir}, nil
}

func (c *SnippetCache) entryPath(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".msgpack")
}

// Get returns the cached formatted text for key, if present and readable.
func (c *SnippetCache) Get(key [32]byte) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return "", false
	}
	var payload snippetPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return "", false
	}
	if payload.Schema != snippetCacheSchema {
		return "", false
	}
	return payload.Formatted, true
}

// Put stores formatted text under key. Write failures are reported but a
// caller may safely ignore them; the cache is an optimization only.
func (c *SnippetCache) Put(key [32]byte, formatted string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(snippetPayload{
		Schema:    snippetCacheSchema,
		Formatted: formatted,
	})
	if err != nil {
		return fmt.Errorf("snippet cache: %w", err)
	}
	tmp := c.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("snippet cache: %w", err)
	}
	if err := os.Rename(tmp, c.entryPath(key)); err != nil {
		return fmt.Errorf("snippet cache: %w", err)
	}
	return nil
}

// SnippetKey derives the cache key for a sample under given options.
func SnippetKey(src string, opt printer.Options) [32]byte {
	return sha256.Sum256(fmt.Appendf(nil, "%d|%t|%s", opt.IndentWidth, opt.UseTabs, src))
}

// CachingPrinter wraps a printer with the snippet cache. Errors from the
// underlying printer are never cached; the formatter's fallback handles
// them per call.
type CachingPrinter struct {
	Printer printer.Printer
	Cache   *SnippetCache
}

func (cp CachingPrinter) Format(src string, opt printer.Options) (string, error) {
	if cp.Cache == nil {
		return cp.Printer.Format(src, opt)
	}
	key := SnippetKey(src, opt)
	if formatted, ok := cp.Cache.Get(key); ok {
		return formatted, nil
	}
	formatted, err := cp.Printer.Format(src, opt)
	if err != nil {
		return "", err
	}
	// Best effort: a failed write only costs a future cache miss.
	_ = cp.Cache.Put(key, formatted)
	return formatted, nil
}
