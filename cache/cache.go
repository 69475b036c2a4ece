package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/yangnim21029/pagelens/models"
)

// entry holds a cached audit response with its creation timestamp.
type entry struct {
	response  *models.AuditResponse
	createdAt time.Time
}

// Cache is a simple in-memory cache for audit responses.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a new Cache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict expired entries
// (older than 1 hour).
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}

	go c.cleanupLoop()
	return c
}

// Key derives a cache key from everything that changes the audit result:
// the page URL, the submitted HTML, the keywords, and the selector options.
// Pass html as "" when the URL is the content identity (the fetch-by-URL
// path, where the document is not known before fetching).
func Key(url, html, focusKeyword string, relatedKeywords []string, opts models.AuditOptions) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte("|"))
	h.Write([]byte(html))
	h.Write([]byte("|"))
	h.Write([]byte(focusKeyword))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(relatedKeywords, ",")))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(opts.ContentSelectors, ",")))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(opts.ExcludeSelectors, ",")))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(opts.Assessments, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response if it exists and is younger than maxAge.
// maxAge is in milliseconds. If maxAge <= 0, no cache lookup is performed.
// The returned response is the caller's own shallow copy, so per-request
// fields can be set on it while other requests encode the same entry.
func (c *Cache) Get(key string, maxAgeMs int) (*models.AuditResponse, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	maxAge := time.Duration(maxAgeMs) * time.Millisecond
	if time.Since(e.createdAt) > maxAge {
		return nil, false
	}

	cp := *e.response
	return &cp, true
}

// Set stores a shallow copy of the response. The caller keeps ownership of
// resp and may keep mutating it. If the cache is at capacity, a random entry
// is evicted to make room.
func (c *Cache) Set(key string, resp *models.AuditResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	cp := *resp
	c.store[key] = &entry{
		response:  &cp,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
