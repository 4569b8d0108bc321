package overflow

import (
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/akyairhashvil/notifit/internal/models"
)

type cacheKey [blake2b.Size256]byte

func newCacheKey(fontID string, n models.Notification) cacheKey {
	h, _ := blake2b.New256(nil)
	image := "0"
	if n.IncludeImage {
		image = "1"
	}
	for _, part := range []string{fontID, string(n.Level), image, n.Title, n.Description} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	var k cacheKey
	copy(k[:], h.Sum(nil))
	return k
}

// Cache remembers measurements keyed by font and every input that affects
// layout. It is dropped wholesale once it reaches its capacity.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]Measurement
	limit   int
	hits    int
	misses  int
}

func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = 1024
	}
	return &Cache{entries: make(map[cacheKey]Measurement), limit: limit}
}

func (c *Cache) get(k cacheKey) (Measurement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.entries[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

func (c *Cache) put(k cacheKey, m Measurement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.limit {
		c.entries = make(map[cacheKey]Measurement)
	}
	c.entries[k] = m
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len is the number of cached measurements.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
