package runtime

import "sync"

// RegexCache provides thread-safe compiled regex caching with FIFO eviction.
// Used by the re capability module, where patterns arrive per call rather
// than once at construction. Lock-free reads via sync.Map.
type RegexCache struct {
	cache   sync.Map   // map[string]*Regex - lock-free reads
	orderMu sync.Mutex // Protects order slice for eviction
	order   []string   // FIFO order for eviction
	size    int
	maxSize int
}

// NewRegexCache creates a cache with the specified max size.
func NewRegexCache(maxSize int) *RegexCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &RegexCache{
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns a compiled regex, compiling and caching if needed.
func (c *RegexCache) Get(pattern string) (*Regex, error) {
	if re, ok := c.cache.Load(pattern); ok {
		return re.(*Regex), nil
	}

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	// Another goroutine might have stored it already.
	if existing, loaded := c.cache.LoadOrStore(pattern, re); loaded {
		return existing.(*Regex), nil
	}

	c.orderMu.Lock()
	c.order = append(c.order, pattern)
	c.size++
	for c.size > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()

	return re, nil
}

// Len returns the number of cached regexes.
func (c *RegexCache) Len() int {
	c.orderMu.Lock()
	n := c.size
	c.orderMu.Unlock()
	return n
}
