package flatten

import "sync"

// ProgramCache stores compiled filter programs keyed by engine and
// expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MemoryProgramCache is an unbounded, concurrency-safe ProgramCache.
type MemoryProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewMemoryProgramCache constructs an empty cache.
func NewMemoryProgramCache() *MemoryProgramCache {
	return &MemoryProgramCache{programs: map[string]any{}}
}

func (c *MemoryProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.programs[key]
	return value, ok
}

func (c *MemoryProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = map[string]any{}
	}
	c.programs[key] = value
}

// Len reports the number of cached programs.
func (c *MemoryProgramCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}
