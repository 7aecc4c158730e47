package sink

import (
	"context"
	"sync"

	flatten "github.com/goliatone/go-flatten"
)

// MemorySink keeps records in memory. It is intended for tests and
// examples.
type MemorySink struct {
	mu      sync.RWMutex
	records []flatten.Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write appends copies of records.
func (s *MemorySink) Write(_ context.Context, records []flatten.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.records = append(s.records, cloneRecord(record))
	}
	return len(records), nil
}

// Records returns copies of everything written so far.
func (s *MemorySink) Records() []flatten.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]flatten.Record, len(s.records))
	for i, record := range s.records {
		out[i] = cloneRecord(record)
	}
	return out
}

func cloneRecord(record flatten.Record) flatten.Record {
	if record == nil {
		return nil
	}
	out := make(flatten.Record, len(record))
	for key, value := range record {
		out[key] = value
	}
	return out
}
