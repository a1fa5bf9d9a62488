package solvecall

import (
	"sync"
)

// DefaultCapacity bounds the in-memory call history.
const DefaultCapacity = 1000

// Store keeps recent solve calls in a bounded in-memory ring.
// Oldest records are dropped once capacity is reached.
type Store struct {
	mu       sync.RWMutex
	calls    []Call
	start    int
	count    int
	capacity int
}

// NewStore creates a store holding up to capacity calls.
// A capacity of zero or less uses DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		calls:    make([]Call, capacity),
		capacity: capacity,
	}
}

// Record appends a call, evicting the oldest when full.
func (s *Store) Record(call *Call) {
	if call == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := (s.start + s.count) % s.capacity
	s.calls[idx] = *call
	if s.count < s.capacity {
		s.count++
	} else {
		s.start = (s.start + 1) % s.capacity
	}
}

// Get retrieves a single call by ID. Returns nil if not found.
func (s *Store) Get(id string) *Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 0; i < s.count; i++ {
		c := s.calls[(s.start+i)%s.capacity]
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// QueryFilter specifies filters for listing calls.
type QueryFilter struct {
	Provider string
	Success  *bool
	Limit    int
}

// List retrieves calls matching the filter, newest first.
func (s *Store) List(filter QueryFilter) []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Call, 0, s.count)
	for i := s.count - 1; i >= 0; i-- {
		c := s.calls[(s.start+i)%s.capacity]
		if filter.Provider != "" && c.Provider != filter.Provider {
			continue
		}
		if filter.Success != nil && c.Success != *filter.Success {
			continue
		}
		result = append(result, c)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result
}

// Len returns the number of stored calls.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
