package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is a Store held in a map. Failures can be injected with
// FailWrites and FailReads.
type MemoryStore struct {
	mu        sync.Mutex
	data      map[string]string
	writes    int
	readErr   error
	writeErr  error
	failCount int // writes left to fail; negative fails forever
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// FailWrites makes the next n writes return err. n < 0 fails every write
// until FailWrites(0, nil) is called.
func (s *MemoryStore) FailWrites(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCount = n
	s.writeErr = err
}

// FailReads makes every Get return err until cleared with nil.
func (s *MemoryStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// Writes returns the number of successful write calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Snapshot returns a copy of the stored entries.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *MemoryStore) SetMany(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injectedWriteErr(); err != nil {
		return err
	}
	for k, v := range entries {
		s.data[k] = v
	}
	s.writes++
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injectedWriteErr(); err != nil {
		return err
	}
	delete(s.data, key)
	s.writes++
	return nil
}

// injectedWriteErr must be called with mu held.
func (s *MemoryStore) injectedWriteErr() error {
	if s.failCount == 0 || s.writeErr == nil {
		return nil
	}
	if s.failCount > 0 {
		s.failCount--
	}
	return s.writeErr
}
