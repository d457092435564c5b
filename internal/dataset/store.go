package dataset

import (
	"sync"
)

// Store holds the process-wide dataset. It is written once at startup and
// only read afterwards.
type Store struct {
	mu sync.RWMutex
	ds *Dataset
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Init publishes the dataset. It fails if a dataset was already published.
func (s *Store) Init(ds *Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ds != nil {
		return ErrAlreadyLoaded
	}
	s.ds = ds
	return nil
}

// Get returns the published dataset.
func (s *Store) Get() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ds == nil {
		return nil, ErrNotLoaded
	}
	return s.ds, nil
}

// Loaded reports whether Init has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds != nil
}
