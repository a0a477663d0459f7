// Package viewmodel holds everything the current page knows: the signed-in
// user, the cached record sets, and the most recent error per collection.
// It is the single shared mutable resource of a page; the subscription
// manager and user-action handlers are its only writers.
package viewmodel

import (
	"sync"

	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
)

// Snapshot is a read-only copy of one collection's state.
//
// Loaded distinguishes "never received a push" from "received an empty set":
// a page renders a loading indicator for the former and an empty state for
// the latter. Err carries the most recent surfaced error, if any; the docs
// then still hold last-known-good data.
type Snapshot struct {
	Docs    []remote.Document
	Loaded  bool
	Err     error
	Version uint64
}

type collectionState struct {
	docs    []remote.Document
	loaded  bool
	err     error
	version uint64
}

// Store is one page's view model. Constructed per page, never a global.
type Store struct {
	mu          sync.RWMutex
	user        *models.User
	collections map[string]*collectionState
	version     uint64
}

func NewStore() *Store {
	return &Store{collections: make(map[string]*collectionState)}
}

// ReplaceCollection swaps the entire named record set in one step. Readers
// either see the previous set or the new one, never a mix. A replace also
// clears any error left by an earlier failed query for that collection.
func (s *Store) ReplaceCollection(name string, docs []remote.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(name)
	st.docs = docs
	st.loaded = true
	st.err = nil
	s.version++
	st.version = s.version
}

// SetCollectionError records a failed query. Last-known-good docs stay in
// place so the page can keep them visible alongside the notice.
func (s *Store) SetCollectionError(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(name)
	st.err = err
	s.version++
	st.version = s.version
}

// SetCurrentUser swaps the cached user. nil means signed out; dependent views
// fall back to their unauthenticated state on the next render.
func (s *Store) SetCurrentUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
	} else {
		copied := *u
		s.user = &copied
	}
	s.version++
}

func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Get returns a snapshot of one collection. The doc slice is copied so later
// replaces can never mutate what a renderer is holding.
func (s *Store) Get(name string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.collections[name]
	if !ok {
		return Snapshot{}
	}
	docs := make([]remote.Document, len(st.docs))
	copy(docs, st.docs)
	return Snapshot{Docs: docs, Loaded: st.loaded, Err: st.err, Version: st.version}
}

// Version increments on every mutation. Render loops use it to skip frames
// where nothing changed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) state(name string) *collectionState {
	st, ok := s.collections[name]
	if !ok {
		st = &collectionState{}
		s.collections[name] = st
	}
	return st
}
