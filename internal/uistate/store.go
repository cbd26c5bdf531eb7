// Package uistate holds the persisted, per-client UI state of the docs shell:
// which nav groups are expanded, whether the sidebar is hidden and the
// preferred code-sample language.
package uistate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fixed storage keys.
const (
	KeyNav      = "nav"
	KeySidebar  = "sidebar"
	KeyLanguage = "language"
)

// Backend persists raw values per scope and key.
type Backend interface {
	Load(ctx context.Context, scope, key string) ([]byte, bool, error)
	Save(ctx context.Context, scope, key string, value []byte) error
}

// Change describes one persisted write.
type Change struct {
	Scope string          `json:"scope"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Store is the state container for one scope. Set persists synchronously
// and then notifies subscribers; reads never write.
type Store struct {
	backend Backend
	scope   string
	hub     *Hub

	mu   sync.Mutex
	subs map[int]func(Change)
	next int
}

// New returns a Store for scope. hub may be nil.
func New(backend Backend, scope string, hub *Hub) *Store {
	return &Store{
		backend: backend,
		scope:   scope,
		hub:     hub,
		subs:    make(map[int]func(Change)),
	}
}

// Scope returns the namespace this store reads and writes.
func (s *Store) Scope() string {
	return s.scope
}

// Get decodes the value stored under key into v. found is false when
// nothing has been stored yet, in which case v is left untouched.
func (s *Store) Get(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := s.backend.Load(ctx, s.scope, key)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Set persists v under key and notifies subscribers once the write is durable.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	if err := s.backend.Save(ctx, s.scope, key, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("saving %s: %w", key, err)
	}
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	change := Change{Scope: s.scope, Key: key, Value: data}
	for _, fn := range subs {
		fn(change)
	}
	if s.hub != nil {
		s.hub.Publish(change)
	}
	return nil
}

// Subscribe registers fn for every subsequent Set on this store. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
