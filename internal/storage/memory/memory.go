// Package memory provides an in-process implementation of storage.Store.
// Nothing survives a restart. Failure injection makes it the substitute for
// a flaky or full backend in tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mmynk/invoicer/internal/storage"
)

// ErrInjected is returned by operations failed on purpose.
var ErrInjected = errors.New("injected storage failure")

var _ storage.Store = (*Store)(nil)

// Store keeps values in a map.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	sets   int

	failGets bool
	failSets bool
	panics   bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// FailGets makes every subsequent Get fail (or succeed again when false).
func (s *Store) FailGets(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGets = fail
}

// FailSets makes every subsequent Set and Remove fail, like a full quota.
func (s *Store) FailSets(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSets = fail
}

// Panic makes every operation panic instead of returning.
func (s *Store) Panic(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panics = p
}

// Sets returns how many successful Set calls were made.
func (s *Store) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// Raw returns the stored value without failure injection.
func (s *Store) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panics {
		panic("memory store: get " + key)
	}
	if s.failGets {
		return "", ErrInjected
	}
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", storage.ErrKeyNotFound, key)
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panics {
		panic("memory store: set " + key)
	}
	if s.failSets {
		return ErrInjected
	}
	s.values[key] = value
	s.sets++
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panics {
		panic("memory store: remove " + key)
	}
	if s.failSets {
		return ErrInjected
	}
	delete(s.values, key)
	return nil
}

func (s *Store) Close() error {
	return nil
}
