// Package prefs stores small per-browser flags, such as whether the intro
// tutorial has been finished, keyed by the session cookie.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Flags are the preferences of one browser.
type Flags map[string]bool

type Store interface {
	Get(ctx context.Context, id string) (Flags, bool, error)
	Put(ctx context.Context, id string, f Flags) error
}

type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Flags
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]Flags{}}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Flags, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.m[id]
	return clone(f), ok, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, f Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = clone(f)
	return nil
}

// FileStore keeps every browser's flags in one YAML document. The whole file is
// rewritten on each Put.
type FileStore struct {
	mu   sync.Mutex
	path string
	m    map[string]Flags
}

func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, m: map[string]Flags{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.m); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	if s.m == nil {
		s.m = map[string]Flags{}
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, id string) (Flags, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.m[id]
	return clone(f), ok, nil
}

func (s *FileStore) Put(_ context.Context, id string, f Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = clone(f)
	data, err := yaml.Marshal(s.m)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func clone(f Flags) Flags {
	out := make(Flags, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Session binds a store to one browser. A failed read counts as unset.
type Session struct {
	store Store
	id    string
}

func For(store Store, id string) *Session {
	return &Session{store: store, id: id}
}

func (s *Session) Bool(key string) bool {
	f, _, err := s.store.Get(context.Background(), s.id)
	if err != nil {
		return false
	}
	return f[key]
}

func (s *Session) SetBool(key string, v bool) error {
	ctx := context.Background()
	f, _, err := s.store.Get(ctx, s.id)
	if err != nil {
		return err
	}
	f[key] = v
	return s.store.Put(ctx, s.id, f)
}
