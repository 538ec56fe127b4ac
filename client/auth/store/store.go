package store

import (
	"context"
	"fmt"
	"sync"
)

// Store is a pluggable persistence layer for the session credential.
// The in‑memory default is fine for tests and short-lived tools; use the file or
// secure store to survive restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// SaveCredential replaces the credential keys in a single write, readers
	// never observe an old/new token mix.
	SaveCredential(ctx context.Context, credential *Credential) error
	// LoadCredential returns nil when either token is absent.
	LoadCredential(ctx context.Context) (*Credential, error)
}

// persister backs a memoryStore with durable storage.
type persister interface {
	load(ctx context.Context) (map[string]string, error)
	save(ctx context.Context, values map[string]string) error
	remove(ctx context.Context) error
}

type memoryStore struct {
	mu        sync.RWMutex
	values    map[string]string
	persister persister
}

// NewMemoryStore creates a process-local store.
func NewMemoryStore() Store {
	return &memoryStore{values: map[string]string{}}
}

func newPersistentStore(ctx context.Context, p persister) (*memoryStore, error) {
	values, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}
	return &memoryStore{values: values, persister: p}, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.copyValues()
	next[key] = value
	return m.commit(ctx, next)
}

// Clear drops the durable snapshot before the in-memory one. When the snapshot
// cannot be removed it is overwritten with an empty one; if that fails too the
// previous state stays visible and the error is returned.
func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.persister != nil {
		if err := m.persister.remove(ctx); err != nil {
			if saveErr := m.persister.save(ctx, map[string]string{}); saveErr != nil {
				return fmt.Errorf("failed to clear credential store: %w", err)
			}
		}
	}
	m.values = map[string]string{}
	return nil
}

func (m *memoryStore) SaveCredential(ctx context.Context, credential *Credential) error {
	if !credential.Valid() {
		return ErrIncompleteCredential
	}
	entries, err := credential.entries()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.copyValues()
	delete(next, KeyUser)
	for k, v := range entries {
		next[k] = v
	}
	return m.commit(ctx, next)
}

func (m *memoryStore) LoadCredential(_ context.Context) (*Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return credentialFrom(m.values)
}

func (m *memoryStore) copyValues() map[string]string {
	ret := make(map[string]string, len(m.values)+3)
	for k, v := range m.values {
		ret[k] = v
	}
	return ret
}

// commit persists next before publishing it, so a failed write leaves the
// previous state visible.
func (m *memoryStore) commit(ctx context.Context, next map[string]string) error {
	if m.persister != nil {
		if err := m.persister.save(ctx, next); err != nil {
			return err
		}
	}
	m.values = next
	return nil
}
