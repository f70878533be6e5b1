// Package storage persists the player profile and task list as JSON records
// in a key-value store, and the user preferences as a YAML file.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// MemoryKV keeps records in memory only.
type MemoryKV struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{records: make(map[string]string)}
}

// Get returns the value stored under key.
func (store *MemoryKV) Get(key string) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.records[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (store *MemoryKV) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records[key] = value
	return nil
}

// Close is a no-op.
func (store *MemoryKV) Close() error {
	return nil
}
