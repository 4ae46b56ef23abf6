package storage

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrKeyExists is returned by Create when the key is already present.
	ErrKeyExists = errors.New("key already exists")
	// ErrKeyNotFound is returned by Read, Update and Delete when the key
	// is absent.
	ErrKeyNotFound = errors.New("key not found")
)

// Applier is the state machine a replica applies committed commands to.
// It exposes the four primitive changes over an ordered key-value mapping.
type Applier interface {
	// Create inserts a new key. Fails with ErrKeyExists if present.
	Create(key, value int) error
	// Read returns the value for a key. Fails with ErrKeyNotFound if absent.
	Read(key int) (int, error)
	// Update overwrites an existing key. Fails with ErrKeyNotFound if absent.
	Update(key, value int) error
	// Delete removes an existing key. Fails with ErrKeyNotFound if absent.
	Delete(key int) error
}

// Entry is a single key-value pair, used when snapshotting a store.
type Entry struct {
	Key   int
	Value int
}

// Memory is an in-memory implementation of Applier. It is thread-safe so
// it stays usable outside the serialized command model.
type Memory struct {
	mu   sync.RWMutex
	data map[int]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[int]int)}
}

// Create inserts a new key.
func (m *Memory) Create(key, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; exists {
		return fmt.Errorf("%w: key %d", ErrKeyExists, key)
	}
	m.data[key] = value
	return nil
}

// Read returns the value stored under key.
func (m *Memory) Read(key int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return 0, fmt.Errorf("%w: key %d", ErrKeyNotFound, key)
	}
	return value, nil
}

// Update overwrites the value of an existing key.
func (m *Memory) Update(key, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, key)
	}
	m.data[key] = value
	return nil
}

// Delete removes an existing key.
func (m *Memory) Delete(key int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, key)
	}
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Entries returns a snapshot of the store ordered by key.
func (m *Memory) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.data))
	for k, v := range m.data {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
