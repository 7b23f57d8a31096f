// Package store defines the local key-value storage the app persists to,
// plus an in-memory backend and a factory for the on-disk backends.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// Well-known keys.
const (
	KeyUsername = "username"
	KeyTasks    = "tasks"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage is a string key-value store. Values are replaced whole.
type Storage interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Backends lists the backend names Open understands.
func Backends() []string {
	return []string{BackendFile, BackendSQLite}
}

// DefaultFileName is the data file name used inside the data directory
// when no explicit path is configured.
func DefaultFileName(backend string) string {
	if strings.EqualFold(strings.TrimSpace(backend), BackendSQLite) {
		return sqlitestore.DefaultFileName
	}
	return jsonstore.DefaultFileName
}

// Open opens the named on-disk backend at path.
func Open(backend, path string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return jsonstore.Open(path)
	case BackendSQLite:
		return sqlitestore.Open(path)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
}

// Memory is a map-backed Storage. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// FailWrites makes Set and Delete return this error when non-nil.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
