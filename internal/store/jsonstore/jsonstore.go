package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// JSON-backed key-value storage. One file holding a flat object of string
// values, human-readable and portable. Every access takes an exclusive flock
// on a sidecar lock file so a CLI call and an open dashboard never interleave
// a read-modify-write.

// DefaultFileName is the data file name inside the data directory.
const DefaultFileName = "data.json"

// Store is a file-backed key-value store.
type Store struct {
	path string
}

// Open returns a store writing to path. The file itself is created lazily on
// the first write; the parent directory is created now with 0700.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonstore: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(key string) (string, bool, error) {
	var (
		v  string
		ok bool
	)
	err := s.withLock(func() error {
		data, err := s.load()
		if err != nil {
			return err
		}
		v, ok = data[key]
		return nil
	})
	return v, ok, err
}

func (s *Store) Set(key, value string) error {
	return s.withLock(func() error {
		data, err := s.load()
		if err != nil {
			return err
		}
		data[key] = value
		return s.save(data)
	})
}

func (s *Store) Delete(key string) error {
	return s.withLock(func() error {
		data, err := s.load()
		if err != nil {
			return err
		}
		if _, ok := data[key]; !ok {
			return nil
		}
		delete(data, key)
		return s.save(data)
	})
}

func (s *Store) Close() error { return nil }

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	data := map[string]string{}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("json unmarshal %s: %w", s.path, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	return data, nil
}

// save writes through a temp file and renames it over the data file.
func (s *Store) save(data map[string]string) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *Store) withLock(fn func() error) error {
	f, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}
