// Package session is the login gate: it captures a display name and keeps it
// in local storage. There are no credentials; the name only decides whether
// the dashboard can be reached.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Makepad-fr/tada/internal/store"
)

// EnvUser overrides the stored username when set.
const EnvUser = "TADA_USER"

// Where the current username came from.
const (
	SourceEnv     = "env"
	SourceStorage = "storage"
)

var (
	// ErrEmptyUsername is returned by Login for a blank name.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrNotLoggedIn is returned when no username is available.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Info describes the active session.
type Info struct {
	Username string
	Source   string // "env" | "storage"
}

// Gate reads and writes the username key.
type Gate struct {
	kv store.Storage
}

// New returns a gate over kv.
func New(kv store.Storage) *Gate {
	return &Gate{kv: kv}
}

// Login stores the trimmed username.
func (g *Gate) Login(username string) (Info, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Info{}, ErrEmptyUsername
	}
	if err := g.kv.Set(store.KeyUsername, username); err != nil {
		return Info{}, fmt.Errorf("save username: %w", err)
	}
	return Info{Username: username, Source: SourceStorage}, nil
}

// Current returns the active session. The env override wins over storage.
func (g *Gate) Current() (Info, error) {
	if env := strings.TrimSpace(os.Getenv(EnvUser)); env != "" {
		return Info{Username: env, Source: SourceEnv}, nil
	}

	v, ok, err := g.kv.Get(store.KeyUsername)
	if err != nil {
		return Info{}, fmt.Errorf("read username: %w", err)
	}
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return Info{}, ErrNotLoggedIn
	}
	return Info{Username: v, Source: SourceStorage}, nil
}

// Logout forgets the stored username. It reports the env source untouched,
// since there is nothing on disk to remove for it.
func (g *Gate) Logout() (Info, error) {
	info, err := g.Current()
	if err != nil && !errors.Is(err, ErrNotLoggedIn) {
		return Info{}, err
	}
	if info.Source == SourceEnv {
		return info, nil
	}
	if err := g.kv.Delete(store.KeyUsername); err != nil {
		return Info{}, fmt.Errorf("remove username: %w", err)
	}
	return info, nil
}
