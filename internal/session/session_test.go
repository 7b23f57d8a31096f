package session

import (
	"errors"
	"testing"

	"github.com/Makepad-fr/tada/internal/store"
)

func TestLogin(t *testing.T) {
	t.Setenv(EnvUser, "")

	cases := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "ada", want: "ada"},
		{name: "trimmed", input: "  grace hopper \n", want: "grace hopper"},
		{name: "empty", input: "", wantErr: ErrEmptyUsername},
		{name: "whitespace", input: " \t ", wantErr: ErrEmptyUsername},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := store.NewMemory()
			g := New(kv)

			info, err := g.Login(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			stored, ok, _ := kv.Get(store.KeyUsername)
			if tc.wantErr != nil {
				if ok {
					t.Fatalf("expected nothing stored, got %q", stored)
				}
				return
			}
			if info.Username != tc.want || stored != tc.want {
				t.Fatalf("expected %q, got info %q stored %q", tc.want, info.Username, stored)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	t.Setenv(EnvUser, "")
	g := New(store.NewMemory())

	if _, err := g.Current(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	g.Login("ada")
	info, err := g.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if info.Username != "ada" || info.Source != SourceStorage {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvUser, " env-user ")
	kv := store.NewMemory()
	g := New(kv)
	g.Login("stored-user")

	info, err := g.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if info.Username != "env-user" || info.Source != SourceEnv {
		t.Fatalf("expected env user, got %+v", info)
	}

	if _, err := g.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := kv.Get(store.KeyUsername); !ok {
		t.Fatalf("expected stored username to survive logout under env override")
	}
}

func TestLogout(t *testing.T) {
	t.Setenv(EnvUser, "")
	kv := store.NewMemory()
	g := New(kv)

	if _, err := g.Logout(); err != nil {
		t.Fatalf("logout when logged out: %v", err)
	}

	g.Login("ada")
	info, err := g.Logout()
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if info.Username != "ada" {
		t.Fatalf("expected logout to report ada, got %+v", info)
	}
	if _, err := g.Current(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected gate to be closed after logout, got %v", err)
	}
}
