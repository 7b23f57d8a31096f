package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/task"
	"github.com/Makepad-fr/tada/internal/ui"
)

var errNotLoggedIn = usageError{err: errors.New("not logged in. Run: tada login")}

// app holds state shared by every subcommand of one invocation.
type app struct {
	env Env

	configPath string
	theme      string

	cfg     *config.Config
	path    string
	kv      store.Storage
	gate    *session.Gate
	closers []func() error
}

func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	theme := a.theme
	if theme == "" {
		theme = cfg.UI.Theme
	}
	if theme != "" {
		if err := ui.SetTheme(theme); err != nil {
			return usageError{err: err}
		}
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	a.closers = append(a.closers, closeLog)

	backend := cfg.Storage.Backend
	if backend == "" {
		backend = store.BackendFile
	}
	path, err := cfg.StoragePath(store.DefaultFileName(backend))
	if err != nil {
		return err
	}
	kv, err := store.Open(backend, path)
	if err != nil {
		if errors.Is(err, store.ErrUnknownBackend) {
			return usageError{err: err}
		}
		return fmt.Errorf("open storage: %w", err)
	}
	log.Printf("storage: %s at %s", backend, path)

	a.path = path
	a.kv = kv
	a.closers = append(a.closers, kv.Close)
	a.gate = session.New(kv)
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(wd)
}

// close releases storage and the log file in reverse order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("close: %v", err)
		}
	}
	a.closers = nil
}

func (a *app) requireSession() (session.Info, error) {
	info, err := a.gate.Current()
	if errors.Is(err, session.ErrNotLoggedIn) {
		return session.Info{}, errNotLoggedIn
	}
	return info, err
}

// tasks opens the task store. Corrupt data is reported with a hint and the
// stored value is left untouched.
func (a *app) tasks() (*task.Store, error) {
	s, err := task.Open(a.kv, task.Options{})
	if errors.Is(err, task.ErrCorruptData) {
		ui.Hint(fmt.Sprintf("fix or move %s aside, then retry", a.path))
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return s, nil
}

// sessionTasks combines requireSession and tasks, the preamble of every
// task subcommand.
func (a *app) sessionTasks() (*task.Store, error) {
	if _, err := a.requireSession(); err != nil {
		return nil, err
	}
	return a.tasks()
}

// resolve maps a user-supplied id prefix to a full id.
func resolve(s *task.Store, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", usagef("empty task id")
	}
	id, err := s.Resolve(prefix)
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		ui.Hint("run `tada ls` to see task ids")
		return "", fmt.Errorf("%s: %w", prefix, err)
	case errors.Is(err, task.ErrAmbiguousID):
		ui.Hint("type more characters of the id")
		return "", usageError{err: fmt.Errorf("%s: %w", prefix, err)}
	case err != nil:
		return "", err
	}
	return id, nil
}
