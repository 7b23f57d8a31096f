// Package task implements the task collection: an ordered list of tasks
// loaded from local key-value storage and written back in full after every
// mutation.
//
// The store never prompts. Confirmation before Delete and collecting the new
// title/description before Edit are the caller's job; the store receives
// input that is ready to apply.
package task

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/google/uuid"
)

// Options configures a Store. Zero values pick the production defaults.
type Options struct {
	// Now returns the creation timestamp for new tasks. Defaults to time.Now.
	Now func() time.Time

	// NewID returns a candidate id for a new task. Defaults to a random UUID.
	NewID func() string
}

// Store holds the task collection in insertion order.
// It is not safe for concurrent use.
type Store struct {
	kv    store.Storage
	tasks []model.Task
	now   func() time.Time
	newID func() string
}

// Open creates a store over kv and loads the persisted collection.
// On ErrCorruptData the returned store is still usable and starts empty.
func Open(kv store.Storage, opts Options) (*Store, error) {
	s := &Store{
		kv:    kv,
		now:   opts.Now,
		newID: opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// Load replaces the in-memory collection with the persisted one.
// A missing or blank value is an empty collection.
func (s *Store) Load() error {
	s.tasks = nil

	raw, ok, err := s.kv.Get(store.KeyTasks)
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task %d has no id", ErrCorruptData, i+1)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: id %q appears twice", ErrCorruptData, t.ID)
		}
		seen[t.ID] = struct{}{}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %q has an empty title", ErrCorruptData, t.ID)
		}
	}

	s.tasks = tasks
	log.Printf("task: loaded %d tasks", len(tasks))
	return nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task with the exact id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new pending task. The title is trimmed; an empty title
// returns ErrEmptyTitle and nothing changes.
func (s *Store) Add(title, description string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          s.freshID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	err := s.mutate(func(tasks []model.Task) []model.Task {
		return append(tasks, t)
	})
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Toggle flips Completed on the task with id.
func (s *Store) Toggle(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	err := s.mutate(func(tasks []model.Task) []model.Task {
		tasks[i].Completed = !tasks[i].Completed
		return tasks
	})
	if err != nil {
		return model.Task{}, err
	}
	return s.tasks[i], nil
}

// Delete removes the task with id and returns it.
func (s *Store) Delete(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	removed := s.tasks[i]
	err := s.mutate(func(tasks []model.Task) []model.Task {
		return slices.Delete(tasks, i, i+1)
	})
	if err != nil {
		return model.Task{}, err
	}
	return removed, nil
}

// EditOptions carries the new values for Edit.
// Nil pointers mean "don't change this field".
type EditOptions struct {
	Title       *string
	Description *string
}

// Edit updates title and/or description of the task with id. A title that is
// empty after trimming discards the whole edit with ErrEmptyTitle.
func (s *Store) Edit(id string, opts EditOptions) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	var title string
	if opts.Title != nil {
		title = strings.TrimSpace(*opts.Title)
		if err := ValidateTitle(title); err != nil {
			return model.Task{}, err
		}
	}

	err := s.mutate(func(tasks []model.Task) []model.Task {
		if opts.Title != nil {
			tasks[i].Title = title
		}
		if opts.Description != nil {
			tasks[i].Description = strings.TrimSpace(*opts.Description)
		}
		return tasks
	})
	if err != nil {
		return model.Task{}, err
	}
	return s.tasks[i], nil
}

// Restore re-inserts a previously deleted task at index, clamped to the
// collection bounds.
func (s *Store) Restore(t model.Task, index int) error {
	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	if err := ValidateTitle(strings.TrimSpace(t.Title)); err != nil {
		return err
	}
	index = max(0, min(index, len(s.tasks)))
	return s.mutate(func(tasks []model.Task) []model.Task {
		return slices.Insert(tasks, index, t)
	})
}

// ClearCompleted removes every completed task and reports how many went.
func (s *Store) ClearCompleted() (int, error) {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	err := s.mutate(func(tasks []model.Task) []model.Task {
		return slices.DeleteFunc(tasks, func(t model.Task) bool { return t.Completed })
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// mutate applies fn to a copy of the collection, persists the result and
// only then makes it current, so memory never runs ahead of storage.
func (s *Store) mutate(fn func([]model.Task) []model.Task) error {
	next := fn(slices.Clone(s.tasks))
	if err := s.persist(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *Store) persist(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(store.KeyTasks, string(b)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	log.Printf("task: persisted %d tasks", len(tasks))
	return nil
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// freshID draws ids until one is not already in use.
func (s *Store) freshID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}
