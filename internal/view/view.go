// Package view projects the task collection for display: a completion
// status filter combined with a case-insensitive title search.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// ErrInvalidStatus is returned by ParseStatus for unknown values.
var ErrInvalidStatus = errors.New("invalid status")

// Statuses returns the filter values in tab order.
func Statuses() []Status {
	return []Status{StatusAll, StatusCompleted, StatusPending}
}

// ParseStatus accepts a status name in any case; empty means all.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusAll, nil
	}
	for _, st := range Statuses() {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want all, completed or pending)", ErrInvalidStatus, s)
}

// Next cycles all → completed → pending → all.
func (s Status) Next() Status {
	switch s {
	case StatusAll:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return StatusAll
	}
}

// Label is the capitalized name used on filter tabs.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusPending:
		return "Pending"
	default:
		return "All"
	}
}

// Matches reports whether t passes the status filter.
func (s Status) Matches(t model.Task) bool {
	switch s {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

// Query is a status filter plus a title search.
type Query struct {
	Status Status
	Search string
}

// Matches reports whether t passes both the status filter and the search.
func (q Query) Matches(t model.Task) bool {
	if !q.Status.Matches(t) {
		return false
	}
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(q.Search))
}

// Apply returns the tasks matching q, in their original order.
func Apply(tasks []model.Task, q Query) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats counts completed and pending tasks.
func Stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Group splits tasks into pending and completed, keeping order within each.
func Group(tasks []model.Task) (pending, done []model.Task) {
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	return
}
