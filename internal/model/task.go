package model

import "time"

// Task is the domain model for a to-do entry.
// Field names on the wire match what the dashboard has always stored.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// DescriptionOr returns the description, or fallback when it is blank.
func (t Task) DescriptionOr(fallback string) string {
	if t.Description == "" {
		return fallback
	}
	return t.Description
}
