package model

import (
	"strings"
	"time"
)

// Priority is the urgency tag of a task
type Priority string

// Priority levels for tasks
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium" // default for new tasks
	PriorityLow    Priority = "Low"
)

// Priorities returns the fixed priority set, most urgent first
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is one of the known levels
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority converts user input such as "high" or "LOW" into a Priority
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", &ValidationError{Field: "priority", Message: "must be one of High, Medium, Low"}
}

// Task represents a single todo item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskDraft holds the caller-supplied fields of a task about to be created.
// The store assigns ID and CreatedAt.
type TaskDraft struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
	DueDate  string   `json:"dueDate,omitempty"`
}

// TaskPatch is a partial update; nil fields are left untouched.
// An empty DueDate clears the due date.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewTask builds a task from a draft with defaults applied
func NewTask(id string, d TaskDraft, now time.Time) Task {
	p := d.Priority
	if p == "" {
		p = PriorityMedium
	}
	return Task{
		ID:        id,
		Title:     d.Title,
		Category:  d.Category,
		Priority:  p,
		DueDate:   d.DueDate,
		CreatedAt: now,
	}
}

// Apply merges a patch into the task.
//
// CompletedAt follows Completed: it is stamped when the task moves from open
// to completed (the patch value, or now) and cleared when it is reopened.
// A CompletedAt in a patch that does not complete the task is ignored.
func (t *Task) Apply(p TaskPatch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed == nil {
		return
	}
	switch {
	case *p.Completed && !t.Completed:
		stamp := now
		if p.CompletedAt != nil {
			stamp = *p.CompletedAt
		}
		t.Completed = true
		t.CompletedAt = &stamp
	case !*p.Completed:
		t.Completed = false
		t.CompletedAt = nil
	}
}

// Toggle returns the patch that flips the completion state of the task
func (t Task) Toggle(now time.Time) TaskPatch {
	completed := !t.Completed
	p := TaskPatch{Completed: &completed}
	if completed {
		p.CompletedAt = &now
	}
	return p
}
