package viewmodel

import (
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
)

// Filter is the current search and selection
type Filter struct {
	Query    string
	Category string
	Priority model.Priority
}

// Editing is an in-progress title edit
type Editing struct {
	TaskID string
	Title  string
}

// State is the mutable UI state the derivations read from.
// The presentation layer owns it and passes it in explicitly.
type State struct {
	Filter  Filter
	Editing *Editing
}

// HasActiveFilters reports whether any filter narrows the list
func (s State) HasActiveFilters() bool {
	return strings.TrimSpace(s.Filter.Query) != "" || s.Filter.Category != "" || s.Filter.Priority != ""
}

// ToggleCategory selects a category, or clears the selection when it is
// already selected
func (s *State) ToggleCategory(name string) {
	if s.Filter.Category == name {
		s.Filter.Category = ""
		return
	}
	s.Filter.Category = name
}

// CyclePriority steps the priority filter through none, High, Medium, Low
func (s *State) CyclePriority() {
	switch s.Filter.Priority {
	case "":
		s.Filter.Priority = model.PriorityHigh
	case model.PriorityHigh:
		s.Filter.Priority = model.PriorityMedium
	case model.PriorityMedium:
		s.Filter.Priority = model.PriorityLow
	default:
		s.Filter.Priority = ""
	}
}

// ClearFilters resets search, category and priority
func (s *State) ClearFilters() {
	s.Filter = Filter{}
}

// StartEditing begins editing the title of t
func (s *State) StartEditing(t model.Task) {
	s.Editing = &Editing{TaskID: t.ID, Title: t.Title}
}

// CancelEdit drops the in-progress edit
func (s *State) CancelEdit() {
	s.Editing = nil
}

// IsEditing reports whether the task with this id is being edited
func (s State) IsEditing(id string) bool {
	return s.Editing != nil && s.Editing.TaskID == id
}
