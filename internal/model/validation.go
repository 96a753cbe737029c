package model

import (
	"fmt"
	"strings"
)

// ValidationError reports input rejected before it reaches a store
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateTitle trims a task title and rejects empty text
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: "must not be empty"}
	}
	return title, nil
}

// ValidateCategoryName trims a category name and rejects empty text
func ValidateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "must not be empty"}
	}
	return name, nil
}

// Validate checks and normalizes a task draft
func (d *TaskDraft) Validate() error {
	title, err := ValidateTitle(d.Title)
	if err != nil {
		return err
	}
	d.Title = title
	if d.Priority != "" && !d.Priority.IsValid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", d.Priority)}
	}
	return nil
}

// Validate checks and normalizes a task patch
func (p *TaskPatch) Validate() error {
	if p.Title != nil {
		title, err := ValidateTitle(*p.Title)
		if err != nil {
			return err
		}
		p.Title = &title
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", *p.Priority)}
	}
	return nil
}

// Validate checks and normalizes a category draft
func (d *CategoryDraft) Validate() error {
	name, err := ValidateCategoryName(d.Name)
	if err != nil {
		return err
	}
	d.Name = name
	return nil
}

// Validate checks and normalizes a category patch
func (p *CategoryPatch) Validate() error {
	if p.Name != nil {
		name, err := ValidateCategoryName(*p.Name)
		if err != nil {
			return err
		}
		p.Name = &name
	}
	return nil
}

// DuplicateCategory reports a category name that is already taken
func DuplicateCategory(name string) error {
	return &ValidationError{Field: "name", Message: fmt.Sprintf("category %q already exists", name)}
}
