package model

import "time"

// DefaultCategoryColor is used for categories created without a color
const DefaultCategoryColor = "#4ECDC4"

// Category is a named, colored grouping label applied to tasks.
// TaskCount is a denormalized hint kept by some stores and is never
// used for live counts.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryDraft holds the fields of a category about to be created
type CategoryDraft struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	TaskCount int    `json:"task_count,omitempty"`
}

// CategoryPatch is a partial category update
type CategoryPatch struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	TaskCount *int    `json:"task_count,omitempty"`
}

// NewCategory builds a category from a draft with defaults applied
func NewCategory(id string, d CategoryDraft, now time.Time) Category {
	color := d.Color
	if color == "" {
		color = DefaultCategoryColor
	}
	return Category{
		ID:        id,
		Name:      d.Name,
		Color:     color,
		TaskCount: d.TaskCount,
		CreatedAt: now,
	}
}

// Apply merges a patch into the category
func (c *Category) Apply(p CategoryPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.TaskCount != nil {
		c.TaskCount = *p.TaskCount
	}
}

// DefaultCategories returns the categories a fresh store starts with
func DefaultCategories(now time.Time) []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#5B4FCF", CreatedAt: now},
		{ID: "personal", Name: "Personal", Color: "#FF6B6B", CreatedAt: now},
		{ID: "shopping", Name: "Shopping", Color: "#4ECDC4", CreatedAt: now},
		{ID: "health", Name: "Health", Color: "#95E1A3", CreatedAt: now},
	}
}
