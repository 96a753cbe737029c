package viewmodel

import "github.com/apper-canvas/taskflow/internal/model"

// FallbackCategoryColor is shown for tasks whose category no longer exists
const FallbackCategoryColor = "#8B7FE8"

// ResolveCategoryColor returns the color of the category with this exact
// name, or FallbackCategoryColor for unknown names and blank colors
func ResolveCategoryColor(categories []model.Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			if c.Color == "" {
				break
			}
			return c.Color
		}
	}
	return FallbackCategoryColor
}

// PriorityColor maps a priority to its display color
func PriorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "#FF6B6B"
	case model.PriorityMedium:
		return "#FFB347"
	case model.PriorityLow:
		return "#95E1A3"
	default:
		return "#888888"
	}
}
