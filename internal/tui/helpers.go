package tui

import "strings"

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

// repeat creates a string by repeating s n times
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// clamp keeps a cursor inside [0, n)
func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// progressBar renders percent as a bar of the given width
func progressBar(percent, width int) string {
	filled := percent * width / 100
	return repeat("█", filled) + repeat("░", width-filled)
}
