// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int, falling back to def when the
// string is empty or unparseable. Handlers use it for the page and
// page_size query parameters, where a garbled value should mean "use the
// default", not an error.
//
// Example:
//
//	page := utils.AtoiDefault(c.Query("page"), 1)  // "" or "x" -> 1
//	size := utils.AtoiDefault(c.Query("page_size"), 20)
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
