package helpers

import (
	"strconv"
	"strings"
)

// PageCount returns last-first+1. Non-numeric pages and reversed ranges
// count as 0.
func PageCount(first, last string) int {
	f, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0
	}
	l, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return 0
	}
	return max(l-f+1, 0)
}
