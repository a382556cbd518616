package validate

import (
	"strconv"
	"strings"
)

// Quantity parses a strictly numeric positive integer. "5abc", "-1" and
// "0" are all rejected; the dialog re-prompts instead of guessing.
func Quantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// FullName requires at least two whitespace-separated tokens (surname plus
// given name; a patronymic is fine).
func FullName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(strings.Fields(s)) < 2 {
		return "", false
	}
	return s, true
}

// Phone is a minimal sanity check, not a format validation: anything at
// least 6 characters long after trimming passes.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return "", false
	}
	return s, true
}

// ProductID validates a catalog product reference from a button payload.
func ProductID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Position validates a 1-based queue position from an operator command.
func Position(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
