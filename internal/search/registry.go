package search

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Registry maps a normalized repository URL to its bucket name.
type Registry map[string]string

// NewRegistry inverts a name → repository index.
func NewRegistry(byName map[string]string) Registry {
	r := make(Registry, len(byName))
	for name, repo := range byName {
		r[normalizeRepo(repo)] = name
	}
	return r
}

// Lookup resolves a hit's repository to a bucket name, ignoring case.
func (r Registry) Lookup(repo string) (string, bool) {
	name, ok := r[normalizeRepo(repo)]
	return name, ok
}

func normalizeRepo(repo string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(repo)), "/")
}

func decodeRegistry(b []byte, out *map[string]string) error {
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode bucket registry: %w", err)
	}
	return nil
}
