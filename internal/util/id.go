// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"

	"github.com/agroplan/agroplan/models"
)

const (
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveCropID resolves a crop ID or unique prefix to a full crop ID.
//
// Resolution rules:
//  1. An exact ID match always wins.
//  2. A prefix matching exactly one crop resolves to that crop.
//  3. Multiple matches return ErrAmbiguousID with candidates.
//  4. No matches return ErrNotFound.
func ResolveCropID(crops []models.Crop, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("crop ID: %w", ErrNotFound)
	}

	var candidates []string
	for _, c := range crops {
		if c.ID == idOrPrefix {
			return c.ID, nil
		}
		if hasPrefix(c.ID, idOrPrefix) {
			candidates = append(candidates, c.ID)
		}
	}

	return resolveFromCandidates(idOrPrefix, candidates, "crop")
}

// ResolveTaskID resolves a task ID or unique prefix within one crop's schedule.
func ResolveTaskID(tasks []models.PlannedTask, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	var candidates []string
	for _, t := range tasks {
		if t.ID == idOrPrefix {
			return t.ID, nil
		}
		if hasPrefix(t.ID, idOrPrefix) {
			candidates = append(candidates, t.ID)
		}
	}

	return resolveFromCandidates(idOrPrefix, candidates, "task")
}

func hasPrefix(id, prefix string) bool {
	return len(prefix) <= len(id) && id[:len(prefix)] == prefix
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string, entityType string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
