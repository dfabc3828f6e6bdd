package services

import (
	"fmt"
	"strings"
	"time"
)

// EntryInput carries the user-editable fields of an entry. ImageRefs holds
// blob locators in attachment order.
type EntryInput struct {
	Date      time.Time
	Title     string
	Thought   string
	ImageRefs []string
}

func NormalizeEntryInput(input EntryInput) EntryInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Thought = strings.TrimSpace(input.Thought)
	if !input.Date.IsZero() {
		input.Date = time.Date(input.Date.Year(), input.Date.Month(), input.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	if input.ImageRefs == nil {
		input.ImageRefs = []string{}
	}
	return input
}

// ValidateEntryInput enforces the persistence preconditions: a set date and a
// non-blank title. Handlers check the same rules before reaching the store,
// the service re-checks them so the guarantee does not depend on any one
// caller.
func ValidateEntryInput(input EntryInput) error {
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

// MergeImageRefs appends added locators to existing ones, preserving order
// and skipping duplicates.
func MergeImageRefs(existing []string, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, ref := range existing {
		if _, duplicate := seen[ref]; duplicate {
			continue
		}
		seen[ref] = struct{}{}
		merged = append(merged, ref)
	}
	for _, ref := range added {
		if _, duplicate := seen[ref]; duplicate {
			continue
		}
		seen[ref] = struct{}{}
		merged = append(merged, ref)
	}
	return merged
}
