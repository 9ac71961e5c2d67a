package enums

import "fmt"

// EntryVisibility describes the lifecycle state of a recycling entry. Purged
// entries no longer exist in storage; the value only names the transition.
type EntryVisibility string

const (
	EntryVisibilityActive EntryVisibility = "active"
	EntryVisibilityHidden EntryVisibility = "hidden"
	EntryVisibilityPurged EntryVisibility = "purged"
)

var validEntryVisibilities = []EntryVisibility{
	EntryVisibilityActive,
	EntryVisibilityHidden,
	EntryVisibilityPurged,
}

// String returns the literal string for the visibility.
func (v EntryVisibility) String() string {
	return string(v)
}

// IsValid reports whether the visibility is known.
func (v EntryVisibility) IsValid() bool {
	for _, candidate := range validEntryVisibilities {
		if candidate == v {
			return true
		}
	}
	return false
}

// Shown maps the lifecycle onto the wire-level show flag.
func (v EntryVisibility) Shown() bool {
	return v == EntryVisibilityActive
}

// EntryVisibilityFromShow is the inverse of Shown for stored rows.
func EntryVisibilityFromShow(show bool) EntryVisibility {
	if show {
		return EntryVisibilityActive
	}
	return EntryVisibilityHidden
}

// ParseEntryVisibility converts raw input into an EntryVisibility.
func ParseEntryVisibility(value string) (EntryVisibility, error) {
	for _, candidate := range validEntryVisibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entry visibility %q", value)
}
