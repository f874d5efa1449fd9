package profile

import "fmt"

// ErrNotFound is returned when a referenced profile or mapping id does
// not exist in the store.
type ErrNotFound struct {
	Kind string // "profile" or "mapping"
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ErrConflict covers duplicate-name profile creation and a duplicate
// sigma_field within one profile's mappings.
type ErrConflict struct {
	Reason string
}

func (e ErrConflict) Error() string {
	return e.Reason
}
