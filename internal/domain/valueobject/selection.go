// Package valueobject defines immutable domain value objects.
package valueobject

import "github.com/google/uuid"

// selectionState distinguishes the three category update intents.
type selectionState int

const (
	selectionUnchanged selectionState = iota
	selectionNone
	selectionSet
)

// CategorySelection expresses the category portion of a partial update as a
// tri-state: leave the category unchanged, clear it explicitly, or set it to
// a concrete category ID. "No category" and "don't change category" are
// distinct values and must never collapse into each other on the wire.
// The zero value is Unchanged.
type CategorySelection struct {
	state selectionState
	id    uuid.UUID
}

// CategoryUnchanged returns a selection that omits the category field from
// the update entirely.
func CategoryUnchanged() CategorySelection {
	return CategorySelection{state: selectionUnchanged}
}

// CategoryNone returns a selection that clears the category server-side.
func CategoryNone() CategorySelection {
	return CategorySelection{state: selectionNone}
}

// CategoryID returns a selection that sets the category to the given ID.
func CategoryID(id uuid.UUID) CategorySelection {
	return CategorySelection{state: selectionSet, id: id}
}

// IsUnchanged reports whether the category field should be omitted.
func (s CategorySelection) IsUnchanged() bool { return s.state == selectionUnchanged }

// IsNone reports whether the category should be cleared.
func (s CategorySelection) IsNone() bool { return s.state == selectionNone }

// ID returns the selected category ID and whether one is set.
func (s CategorySelection) ID() (uuid.UUID, bool) {
	return s.id, s.state == selectionSet
}
