// Package valueobject defines immutable domain value objects.
package valueobject

// SortKey identifies the column a projection is ordered by.
type SortKey string

const (
	// SortKeyNone leaves the filtered records in their original order.
	SortKeyNone   SortKey = ""
	SortKeyDate   SortKey = "date"
	SortKeyAmount SortKey = "amount"
)

// SortDirection is the ordering direction of a projection.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortConfig is the sort portion of the view state.
// The zero value means "no sort selected".
type SortConfig struct {
	Key       SortKey
	Direction SortDirection
}

// Toggle returns the config resulting from a click on the given column
// header: first click sorts ascending, a second click on the same column
// flips to descending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	direction := SortAscending
	if c.Key == key && c.Direction == SortAscending {
		direction = SortDescending
	}
	return SortConfig{Key: key, Direction: direction}
}

// IsValid reports whether the config names a known key and direction.
func (c SortConfig) IsValid() bool {
	if c.Key == SortKeyNone {
		return true
	}
	if c.Key != SortKeyDate && c.Key != SortKeyAmount {
		return false
	}
	return c.Direction == SortAscending || c.Direction == SortDescending
}
