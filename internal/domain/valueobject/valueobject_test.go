package valueobject

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestSortConfigToggle(t *testing.T) {
	tests := []struct {
		name  string
		start SortConfig
		key   SortKey
		want  SortConfig
	}{
		{
			name:  "first click sorts ascending",
			start: SortConfig{},
			key:   SortKeyDate,
			want:  SortConfig{Key: SortKeyDate, Direction: SortAscending},
		},
		{
			name:  "second click on the same column flips to descending",
			start: SortConfig{Key: SortKeyDate, Direction: SortAscending},
			key:   SortKeyDate,
			want:  SortConfig{Key: SortKeyDate, Direction: SortDescending},
		},
		{
			name:  "third click goes back to ascending",
			start: SortConfig{Key: SortKeyDate, Direction: SortDescending},
			key:   SortKeyDate,
			want:  SortConfig{Key: SortKeyDate, Direction: SortAscending},
		},
		{
			name:  "switching columns restarts ascending",
			start: SortConfig{Key: SortKeyDate, Direction: SortDescending},
			key:   SortKeyAmount,
			want:  SortConfig{Key: SortKeyAmount, Direction: SortAscending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Toggle(tt.key); got != tt.want {
				t.Errorf("Toggle(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSortConfigIsValid(t *testing.T) {
	tests := []struct {
		name   string
		config SortConfig
		want   bool
	}{
		{name: "zero value", config: SortConfig{}, want: true},
		{name: "date ascending", config: SortConfig{Key: SortKeyDate, Direction: SortAscending}, want: true},
		{name: "unknown key", config: SortConfig{Key: "merchant", Direction: SortAscending}, want: false},
		{name: "key without direction", config: SortConfig{Key: SortKeyAmount}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategorySelectionTriState(t *testing.T) {
	id := uuid.New()

	var zero CategorySelection
	if !zero.IsUnchanged() {
		t.Error("zero value must mean unchanged")
	}

	unchanged := CategoryUnchanged()
	if !unchanged.IsUnchanged() || unchanged.IsNone() {
		t.Error("unchanged selection misreports its state")
	}
	if _, ok := unchanged.ID(); ok {
		t.Error("unchanged selection must not carry an ID")
	}

	none := CategoryNone()
	if !none.IsNone() || none.IsUnchanged() {
		t.Error("none selection misreports its state")
	}
	if _, ok := none.ID(); ok {
		t.Error("none selection must not carry an ID")
	}

	set := CategoryID(id)
	if set.IsUnchanged() || set.IsNone() {
		t.Error("set selection misreports its state")
	}
	if got, ok := set.ID(); !ok || got != id {
		t.Errorf("set selection ID = (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestSignConvention(t *testing.T) {
	tests := []struct {
		name       string
		convention SignConvention
		amount     string
		isExpense  bool
		magnitude  string
	}{
		{name: "provider positive expense", convention: PositiveIsExpense, amount: "42.10", isExpense: true, magnitude: "42.10"},
		{name: "provider negative income", convention: PositiveIsExpense, amount: "-2500.00", isExpense: false, magnitude: "0"},
		{name: "manual negative expense", convention: NegativeIsExpense, amount: "-42.10", isExpense: true, magnitude: "42.10"},
		{name: "manual positive income", convention: NegativeIsExpense, amount: "2500.00", isExpense: false, magnitude: "0"},
		{name: "zero is never an expense", convention: PositiveIsExpense, amount: "0", isExpense: false, magnitude: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			if got := tt.convention.IsExpense(amount); got != tt.isExpense {
				t.Errorf("IsExpense(%s) = %v, want %v", tt.amount, got, tt.isExpense)
			}
			want := decimal.RequireFromString(tt.magnitude)
			if got := tt.convention.ExpenseMagnitude(amount); !got.Equal(want) {
				t.Errorf("ExpenseMagnitude(%s) = %s, want %s", tt.amount, got, want)
			}
		})
	}
}
