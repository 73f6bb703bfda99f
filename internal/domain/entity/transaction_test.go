package entity

import "testing"

func TestCategoryName(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want string
	}{
		{
			name: "user category wins",
			txn: Transaction{
				Category:         &Category{Name: "Groceries"},
				ProviderCategory: "FOOD_AND_DRINK",
			},
			want: "Groceries",
		},
		{
			name: "provider label with underscores replaced",
			txn:  Transaction{ProviderCategory: "FOOD_AND_DRINK"},
			want: "FOOD AND DRINK",
		},
		{
			name: "uncategorized fallback",
			txn:  Transaction{},
			want: "Uncategorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.CategoryName(); got != tt.want {
				t.Errorf("CategoryName() = %q, want %q", got, tt.want)
			}
		})
	}
}
