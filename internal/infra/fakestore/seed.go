package fakestore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seed loads a small demo data set: a few categories, one contains-rule,
// and a week of mixed provider/manual transactions.
func (s *Server) Seed() error {
	groceries := CategoryModel{ID: uuid.NewString(), Name: "Groceries", ColorHex: "#00C49F", Type: "expense"}
	dining := CategoryModel{ID: uuid.NewString(), Name: "Dining Out", ColorHex: "#FF8042", Type: "expense"}
	salary := CategoryModel{ID: uuid.NewString(), Name: "Salary", ColorHex: "#0088FE", Type: "income"}
	for _, category := range []CategoryModel{groceries, dining, salary} {
		if err := s.db.Create(&category).Error; err != nil {
			return err
		}
	}

	rule := RuleModel{
		ID:         uuid.NewString(),
		Pattern:    "market",
		MatchType:  "CONTAINS",
		CategoryID: groceries.ID,
		Priority:   10,
		Enabled:    true,
	}
	if err := s.db.Create(&rule).Error; err != nil {
		return err
	}

	day := func(offset int) time.Time {
		return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -offset)
	}

	transactions := []TransactionModel{
		{
			ID:                 uuid.NewString(),
			PlaidTransactionID: "plaid-seed-1",
			Date:               day(1),
			Description:        "Corner Market",
			Amount:             decimal.NewFromFloat(42.10),
			CategoryID:         &groceries.ID,
			AccountID:          "acc-1",
			AccountName:        "Everyday Checking",
		},
		{
			ID:                 uuid.NewString(),
			PlaidTransactionID: "plaid-seed-2",
			Date:               day(2),
			Description:        "Coffee Shop",
			Amount:             decimal.NewFromFloat(12.50),
			PlaidCategory:      "FOOD_AND_DRINK",
			AccountID:          "acc-1",
			AccountName:        "Everyday Checking",
		},
		{
			ID:          uuid.NewString(),
			Date:        day(3),
			Description: "Trattoria Roma",
			Amount:      decimal.NewFromFloat(63.00),
			CategoryID:  &dining.ID,
		},
		{
			ID:                 uuid.NewString(),
			PlaidTransactionID: "plaid-seed-3",
			Date:               day(5),
			Description:        "Payroll",
			Amount:             decimal.NewFromFloat(-2500.00),
			CategoryID:         &salary.ID,
			AccountID:          "acc-1",
			AccountName:        "Everyday Checking",
		},
	}
	for i := range transactions {
		if err := s.db.Create(&transactions[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
