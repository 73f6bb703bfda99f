// Package main is the entry point for the finpilot tracker CLI. It lists
// the transaction table the way the web view renders it: filtered by a
// search term, sorted by date or amount, with the spending breakdown below.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/finpilot/client/config"
	"github.com/finpilot/client/internal/application/usecase/dashboard"
	"github.com/finpilot/client/internal/domain/valueobject"
	"github.com/finpilot/client/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	search := flag.String("search", "", "filter by description or amount substring")
	sortKey := flag.String("sort", "", "sort key: date or amount")
	sortDir := flag.String("dir", "asc", "sort direction: asc or desc")
	sync := flag.Bool("sync", false, "trigger a provider sync before listing")
	demo := flag.Bool("demo", false, "run against an embedded demo record store")
	match := flag.String("match", "", "ask the store which rule would categorize this merchant")
	flag.Parse()

	cfg := config.Load()
	if *demo {
		cfg.Demo.Enabled = true
	}

	slog.Info("Starting finpilot tracker",
		"environment", cfg.API.Environment,
		"api_url", cfg.API.BaseURL,
		"demo", cfg.Demo.Enabled,
	)

	injector, err := dependency.New(cfg)
	if err != nil {
		slog.Error("Failed to wire components", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := injector.Close(); err != nil {
			slog.Error("Failed to shut down demo store", "error", err)
		}
	}()

	ctx := context.Background()

	if *match != "" {
		result, err := injector.Rules.Test(ctx, *match)
		if err != nil {
			slog.Error("Rule test failed", "error", err)
			os.Exit(1)
		}
		if result.Matched {
			fmt.Printf("%q would be categorized as %s\n", *match, result.CategoryName)
		} else {
			fmt.Printf("%q matches no rule\n", *match)
		}
		return
	}

	if *sync {
		result, err := injector.List.Sync(ctx)
		if err != nil {
			slog.Error("Sync failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Sync completed", "status", result.Status, "count", result.Count)
	}

	if err := injector.List.Load(ctx); err != nil {
		slog.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}

	categories, err := injector.Store.ListCategories(ctx)
	if err != nil {
		slog.Error("Failed to load categories", "error", err)
		os.Exit(1)
	}

	tableController := injector.Table
	tableController.SetTransactions(injector.List.Transactions())
	tableController.SetCategories(categories)
	tableController.SetSearch(*search)
	if key, ok := parseSort(*sortKey); ok {
		tableController.ToggleSort(key)
		if *sortDir == "desc" {
			tableController.ToggleSort(key)
		}
	}

	visible := tableController.Visible()
	fmt.Printf("%-12s  %-32s  %12s  %s\n", "DATE", "DESCRIPTION", "AMOUNT", "CATEGORY")
	for _, txn := range visible {
		fmt.Printf("%-12s  %-32.32s  %12s  %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.CategoryName(),
		)
	}
	fmt.Printf("\n%d of %d transactions\n", len(visible), len(injector.List.Transactions()))

	convention := valueobject.NegativeIsExpense
	if cfg.Display.PositiveIsExpense {
		convention = valueobject.PositiveIsExpense
	}
	breakdown := dashboard.CategoryBreakdown(injector.List.Transactions(), convention)
	if len(breakdown) > 0 {
		fmt.Println("\nSpending by category:")
		for _, slice := range breakdown {
			fmt.Printf("  %-24s  %12s\n", slice.Name, slice.Total.StringFixed(2))
		}
	}

	recent := dashboard.Recent(injector.List.Transactions(), cfg.Display.RecentLimit)
	if len(recent) > 0 {
		fmt.Println("\nRecent transactions:")
		for _, txn := range recent {
			fmt.Printf("  %-12s  %-32.32s  %12s\n",
				txn.Date.Format("2006-01-02"),
				txn.Description,
				txn.Amount.StringFixed(2),
			)
		}
	}
}

func parseSort(key string) (valueobject.SortKey, bool) {
	switch key {
	case "date":
		return valueobject.SortKeyDate, true
	case "amount":
		return valueobject.SortKeyAmount, true
	default:
		return valueobject.SortKeyNone, false
	}
}
