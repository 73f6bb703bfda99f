package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/finpilot/client/internal/application/usecase/editsession"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/internal/domain/valueobject"
)

func registerTableSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the demo data is loaded$`, theDemoDataIsLoaded)
	ctx.Step(`^I search for "([^"]*)"$`, iSearchFor)
	ctx.Step(`^I sort by "([^"]*)"$`, iSortBy)
	ctx.Step(`^I should see (\d+) transactions?$`, iShouldSeeTransactions)
	ctx.Step(`^the first visible transaction should be "([^"]*)"$`, theFirstVisibleTransactionShouldBe)
	ctx.Step(`^the transaction "([^"]*)" should show category "([^"]*)"$`, theTransactionShouldShowCategory)
}

func registerEditSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I start editing "([^"]*)"$`, iStartEditing)
	ctx.Step(`^I change the description to "([^"]*)"$`, iChangeTheDescriptionTo)
	ctx.Step(`^I pick the category "([^"]*)"$`, iPickTheCategory)
	ctx.Step(`^I clear the category$`, iClearTheCategory)
	ctx.Step(`^I choose to create a new category$`, iChooseToCreateANewCategory)
	ctx.Step(`^I name the new category "([^"]*)"$`, iNameTheNewCategory)
	ctx.Step(`^I confirm the new category$`, iConfirmTheNewCategory)
	ctx.Step(`^I save the edit$`, iSaveTheEdit)
	ctx.Step(`^I cancel the edit$`, iCancelTheEdit)
	ctx.Step(`^no row should be in edit mode$`, noRowShouldBeInEditMode)
	ctx.Step(`^the category dialog should be open$`, theCategoryDialogShouldBeOpen)
}

func registerFormSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I fill the entry form with date "([^"]*)", description "([^"]*)" and amount "([^"]*)"$`, iFillTheEntryForm)
	ctx.Step(`^I submit the entry form$`, iSubmitTheEntryForm)
	ctx.Step(`^the store should report a duplicate of "([^"]*)"$`, theStoreShouldReportADuplicateOf)
	ctx.Step(`^I save the entry anyway$`, iSaveTheEntryAnyway)
}

func registerRuleSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the rules are loaded$`, theRulesAreLoaded)
	ctx.Step(`^testing the merchant "([^"]*)" should match category "([^"]*)"$`, testingTheMerchantShouldMatch)
	ctx.Step(`^testing the merchant "([^"]*)" should match nothing$`, testingTheMerchantShouldMatchNothing)
}

// --- Table ---

func theDemoDataIsLoaded(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.list.Load(ctx); err != nil {
		return err
	}
	categories, err := tc.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	tc.table.SetTransactions(tc.list.Transactions())
	tc.table.SetCategories(categories)
	return nil
}

func iSearchFor(ctx context.Context, term string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.table.SetSearch(term)
	return nil
}

func iSortBy(ctx context.Context, column string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	switch strings.ToLower(column) {
	case "date":
		tc.table.ToggleSort(valueobject.SortKeyDate)
	case "amount":
		tc.table.ToggleSort(valueobject.SortKeyAmount)
	default:
		return fmt.Errorf("unknown sortable column %q", column)
	}
	return nil
}

func iShouldSeeTransactions(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := len(tc.table.Visible()); got != count {
		return fmt.Errorf("expected %d visible transactions, got %d", count, got)
	}
	return nil
}

func theFirstVisibleTransactionShouldBe(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	visible := tc.table.Visible()
	if len(visible) == 0 {
		return fmt.Errorf("no visible transactions")
	}
	if visible[0].Description != description {
		return fmt.Errorf("first visible transaction is %q, expected %q", visible[0].Description, description)
	}
	return nil
}

func theTransactionShouldShowCategory(ctx context.Context, description, categoryName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	txn, err := tc.visibleByDescription(description)
	if err != nil {
		return err
	}
	if got := txn.CategoryName(); got != categoryName {
		return fmt.Errorf("transaction %q shows category %q, expected %q", description, got, categoryName)
	}
	return nil
}

// --- Edit session ---

func iStartEditing(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	txn, err := tc.visibleByDescription(description)
	if err != nil {
		return err
	}
	return tc.table.EditRow(txn.ID)
}

func iChangeTheDescriptionTo(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.table.Session().SetDraftDescription(description)
}

func iPickTheCategory(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	category, err := tc.categoryByName(name)
	if err != nil {
		return err
	}
	return tc.table.Session().SelectCategory(category.ID.String())
}

func iClearTheCategory(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.table.Session().SelectCategory("")
}

func iChooseToCreateANewCategory(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.table.Session().SelectCategory(editsession.SentinelNewCategory)
}

func iNameTheNewCategory(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.table.Session().SetDialogName(name)
}

func iConfirmTheNewCategory(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := tc.table.Session().ConfirmDialog(ctx); err != nil {
		return err
	}
	// The selector options refresh after a successful creation.
	categories, err := tc.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	tc.table.SetCategories(categories)
	return nil
}

func iSaveTheEdit(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.table.SaveEdit(ctx)
}

func iCancelTheEdit(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.table.CancelEdit()
	return nil
}

func noRowShouldBeInEditMode(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.table.Session().State() != editsession.StateViewing {
		return fmt.Errorf("a row is still in edit mode")
	}
	return nil
}

func theCategoryDialogShouldBeOpen(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !tc.table.Session().DialogOpen() {
		return fmt.Errorf("category dialog is not open")
	}
	return nil
}

// --- Entry form ---

func iFillTheEntryForm(ctx context.Context, date, description, amount string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.form.Date = date
	tc.form.Description = description
	tc.form.Amount = amount
	return nil
}

func iSubmitTheEntryForm(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, tc.lastErr = tc.form.Submit(ctx)
	if tc.lastErr != nil && !errors.Is(tc.lastErr, domainerror.ErrDuplicateTransaction) {
		return tc.lastErr
	}
	return nil
}

func theStoreShouldReportADuplicateOf(ctx context.Context, merchant string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !errors.Is(tc.lastErr, domainerror.ErrDuplicateTransaction) {
		return fmt.Errorf("expected a duplicate conflict, got %v", tc.lastErr)
	}
	conflict := tc.form.Conflict()
	if conflict == nil || conflict.Existing == nil {
		return fmt.Errorf("conflict state not captured")
	}
	if conflict.Existing.Merchant != merchant {
		return fmt.Errorf("conflict names %q, expected %q", conflict.Existing.Merchant, merchant)
	}
	return nil
}

func iSaveTheEntryAnyway(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := tc.form.ForceSubmit(ctx); err != nil {
		return err
	}
	if err := tc.list.Load(ctx); err != nil {
		return err
	}
	tc.table.SetTransactions(tc.list.Transactions())
	return nil
}

// --- Rules ---

func theRulesAreLoaded(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.rules.Load(ctx)
}

func testingTheMerchantShouldMatch(ctx context.Context, merchant, categoryName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	result, err := tc.rules.Test(ctx, merchant)
	if err != nil {
		return err
	}
	if !result.Matched {
		return fmt.Errorf("merchant %q matched nothing, expected %q", merchant, categoryName)
	}
	if result.CategoryName != categoryName {
		return fmt.Errorf("merchant %q matched %q, expected %q", merchant, result.CategoryName, categoryName)
	}
	return nil
}

func testingTheMerchantShouldMatchNothing(ctx context.Context, merchant string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	result, err := tc.rules.Test(ctx, merchant)
	if err != nil {
		return err
	}
	if result.Matched {
		return fmt.Errorf("merchant %q matched %q, expected no match", merchant, result.CategoryName)
	}
	return nil
}
