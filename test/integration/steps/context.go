// Package steps provides step definitions for BDD integration tests. Each
// scenario gets a seeded fake record store plus the client controllers wired
// the same way the demo mode wires them.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finpilot/client/internal/application/usecase/rule"
	"github.com/finpilot/client/internal/application/usecase/table"
	"github.com/finpilot/client/internal/application/usecase/transaction"
	"github.com/finpilot/client/internal/domain/entity"
	"github.com/finpilot/client/internal/infra/fakestore"
	"github.com/finpilot/client/internal/integration/recordstore"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	server *httptest.Server
	store  *recordstore.Client

	list  *transaction.ListController
	table *table.Controller
	rules *rule.Controller
	form  *transaction.Form

	lastErr error
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fake, err := fakestore.NewServer()
		if err != nil {
			return ctx, fmt.Errorf("failed to create fake store: %w", err)
		}
		if err := fake.Seed(); err != nil {
			return ctx, fmt.Errorf("failed to seed fake store: %w", err)
		}

		tc := &TestContext{server: httptest.NewServer(fake.Handler())}
		tc.store = recordstore.NewClient(tc.server.URL+"/api/v1", 5*time.Second)
		tc.list = transaction.NewListController(tc.store, nil)
		tc.table = table.NewController(tc.store, func(txn *entity.Transaction) {
			tc.list.Replace(txn)
			tc.table.SetTransactions(tc.list.Transactions())
		})
		tc.rules = rule.NewController(tc.store)
		tc.form = transaction.NewForm(tc.store)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerTableSteps(ctx)
	registerEditSteps(ctx)
	registerFormSteps(ctx)
	registerRuleSteps(ctx)
}

// visibleByDescription finds a visible row by its description.
func (tc *TestContext) visibleByDescription(description string) (*entity.Transaction, error) {
	for _, txn := range tc.table.Visible() {
		if txn.Description == description {
			return txn, nil
		}
	}
	return nil, fmt.Errorf("no visible transaction described %q", description)
}

// categoryByName finds a loaded category by name.
func (tc *TestContext) categoryByName(name string) (*entity.Category, error) {
	for _, category := range tc.table.Categories() {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, fmt.Errorf("no category named %q", name)
}
