// Package rule contains the auto-categorization rules controller.
package rule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
)

// Controller owns the in-memory rule list and its mutations. Toggling a
// rule's enabled flag is optimistic: the local copy flips immediately and
// rolls back if the store refuses. Two overlapping toggles resolve
// last-response-wins; that race is accepted and documented, not fixed.
// Not safe for concurrent use; access is serialized by the UI event loop.
type Controller struct {
	store adapter.RecordStore
	rules []*entity.Rule
}

// NewController creates a rules controller bound to the record store.
func NewController(store adapter.RecordStore) *Controller {
	return &Controller{store: store}
}

// Rules returns the current in-memory rule list.
func (c *Controller) Rules() []*entity.Rule {
	return c.rules
}

// Load replaces the in-memory list with the store's current rules.
func (c *Controller) Load(ctx context.Context) error {
	rules, err := c.store.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	c.rules = rules
	return nil
}

// Create creates a rule and appends the store's copy to the list.
func (c *Controller) Create(ctx context.Context, req adapter.RuleRequest) (*entity.Rule, error) {
	created, err := c.store.CreateRule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}
	c.rules = append(c.rules, created)
	return created, nil
}

// Update replaces a rule's fields and merges the store's copy into the list.
func (c *Controller) Update(ctx context.Context, id uuid.UUID, req adapter.RuleRequest) (*entity.Rule, error) {
	updated, err := c.store.UpdateRule(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}
	c.replace(updated)
	return updated, nil
}

// Delete removes a rule from the store and the local list.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.store.DeleteRule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	next := make([]*entity.Rule, 0, len(c.rules))
	for _, r := range c.rules {
		if r.ID != id {
			next = append(next, r)
		}
	}
	c.rules = next
	return nil
}

// ToggleEnabled flips a rule's enabled flag optimistically, then persists
// it. On store failure the local flag flips back and the error is surfaced.
func (c *Controller) ToggleEnabled(ctx context.Context, id uuid.UUID, next bool) error {
	target := c.find(id)
	if target == nil {
		return domainerror.NewStoreError(
			domainerror.ErrCodeRuleNotFound,
			"rule not found",
			domainerror.ErrRuleNotFound,
		)
	}

	previous := target.Enabled
	target.Enabled = next

	_, err := c.store.UpdateRule(ctx, id, adapter.RuleRequest{
		Pattern:    target.Pattern,
		MatchType:  target.MatchType,
		CategoryID: target.CategoryID,
		Priority:   target.Priority,
		Enabled:    next,
	})
	if err != nil {
		slog.Warn("Rule toggle failed, rolling back", "rule_id", id, "error", err)
		target.Enabled = previous
		return fmt.Errorf("failed to toggle rule: %w", err)
	}
	return nil
}

// Test asks the store which rule would match the merchant.
func (c *Controller) Test(ctx context.Context, merchant string) (*adapter.RuleTestResult, error) {
	result, err := c.store.TestRule(ctx, merchant)
	if err != nil {
		return nil, fmt.Errorf("failed to test rule: %w", err)
	}
	return result, nil
}

// PreviewMatch runs the local copy of the rules against the merchant. The
// store remains authoritative; the preview only saves a round-trip and must
// stay in sync with the store's normalization.
func (c *Controller) PreviewMatch(merchant string) *entity.Rule {
	return entity.FirstMatch(c.rules, merchant)
}

func (c *Controller) find(id uuid.UUID) *entity.Rule {
	for _, r := range c.rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (c *Controller) replace(updated *entity.Rule) {
	for i, r := range c.rules {
		if r.ID == updated.ID {
			c.rules[i] = updated
			return
		}
	}
}
