package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
	"github.com/finpilot/client/test/mock"
)

func record(id, description string) *entity.Transaction {
	return &entity.Transaction{
		ID:          id,
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString("10.00"),
	}
}

func listIDs(txns []*entity.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestLoadNotifiesDependents(t *testing.T) {
	store := &mock.RecordStore{Transactions: []*entity.Transaction{record("a", "First")}}
	notified := 0
	controller := NewListController(store, func() { notified++ })

	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(controller.Transactions()) != 1 {
		t.Errorf("got %d transactions, want 1", len(controller.Transactions()))
	}
	if notified != 1 {
		t.Errorf("onChanged fired %d times, want 1", notified)
	}
}

func TestSyncReloadsAfterwards(t *testing.T) {
	store := &mock.RecordStore{Transactions: []*entity.Transaction{record("a", "First")}}
	controller := NewListController(store, nil)

	result, err := controller.Sync(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "COMPLETE" {
		t.Errorf("sync status = %q", result.Status)
	}
	if store.SyncCalls != 1 || store.ListCalls != 1 {
		t.Errorf("sync=%d list=%d, want 1 each", store.SyncCalls, store.ListCalls)
	}
}

func TestReplaceSwapsRecordAndSlice(t *testing.T) {
	store := &mock.RecordStore{}
	controller := NewListController(store, nil)
	store.Transactions = []*entity.Transaction{record("a", "First"), record("b", "Second")}
	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := controller.Transactions()

	controller.Replace(record("b", "Second, renamed"))

	after := controller.Transactions()
	if &before[0] == &after[0] {
		t.Error("Replace must swap in a fresh slice so memoized views recompute")
	}
	if after[1].Description != "Second, renamed" {
		t.Errorf("record not replaced: %q", after[1].Description)
	}
}

func TestDeleteConfirmationFlow(t *testing.T) {
	store := &mock.RecordStore{Transactions: []*entity.Transaction{record("a", "First"), record("b", "Second")}}
	controller := NewListController(store, nil)
	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	controller.RequestDelete("b")
	if id, ok := controller.PendingDelete(); !ok || id != "b" {
		t.Fatalf("pending delete = (%q, %v), want (b, true)", id, ok)
	}

	controller.CancelDelete()
	if _, ok := controller.PendingDelete(); ok {
		t.Fatal("cancel should clear the pending delete")
	}
	if len(store.DeleteCalls) != 0 {
		t.Errorf("cancel dispatched %d delete calls", len(store.DeleteCalls))
	}

	controller.RequestDelete("b")
	if err := controller.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := listIDs(controller.Transactions())
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("transactions after delete = %v, want [a]", got)
	}
	if len(store.DeleteCalls) != 1 || store.DeleteCalls[0] != "b" {
		t.Errorf("delete calls = %v, want [b]", store.DeleteCalls)
	}
}

func TestConfirmDeleteRollsBackOnFailure(t *testing.T) {
	store := &mock.RecordStore{
		Transactions: []*entity.Transaction{record("a", "First"), record("b", "Second"), record("c", "Third")},
		DeleteErr:    domainerror.ErrStoreUnavailable,
	}
	notified := 0
	controller := NewListController(store, func() { notified++ })
	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notified = 0

	controller.RequestDelete("b")
	err := controller.ConfirmDelete(context.Background())
	if !errors.Is(err, domainerror.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}

	got := listIDs(controller.Transactions())
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("rollback order = %v, want [a b c]", got)
	}
	// One notification for the optimistic removal, one for the rollback.
	if notified != 2 {
		t.Errorf("onChanged fired %d times, want 2", notified)
	}
}

func TestConfirmDeleteWithoutRequest(t *testing.T) {
	controller := NewListController(&mock.RecordStore{}, nil)

	err := controller.ConfirmDelete(context.Background())
	if !errors.Is(err, domainerror.ErrNoActiveEdit) {
		t.Errorf("error = %v, want ErrNoActiveEdit", err)
	}
}
