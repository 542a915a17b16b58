package model

import (
	"slices"
	"testing"
)

func ids(trades []Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}

// TestNewLedger tests the first-run ledger.
//
// WHY: A new user starts with the two seed accounts and empty histories,
// never nil slices.
func TestNewLedger(t *testing.T) {
	l := NewLedger()

	if len(l.Trades) != 0 || len(l.Directions) != 0 {
		t.Errorf("Expected empty histories, got %d trades and %d directions", len(l.Trades), len(l.Directions))
	}
	if len(l.Accounts) != 2 {
		t.Fatalf("Expected 2 seed accounts, got %d", len(l.Accounts))
	}
	if l.Accounts[0].Name != "Personal Capital" || l.Accounts[0].Type != AccountPersonal {
		t.Errorf("Unexpected first seed account %+v", l.Accounts[0])
	}
	if l.Accounts[1].Name != "Just Capital" || l.Accounts[1].Type != AccountCapital {
		t.Errorf("Unexpected second seed account %+v", l.Accounts[1])
	}
}

// TestLedger_AddTrades tests that batches are prepended in batch order.
func TestLedger_AddTrades(t *testing.T) {
	l := &Ledger{Trades: []Trade{{ID: "t0"}}}

	l.AddTrades([]Trade{{ID: "t1"}, {ID: "t2"}})

	if want := []string{"t1", "t2", "t0"}; !slices.Equal(ids(l.Trades), want) {
		t.Errorf("Expected %v, got %v", want, ids(l.Trades))
	}
}

func TestLedger_DeleteTrade(t *testing.T) {
	l := &Ledger{Trades: []Trade{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	if !l.DeleteTrade("b") {
		t.Fatal("Expected DeleteTrade(b) to report a removal")
	}
	if want := []string{"a", "c"}; !slices.Equal(ids(l.Trades), want) {
		t.Errorf("Expected %v, got %v", want, ids(l.Trades))
	}
	if l.DeleteTrade("missing") {
		t.Error("Expected DeleteTrade(missing) to report nothing removed")
	}
}

// TestLedger_DeleteAccountOrphansTrades tests account removal.
//
// WHY: Trades refer to accounts by name. Removing an account must keep its
// trades as they are so they show up as orphaned.
func TestLedger_DeleteAccountOrphansTrades(t *testing.T) {
	// Setup
	l := NewLedger()
	l.AddTrades([]Trade{{ID: "t1", AccountType: "Just Capital", PnL: 12}})

	// Execute
	removed, ok := l.DeleteAccount("capital-1")

	// Assert
	if !ok {
		t.Fatal("Expected capital-1 to be removed")
	}
	if removed.Name != "Just Capital" {
		t.Errorf("Expected removed account 'Just Capital', got %q", removed.Name)
	}
	if len(l.Accounts) != 1 {
		t.Errorf("Expected 1 account left, got %d", len(l.Accounts))
	}
	if len(l.Trades) != 1 || l.Trades[0].AccountType != "Just Capital" {
		t.Errorf("Expected trade kept on 'Just Capital', got %+v", l.Trades)
	}
	if _, ok := l.FindAccount("Just Capital"); ok {
		t.Error("Expected 'Just Capital' to be gone from the accounts")
	}
}

func TestLedger_Directions(t *testing.T) {
	l := &Ledger{Directions: []DailyDirection{{ID: "d1", Outcome: OutcomePending}}}

	d := l.FindDirection("d1")
	if d == nil {
		t.Fatal("Expected to find direction d1")
	}
	d.Outcome = OutcomeCorrect
	if l.Directions[0].Outcome != OutcomeCorrect {
		t.Errorf("Expected FindDirection to return a pointer into the ledger, outcome is %s", l.Directions[0].Outcome)
	}

	if l.FindDirection("nope") != nil {
		t.Error("Expected nil for an unknown direction")
	}
	if !l.DeleteDirection("d1") {
		t.Error("Expected DeleteDirection(d1) to report a removal")
	}
	if len(l.Directions) != 0 {
		t.Errorf("Expected no directions left, got %d", len(l.Directions))
	}
}
