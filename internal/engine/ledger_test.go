package engine

import (
	"testing"
	"time"
)

func TestConfirmSettlement(t *testing.T) {
	suggestion := Suggestion{PayerID: "A", PayeeID: "B", Amount: 42.50}

	before := time.Now().UTC()
	payment := ConfirmSettlement(suggestion, "g1")
	after := time.Now().UTC()

	if payment.ID == "" {
		t.Error("payment ID is empty")
	}
	if payment.GroupID != "g1" {
		t.Errorf("GroupID = %s, want g1", payment.GroupID)
	}
	if payment.PayerID != "A" || payment.PayeeID != "B" {
		t.Errorf("parties = %s -> %s, want A -> B", payment.PayerID, payment.PayeeID)
	}
	if payment.Amount != 42.50 {
		t.Errorf("Amount = %v, want 42.50", payment.Amount)
	}
	if payment.Date.Before(before) || payment.Date.After(after) {
		t.Errorf("Date = %v, want between %v and %v", payment.Date, before, after)
	}

	other := ConfirmSettlement(suggestion, "g1")
	if other.ID == payment.ID {
		t.Error("consecutive confirmations share an ID")
	}
}

// TestConfirmedPaymentsAreNeverResuggested runs the full feedback loop:
// balances -> suggestions -> confirmations -> recomputed balances. After
// every suggestion is confirmed the group is settled and the solver goes
// quiet.
func TestConfirmedPaymentsAreNeverResuggested(t *testing.T) {
	members := []Member{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	expenses := []Expense{
		{ID: "e1", Description: "hotel", Amount: 300.00, PayerID: "A",
			Participants: []string{"A", "B", "C"}, Strategy: SplitEqual},
		{ID: "e2", Description: "museum", Amount: 45.00, PayerID: "B",
			Participants: []string{"B", "C"}, Strategy: SplitEqual},
	}

	balances, _ := ComputeBalances(members, expenses, nil)
	suggestions, _ := SuggestSettlements(balances)
	if len(suggestions) == 0 {
		t.Fatal("expected outstanding suggestions before settling")
	}

	var payments []SettlementPayment
	for _, s := range suggestions {
		payments = append(payments, ConfirmSettlement(s, "g1"))
	}

	settled, _ := ComputeBalances(members, expenses, payments)
	for _, b := range settled {
		if !almostEqual(b.Amount, 0) {
			t.Errorf("balance[%s] = %v after settling, want ~0", b.MemberID, b.Amount)
		}
	}

	remaining, warnings := SuggestSettlements(settled)
	if len(remaining) != 0 {
		t.Errorf("solver still suggests %v after all payments confirmed", remaining)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}
