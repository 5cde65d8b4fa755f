package engine

import (
	"testing"
	"time"
)

func balanceByMember(balances []Balance) map[string]float64 {
	m := make(map[string]float64, len(balances))
	for _, b := range balances {
		m[b.MemberID] = b.Amount
	}
	return m
}

func assertZeroSum(t *testing.T, balances []Balance) {
	t.Helper()
	sum := 0.0
	for _, b := range balances {
		sum += b.Amount
	}
	if !almostEqual(sum, 0) {
		t.Errorf("balances sum to %v, want 0 within %v", sum, Epsilon)
	}
}

func TestComputeBalances(t *testing.T) {
	members := []Member{
		{ID: "A", Name: "Alice"},
		{ID: "B", Name: "Bob"},
		{ID: "C", Name: "Carol"},
	}

	t.Run("equal split credits payer and debits participants", func(t *testing.T) {
		expenses := []Expense{{
			ID: "e1", Description: "dinner", Amount: 90.00, PayerID: "A",
			Participants: []string{"A", "B", "C"},
			Strategy:     SplitEqual,
		}}

		balances, warnings := ComputeBalances(members, expenses, nil)
		if len(warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", warnings)
		}

		got := balanceByMember(balances)
		want := map[string]float64{"A": 60.00, "B": -30.00, "C": -30.00}
		for id, amount := range want {
			if got[id] != amount {
				t.Errorf("balance[%s] = %v, want %v", id, got[id], amount)
			}
		}
		assertZeroSum(t, balances)
	})

	t.Run("payer outside participants and uninvolved member", func(t *testing.T) {
		roster := append(members, Member{ID: "D", Name: "Dave"})
		expenses := []Expense{{
			ID: "e2", Description: "taxi", Amount: 100.00, PayerID: "A",
			Participants: []string{"B", "C"},
			Strategy:     SplitFixedAmount,
			RawInputs:    map[string]float64{"B": 40.00, "C": 60.00},
		}}

		balances, _ := ComputeBalances(roster, expenses, nil)
		got := balanceByMember(balances)
		want := map[string]float64{"A": 100.00, "B": -40.00, "C": -60.00, "D": 0.00}
		for id, amount := range want {
			if got[id] != amount {
				t.Errorf("balance[%s] = %v, want %v", id, got[id], amount)
			}
		}
		assertZeroSum(t, balances)
	})

	t.Run("settlement payments discharge debt", func(t *testing.T) {
		expenses := []Expense{{
			ID: "e3", Description: "groceries", Amount: 90.00, PayerID: "A",
			Participants: []string{"A", "B", "C"},
			Strategy:     SplitEqual,
		}}
		payments := []SettlementPayment{{
			ID: "p1", GroupID: "g1", PayerID: "B", PayeeID: "A",
			Amount: 30.00, Date: time.Now(),
		}}

		balances, _ := ComputeBalances(members, expenses, payments)
		got := balanceByMember(balances)
		want := map[string]float64{"A": 30.00, "B": 0.00, "C": -30.00}
		for id, amount := range want {
			if got[id] != amount {
				t.Errorf("balance[%s] = %v, want %v", id, got[id], amount)
			}
		}
		assertZeroSum(t, balances)
	})

	t.Run("payments referencing removed members are skipped", func(t *testing.T) {
		payments := []SettlementPayment{{
			ID: "p2", GroupID: "g1", PayerID: "B", PayeeID: "gone",
			Amount: 10.00, Date: time.Now(),
		}}

		balances, _ := ComputeBalances(members, nil, payments)
		for _, b := range balances {
			if b.Amount != 0 {
				t.Errorf("balance[%s] = %v, want 0", b.MemberID, b.Amount)
			}
		}
	})

	t.Run("removed member excluded from roster but history remains", func(t *testing.T) {
		expenses := []Expense{{
			ID: "e4", Description: "lunch", Amount: 90.00, PayerID: "A",
			Participants: []string{"A", "B", "C"},
			Strategy:     SplitEqual,
		}}
		// C left the group: only A and B share the expense now.
		roster := []Member{{ID: "A", Name: "Alice"}, {ID: "B", Name: "Bob"}}

		balances, _ := ComputeBalances(roster, expenses, nil)
		got := balanceByMember(balances)
		if len(balances) != 2 {
			t.Fatalf("got %d balances, want 2", len(balances))
		}
		if got["A"] != 45.00 || got["B"] != -45.00 {
			t.Errorf("balances = %v, want A:45.00 B:-45.00", got)
		}
		assertZeroSum(t, balances)
	})

	t.Run("fallback warning surfaces without aborting", func(t *testing.T) {
		expenses := []Expense{{
			ID: "e5", Description: "drinks", Amount: 60.00, PayerID: "A",
			Participants: []string{"A", "B", "C"},
			Strategy:     SplitPercentage, // raw inputs lost
		}}

		balances, warnings := ComputeBalances(members, expenses, nil)
		if len(warnings) != 1 || warnings[0].Kind != WarnMissingSplitInputs {
			t.Fatalf("warnings = %v, want one %s", warnings, WarnMissingSplitInputs)
		}
		got := balanceByMember(balances)
		if got["A"] != 40.00 || got["B"] != -20.00 || got["C"] != -20.00 {
			t.Errorf("balances = %v, want equal-split fallback", got)
		}
	})
}

// TestComputeBalancesZeroSum folds a messy mixed-strategy ledger and checks
// the zero-sum invariant survives every remainder correction.
func TestComputeBalancesZeroSum(t *testing.T) {
	members := []Member{
		{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}, {ID: "E"},
	}
	expenses := []Expense{
		{ID: "e1", Description: "rent", Amount: 1000.01, PayerID: "A",
			Participants: []string{"A", "B", "C"}, Strategy: SplitEqual},
		{ID: "e2", Description: "utilities", Amount: 77.77, PayerID: "B",
			Participants: []string{"A", "B", "C", "D", "E"}, Strategy: SplitShares,
			RawInputs: map[string]float64{"A": 1, "B": 2, "C": 3, "D": 5, "E": 7}},
		{ID: "e3", Description: "internet", Amount: 59.99, PayerID: "C",
			Participants: []string{"C", "D", "E"}, Strategy: SplitPercentage,
			RawInputs: map[string]float64{"C": 33.4, "D": 33.3, "E": 33.3}},
		{ID: "e4", Description: "cleaning", Amount: 45.00, PayerID: "D",
			Participants: []string{"A", "E"}, Strategy: SplitFixedAmount,
			RawInputs: map[string]float64{"A": 20.00, "E": 25.00}},
	}
	payments := []SettlementPayment{
		{ID: "p1", PayerID: "B", PayeeID: "A", Amount: 50.00},
		{ID: "p2", PayerID: "E", PayeeID: "A", Amount: 12.34},
	}

	balances, warnings := ComputeBalances(members, expenses, payments)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	assertZeroSum(t, balances)
}

// TestComputeBalancesIdempotent verifies that recomputation over unchanged
// snapshots yields identical results.
func TestComputeBalancesIdempotent(t *testing.T) {
	members := []Member{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	expenses := []Expense{{
		ID: "e1", Description: "trip", Amount: 100.00, PayerID: "B",
		Participants: []string{"A", "B", "C"},
		Strategy:     SplitEqual,
	}}

	first, _ := ComputeBalances(members, expenses, nil)
	second, _ := ComputeBalances(members, expenses, nil)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("balance[%d] differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
