package engine

import "testing"

// applySuggestions simulates executing every suggested transfer against the
// given balances and returns the resulting positions.
func applySuggestions(balances []Balance, suggestions []Suggestion) map[string]float64 {
	result := balanceByMember(balances)
	for _, s := range suggestions {
		result[s.PayerID] = Round2(result[s.PayerID] + s.Amount)
		result[s.PayeeID] = Round2(result[s.PayeeID] - s.Amount)
	}
	return result
}

func TestSuggestSettlements(t *testing.T) {
	tests := []struct {
		name      string
		balances  []Balance
		want      []Suggestion
		wantWarns int
	}{
		{
			name:     "fully settled yields no suggestions",
			balances: []Balance{{"A", 0.00}, {"B", 0.005}, {"C", -0.005}},
			want:     nil,
		},
		{
			name:     "single debt",
			balances: []Balance{{"A", -30.00}, {"B", 30.00}},
			want:     []Suggestion{{PayerID: "A", PayeeID: "B", Amount: 30.00}},
		},
		{
			name: "greedy largest-first matching",
			balances: []Balance{
				{"A", -130.00}, {"B", 150.00}, {"C", -75.50}, {"D", 75.50}, {"E", -20.00},
			},
			want: []Suggestion{
				{PayerID: "A", PayeeID: "B", Amount: 130.00},
				{PayerID: "C", PayeeID: "D", Amount: 75.50},
				{PayerID: "E", PayeeID: "B", Amount: 20.00},
			},
		},
		{
			name:     "equal balances break ties on member id",
			balances: []Balance{{"B", -10.00}, {"A", -10.00}, {"C", 20.00}},
			want: []Suggestion{
				{PayerID: "A", PayeeID: "C", Amount: 10.00},
				{PayerID: "B", PayeeID: "C", Amount: 10.00},
			},
		},
		{
			name:     "creditor split across debtors",
			balances: []Balance{{"A", -60.00}, {"B", -40.00}, {"C", 100.00}},
			want: []Suggestion{
				{PayerID: "A", PayeeID: "C", Amount: 60.00},
				{PayerID: "B", PayeeID: "C", Amount: 40.00},
			},
		},
		{
			name:      "unbalanced input leaves residual warning",
			balances:  []Balance{{"A", -50.00}, {"B", 30.00}},
			want:      []Suggestion{{PayerID: "A", PayeeID: "B", Amount: 30.00}},
			wantWarns: 1,
		},
		{
			name:      "one-sided dust is reported not looped on",
			balances:  []Balance{{"A", -0.02}},
			want:      nil,
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := SuggestSettlements(tt.balances)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d suggestions (%v), want %d", len(got), got, len(tt.want))
			}
			for i, want := range tt.want {
				if got[i] != want {
					t.Errorf("suggestion[%d] = %+v, want %+v", i, got[i], want)
				}
			}
			if len(warnings) != tt.wantWarns {
				t.Errorf("got %d warnings (%v), want %d", len(warnings), warnings, tt.wantWarns)
			}
			for _, w := range warnings {
				if w.Kind != WarnResidualSettlement {
					t.Errorf("warning kind = %s, want %s", w.Kind, WarnResidualSettlement)
				}
			}
		})
	}
}

// TestSuggestSettlementsDriveToZero checks the settlement-correctness
// property: executing every suggestion brings all balances within Epsilon of
// zero, and each member's suggested transfers sum to their original balance.
func TestSuggestSettlementsDriveToZero(t *testing.T) {
	balances := []Balance{
		{"A", -130.00}, {"B", 150.00}, {"C", -75.50}, {"D", 75.50}, {"E", -20.00},
	}

	suggestions, warnings := SuggestSettlements(balances)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	paid := make(map[string]float64)
	received := make(map[string]float64)
	for _, s := range suggestions {
		paid[s.PayerID] += s.Amount
		received[s.PayeeID] += s.Amount
	}
	for _, b := range balances {
		if b.Amount < 0 && !almostEqual(paid[b.MemberID], -b.Amount) {
			t.Errorf("debtor %s pays %v, want %v", b.MemberID, paid[b.MemberID], -b.Amount)
		}
		if b.Amount > 0 && !almostEqual(received[b.MemberID], b.Amount) {
			t.Errorf("creditor %s receives %v, want %v", b.MemberID, received[b.MemberID], b.Amount)
		}
	}

	for id, remaining := range applySuggestions(balances, suggestions) {
		if !almostEqual(remaining, 0) {
			t.Errorf("member %s left at %v after settling, want ~0", id, remaining)
		}
	}
}

// TestSuggestSettlementsDeterministic verifies repeated runs over the same
// balances emit the identical suggestion sequence.
func TestSuggestSettlementsDeterministic(t *testing.T) {
	balances := []Balance{
		{"E", -20.00}, {"B", 150.00}, {"A", -130.00}, {"D", 75.50}, {"C", -75.50},
	}

	first, _ := SuggestSettlements(balances)
	second, _ := SuggestSettlements(balances)
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("suggestion[%d] differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
