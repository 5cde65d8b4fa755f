package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name       string
		expense    Expense
		current    []string
		wantShares Shares
		wantWarns  []WarningKind
	}{
		{
			name: "equal split three ways",
			expense: Expense{
				ID: "e1", Amount: 90.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitEqual,
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"A": 30.00, "B": 30.00, "C": 30.00},
		},
		{
			name: "equal split with rounding remainder to first participant",
			expense: Expense{
				ID: "e2", Amount: 100.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitEqual,
			},
			current: []string{"A", "B", "C"},
			// 100/3 rounds to 33.33 each; the missing cent goes to A.
			wantShares: Shares{"A": 33.34, "B": 33.33, "C": 33.33},
		},
		{
			name: "fixed amounts used as-is",
			expense: Expense{
				ID: "e3", Amount: 100.00, PayerID: "A",
				Participants: []string{"B", "C"},
				Strategy:     SplitFixedAmount,
				RawInputs:    map[string]float64{"B": 40.00, "C": 60.00},
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"B": 40.00, "C": 60.00},
		},
		{
			name: "fixed amounts not reconciled on sum mismatch",
			expense: Expense{
				ID: "e4", Amount: 100.00, PayerID: "A",
				Participants: []string{"B", "C"},
				Strategy:     SplitFixedAmount,
				RawInputs:    map[string]float64{"B": 40.00, "C": 50.00},
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"B": 40.00, "C": 50.00},
			wantWarns:  []WarningKind{WarnSplitSumMismatch},
		},
		{
			name: "percentage split",
			expense: Expense{
				ID: "e5", Amount: 200.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitPercentage,
				RawInputs:    map[string]float64{"A": 50, "B": 25, "C": 25},
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"A": 100.00, "B": 50.00, "C": 50.00},
		},
		{
			name: "percentage split remainder correction",
			expense: Expense{
				ID: "e6", Amount: 10.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitPercentage,
				RawInputs:    map[string]float64{"A": 33.33, "B": 33.33, "C": 33.34},
			},
			current: []string{"A", "B", "C"},
			// Each rounds to 3.33, summing to 9.99; A absorbs the cent.
			wantShares: Shares{"A": 3.34, "B": 3.33, "C": 3.33},
		},
		{
			name: "weighted shares",
			expense: Expense{
				ID: "e7", Amount: 120.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitShares,
				RawInputs:    map[string]float64{"A": 1, "B": 2, "C": 3},
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"A": 20.00, "B": 40.00, "C": 60.00},
		},
		{
			name: "weighted shares remainder correction",
			expense: Expense{
				ID: "e8", Amount: 100.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitShares,
				RawInputs:    map[string]float64{"A": 1, "B": 1, "C": 1},
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"A": 33.34, "B": 33.33, "C": 33.33},
		},
		{
			name: "missing raw inputs falls back to equal split",
			expense: Expense{
				ID: "e9", Amount: 90.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitShares,
			},
			current:    []string{"A", "B", "C"},
			wantShares: Shares{"A": 30.00, "B": 30.00, "C": 30.00},
			wantWarns:  []WarningKind{WarnMissingSplitInputs},
		},
		{
			name: "non-positive weight total falls back to equal split",
			expense: Expense{
				ID: "e10", Amount: 50.00, PayerID: "A",
				Participants: []string{"A", "B"},
				Strategy:     SplitShares,
				RawInputs:    map[string]float64{"A": 5},
			},
			// A was removed from the group, leaving only B with weight 0.
			current:    []string{"B"},
			wantShares: Shares{"B": 50.00},
			wantWarns:  []WarningKind{WarnNonPositiveShareTotal},
		},
		{
			name: "removed participant is excluded",
			expense: Expense{
				ID: "e11", Amount: 90.00, PayerID: "A",
				Participants: []string{"A", "B", "C"},
				Strategy:     SplitEqual,
			},
			current:    []string{"A", "B"},
			wantShares: Shares{"A": 45.00, "B": 45.00},
		},
		{
			name: "no current participants yields empty shares",
			expense: Expense{
				ID: "e12", Amount: 90.00, PayerID: "A",
				Participants: []string{"B", "C"},
				Strategy:     SplitEqual,
			},
			current:    []string{"A"},
			wantShares: Shares{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, warnings := ComputeShares(tt.expense, tt.current)

			if len(shares) != len(tt.wantShares) {
				t.Fatalf("got %d shares, want %d (%v)", len(shares), len(tt.wantShares), shares)
			}
			for id, want := range tt.wantShares {
				if got := shares[id]; got != want {
					t.Errorf("share[%s] = %v, want %v", id, got, want)
				}
			}

			if len(warnings) != len(tt.wantWarns) {
				t.Fatalf("got %d warnings (%v), want %d", len(warnings), warnings, len(tt.wantWarns))
			}
			for i, kind := range tt.wantWarns {
				if warnings[i].Kind != kind {
					t.Errorf("warning[%d].Kind = %s, want %s", i, warnings[i].Kind, kind)
				}
			}
		})
	}
}

// TestShareSumExactness checks the central numeric invariant: for every
// proportional strategy the shares sum to the expense amount exactly to the
// cent, no matter how awkwardly the division rounds.
func TestShareSumExactness(t *testing.T) {
	participants := []string{"A", "B", "C", "D", "E", "F", "G"}
	weights := map[string]float64{"A": 1, "B": 3, "C": 7, "D": 2, "E": 5, "F": 11, "G": 13}
	percentages := map[string]float64{"A": 14.3, "B": 14.3, "C": 14.3, "D": 14.3, "E": 14.3, "F": 14.3, "G": 14.2}

	amounts := []float64{0.01, 0.05, 1.00, 7.77, 99.99, 100.00, 123.45, 1000.01}
	strategies := []struct {
		strategy SplitStrategy
		inputs   map[string]float64
	}{
		{SplitEqual, nil},
		{SplitPercentage, percentages},
		{SplitShares, weights},
	}

	for _, s := range strategies {
		for _, amount := range amounts {
			exp := Expense{
				ID: "exact", Amount: amount, PayerID: "A",
				Participants: participants,
				Strategy:     s.strategy,
				RawInputs:    s.inputs,
			}
			shares, warnings := ComputeShares(exp, participants)
			if len(warnings) != 0 {
				t.Fatalf("%s/%v: unexpected warnings %v", s.strategy, amount, warnings)
			}
			sum := 0.0
			for _, share := range shares {
				sum += share
			}
			if Round2(sum) != Round2(amount) {
				t.Errorf("%s/%v: shares sum to %v, want %v", s.strategy, amount, Round2(sum), amount)
			}
		}
	}
}
