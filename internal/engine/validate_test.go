package engine

import (
	"errors"
	"testing"
)

func TestValidateExpense(t *testing.T) {
	current := []string{"A", "B", "C"}

	valid := ExpenseDraft{
		Description:  "dinner",
		Amount:       90.00,
		PayerID:      "A",
		Participants: []string{"A", "B", "C"},
		Strategy:     SplitEqual,
	}

	tests := []struct {
		name       string
		mutate     func(d *ExpenseDraft)
		wantErr    error
		wantField  string
		wantMember string
	}{
		{
			name:   "valid equal split",
			mutate: func(d *ExpenseDraft) {},
		},
		{
			name: "valid percentage split",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitPercentage
				d.RawInputs = map[string]float64{"A": 50, "B": 30, "C": 20}
			},
		},
		{
			name:      "blank description",
			mutate:    func(d *ExpenseDraft) { d.Description = "   " },
			wantErr:   ErrEmptyDescription,
			wantField: "description",
		},
		{
			name:      "zero amount",
			mutate:    func(d *ExpenseDraft) { d.Amount = 0 },
			wantErr:   ErrNonPositiveAmount,
			wantField: "amount",
		},
		{
			name:      "negative amount",
			mutate:    func(d *ExpenseDraft) { d.Amount = -5 },
			wantErr:   ErrNonPositiveAmount,
			wantField: "amount",
		},
		{
			name:      "no payer",
			mutate:    func(d *ExpenseDraft) { d.PayerID = "" },
			wantErr:   ErrNoPayer,
			wantField: "payer",
		},
		{
			name:      "payer not a current member",
			mutate:    func(d *ExpenseDraft) { d.PayerID = "Z" },
			wantErr:   ErrPayerNotMember,
			wantField: "payer",
		},
		{
			name:      "no participants",
			mutate:    func(d *ExpenseDraft) { d.Participants = nil },
			wantErr:   ErrNoParticipants,
			wantField: "participants",
		},
		{
			name:       "participant not a current member",
			mutate:     func(d *ExpenseDraft) { d.Participants = []string{"A", "Z"} },
			wantErr:    ErrParticipantNotMember,
			wantField:  "participants",
			wantMember: "Z",
		},
		{
			name:      "unknown strategy",
			mutate:    func(d *ExpenseDraft) { d.Strategy = "HALVSIES" },
			wantErr:   ErrUnknownStrategy,
			wantField: "split_type",
		},
		{
			name: "missing split value",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitFixedAmount
				d.RawInputs = map[string]float64{"A": 45.00, "B": 45.00}
			},
			wantErr:    ErrMissingSplitInput,
			wantField:  "split_values",
			wantMember: "C",
		},
		{
			name: "negative fixed amount",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitFixedAmount
				d.RawInputs = map[string]float64{"A": 100.00, "B": -10.00, "C": 0.00}
			},
			wantErr:    ErrNegativeSplitInput,
			wantField:  "split_values",
			wantMember: "B",
		},
		{
			name: "fixed amounts do not sum to total",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitFixedAmount
				d.RawInputs = map[string]float64{"A": 30.00, "B": 30.00, "C": 20.00}
			},
			wantErr:   ErrAmountSumMismatch,
			wantField: "split_values",
		},
		{
			name: "percentages do not sum to 100",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitPercentage
				d.RawInputs = map[string]float64{"A": 50, "B": 30, "C": 10}
			},
			wantErr:   ErrPercentSumMismatch,
			wantField: "split_values",
		},
		{
			name: "zero share weight",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitShares
				d.RawInputs = map[string]float64{"A": 1, "B": 0, "C": 2}
			},
			wantErr:    ErrNonPositiveWeight,
			wantField:  "split_values",
			wantMember: "B",
		},
		{
			name: "share weights have no upper bound",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = SplitShares
				d.RawInputs = map[string]float64{"A": 1000, "B": 2500, "C": 9999}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := valid
			draft.Participants = append([]string(nil), valid.Participants...)
			tt.mutate(&draft)

			err := ValidateExpense(draft, current)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateExpense() = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateExpense() = %v, want %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not a *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
			if verr.MemberID != tt.wantMember {
				t.Errorf("MemberID = %s, want %s", verr.MemberID, tt.wantMember)
			}
		})
	}
}

// Percentage and fixed-amount sums are checked within Epsilon, so realistic
// rounding noise in the submitted values must still pass.
func TestValidateExpenseSumTolerance(t *testing.T) {
	current := []string{"A", "B", "C"}
	draft := ExpenseDraft{
		Description:  "brunch",
		Amount:       10.00,
		PayerID:      "A",
		Participants: []string{"A", "B", "C"},
		Strategy:     SplitPercentage,
		RawInputs:    map[string]float64{"A": 33.333, "B": 33.333, "C": 33.333},
	}
	// 99.999 is within one cent of 100.
	if err := ValidateExpense(draft, current); err != nil {
		t.Errorf("ValidateExpense() = %v, want nil for 99.999%% total", err)
	}

	draft.RawInputs = map[string]float64{"A": 33, "B": 33, "C": 33}
	if err := ValidateExpense(draft, current); !errors.Is(err, ErrPercentSumMismatch) {
		t.Errorf("ValidateExpense() = %v, want %v", err, ErrPercentSumMismatch)
	}
}
