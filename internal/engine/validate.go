package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation sentinels. Handlers match these with errors.Is to build precise
// user-facing messages.
var (
	ErrEmptyDescription     = errors.New("description must not be empty")
	ErrNonPositiveAmount    = errors.New("amount must be a positive number")
	ErrNoPayer              = errors.New("a payer must be selected")
	ErrPayerNotMember       = errors.New("payer must be a current group member")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrParticipantNotMember = errors.New("participant must be a current group member")
	ErrUnknownStrategy      = errors.New("unknown split strategy")
	ErrMissingSplitInput    = errors.New("split value required for every participant")
	ErrInvalidSplitInput    = errors.New("split value must be a valid number")
	ErrNegativeSplitInput   = errors.New("split value must not be negative")
	ErrNonPositiveWeight    = errors.New("share weight must be greater than zero")
	ErrAmountSumMismatch    = errors.New("split amounts must sum to the expense total")
	ErrPercentSumMismatch   = errors.New("percentages must sum to 100")
	ErrWeightSumNotPositive = errors.New("share weights must sum to more than zero")
)

// ValidationError pinpoints which field, and for split inputs which
// participant, failed validation. It blocks the whole save: no partial state
// is ever committed.
type ValidationError struct {
	Field    string
	MemberID string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.MemberID != "" {
		return fmt.Sprintf("%s (participant %s): %s", e.Field, e.MemberID, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ExpenseDraft is an expense as submitted for creation or edit-and-resubmit,
// before it is accepted into the ledger.
type ExpenseDraft struct {
	Description  string
	Amount       float64
	PayerID      string
	Participants []string
	Strategy     SplitStrategy
	RawInputs    map[string]float64
}

// ValidateExpense rejects a structurally invalid draft before it can reach
// the split calculator. The payer must be a current member but need not be a
// participant. For non-equal strategies every participant needs a numeric
// input, and the inputs must satisfy the per-strategy sum rule: fixed
// amounts sum to the total, percentages sum to 100, share weights sum above
// zero (no upper bound).
func ValidateExpense(draft ExpenseDraft, currentMemberIDs []string) error {
	if strings.TrimSpace(draft.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if math.IsNaN(draft.Amount) || math.IsInf(draft.Amount, 0) || draft.Amount <= 0 {
		return &ValidationError{Field: "amount", Err: ErrNonPositiveAmount}
	}

	current := make(map[string]bool, len(currentMemberIDs))
	for _, id := range currentMemberIDs {
		current[id] = true
	}

	if draft.PayerID == "" {
		return &ValidationError{Field: "payer", Err: ErrNoPayer}
	}
	if !current[draft.PayerID] {
		return &ValidationError{Field: "payer", Err: ErrPayerNotMember}
	}
	if len(draft.Participants) == 0 {
		return &ValidationError{Field: "participants", Err: ErrNoParticipants}
	}
	for _, id := range draft.Participants {
		if !current[id] {
			return &ValidationError{Field: "participants", MemberID: id, Err: ErrParticipantNotMember}
		}
	}
	if !draft.Strategy.Valid() {
		return &ValidationError{Field: "split_type", Err: ErrUnknownStrategy}
	}
	if draft.Strategy == SplitEqual {
		return nil
	}

	sum := 0.0
	for _, id := range draft.Participants {
		value, ok := draft.RawInputs[id]
		if !ok {
			return &ValidationError{Field: "split_values", MemberID: id, Err: ErrMissingSplitInput}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &ValidationError{Field: "split_values", MemberID: id, Err: ErrInvalidSplitInput}
		}
		switch draft.Strategy {
		case SplitShares:
			if value <= 0 {
				return &ValidationError{Field: "split_values", MemberID: id, Err: ErrNonPositiveWeight}
			}
		default:
			if value < 0 {
				return &ValidationError{Field: "split_values", MemberID: id, Err: ErrNegativeSplitInput}
			}
		}
		sum += value
	}

	switch draft.Strategy {
	case SplitFixedAmount:
		if !nearZero(sum - draft.Amount) {
			return &ValidationError{Field: "split_values", Err: ErrAmountSumMismatch}
		}
	case SplitPercentage:
		if !nearZero(sum - 100) {
			return &ValidationError{Field: "split_values", Err: ErrPercentSumMismatch}
		}
	case SplitShares:
		if sum <= 0 {
			return &ValidationError{Field: "split_values", Err: ErrWeightSumNotPositive}
		}
	}
	return nil
}
