package engine

import "fmt"

// WarningKind classifies a non-fatal inconsistency found during computation.
type WarningKind string

const (
	// WarnMissingSplitInputs flags a non-equal expense whose per-participant
	// inputs are absent; the calculator fell back to an equal split.
	WarnMissingSplitInputs WarningKind = "MISSING_SPLIT_INPUTS"
	// WarnNonPositiveShareTotal flags a shares expense whose weights sum to
	// zero or less; the calculator fell back to an equal split.
	WarnNonPositiveShareTotal WarningKind = "NON_POSITIVE_SHARE_TOTAL"
	// WarnSplitSumMismatch flags a fixed-amount expense whose stored split
	// amounts do not sum to the expense total. The stored amounts remain
	// authoritative.
	WarnSplitSumMismatch WarningKind = "SPLIT_SUM_MISMATCH"
	// WarnResidualSettlement flags balances left unresolved after the
	// solver's dust-termination path.
	WarnResidualSettlement WarningKind = "RESIDUAL_SETTLEMENT"
)

// Warning describes a recoverable data inconsistency. Warnings are returned
// to the caller for logging and never abort a computation: balances must
// always be computable from whatever data exists.
type Warning struct {
	Kind      WarningKind
	ExpenseID string
	MemberID  string
	Message   string
}

func (w Warning) String() string {
	if w.ExpenseID != "" {
		return fmt.Sprintf("%s (expense %s): %s", w.Kind, w.ExpenseID, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
