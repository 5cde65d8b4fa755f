// Package engine implements the expense-splitting, balance-aggregation and
// settlement-suggestion core. It is a pure computational package: every
// function works on caller-supplied in-memory snapshots, performs no I/O and
// holds no state between calls. Balances are recomputed from scratch on every
// query rather than incrementally patched.
package engine

import "time"

// SplitStrategy selects the rule used to divide an expense among its
// participants. The set is closed; SplitCalculator handles each arm in a
// single switch.
type SplitStrategy string

const (
	// SplitEqual divides the amount evenly among participants.
	SplitEqual SplitStrategy = "EQUAL"
	// SplitFixedAmount uses an explicit amount per participant.
	SplitFixedAmount SplitStrategy = "FIXED_AMOUNT"
	// SplitPercentage divides the amount by per-participant percentages.
	SplitPercentage SplitStrategy = "PERCENTAGE"
	// SplitShares divides the amount proportionally to per-participant weights.
	SplitShares SplitStrategy = "SHARES"
)

// Valid reports whether s is one of the known strategies.
func (s SplitStrategy) Valid() bool {
	switch s {
	case SplitEqual, SplitFixedAmount, SplitPercentage, SplitShares:
		return true
	}
	return false
}

// Member is a person eligible to owe or be owed money within a group.
// Identity is by ID; names are display-only and not unique.
type Member struct {
	ID   string
	Name string
}

// Expense is one payment event: a payer, an ordered set of cost-sharing
// participants and a split strategy. RawInputs carries the per-participant
// decimal entered for non-equal strategies (amount, percentage or share
// weight, depending on Strategy); it is nil for SplitEqual.
type Expense struct {
	ID           string
	Description  string
	Amount       float64
	Date         time.Time
	PayerID      string
	Participants []string // selection order, not sorted
	Strategy     SplitStrategy
	RawInputs    map[string]float64
}

// SettlementPayment is an append-only record of a confirmed real-world
// transfer between two members. The engine never mutates or deletes one.
type SettlementPayment struct {
	ID      string
	GroupID string
	PayerID string
	PayeeID string
	Amount  float64
	Date    time.Time
}

// Shares maps participant id to the amount that participant owes for a
// single expense.
type Shares map[string]float64

// Balance is a member's net position: positive means the group owes the
// member, negative means the member owes the group.
type Balance struct {
	MemberID string
	Amount   float64
}

// Suggestion is a proposed payer -> payee transfer that would reduce
// outstanding balances.
type Suggestion struct {
	PayerID string
	PayeeID string
	Amount  float64
}
