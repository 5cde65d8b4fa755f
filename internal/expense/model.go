package expense

import (
	"time"

	"divvy/internal/engine"
)

// Expense represents a stored expense. The participant set keeps its
// selection order and, for non-equal splits, the raw per-participant value
// entered in the form.
type Expense struct {
	ID          string               `json:"id"`
	GroupID     string               `json:"group_id"`
	PayerID     string               `json:"payer_id"`
	Description string               `json:"description"`
	Amount      float64              `json:"amount"`
	SpentOn     time.Time            `json:"spent_on"`
	SplitType   engine.SplitStrategy `json:"split_type"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Participants []*Participant `json:"participants,omitempty"`
}

// Participant is one row of an expense's participant set.
type Participant struct {
	ExpenseID string   `json:"expense_id"`
	MemberID  string   `json:"member_id"`
	Position  int      `json:"position"`
	RawInput  *float64 `json:"raw_input,omitempty"`
}

// ToEngine converts the stored expense into the engine's snapshot form.
// RawInputs is nil for equal splits and for non-equal expenses whose inputs
// were lost, which the calculator treats as a fallback-to-equal case.
func (e *Expense) ToEngine() engine.Expense {
	participants := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = p.MemberID
	}

	var rawInputs map[string]float64
	if e.SplitType != engine.SplitEqual {
		for _, p := range e.Participants {
			if p.RawInput == nil {
				continue
			}
			if rawInputs == nil {
				rawInputs = make(map[string]float64, len(e.Participants))
			}
			rawInputs[p.MemberID] = *p.RawInput
		}
	}

	return engine.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Date:         e.SpentOn,
		PayerID:      e.PayerID,
		Participants: participants,
		Strategy:     e.SplitType,
		RawInputs:    rawInputs,
	}
}
