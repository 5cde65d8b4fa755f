package expense

import "divvy/internal/engine"

// ParticipantInput is one selected participant with the optional split
// value (fixed amount, percentage or share weight depending on split type).
type ParticipantInput struct {
	MemberID string   `json:"member_id"`
	Value    *float64 `json:"value,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      string             `json:"group_id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	SpentOn      string             `json:"spent_on,omitempty"` // YYYY-MM-DD, defaults to today
	PayerID      string             `json:"payer_id"`
	SplitType    string             `json:"split_type"` // EQUAL, FIXED_AMOUNT, PERCENTAGE, SHARES
	Participants []ParticipantInput `json:"participants"`
}

// UpdateExpenseRequest carries a full replacement for an expense
// (edit-and-resubmit; partial edits are not supported).
type UpdateExpenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	SpentOn      string             `json:"spent_on,omitempty"`
	PayerID      string             `json:"payer_id"`
	SplitType    string             `json:"split_type"`
	Participants []ParticipantInput `json:"participants"`
}

// ExpenseResponse represents an expense with its computed share breakdown
type ExpenseResponse struct {
	ID          string             `json:"id"`
	GroupID     string             `json:"group_id"`
	PayerID     string             `json:"payer_id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	SpentOn     string             `json:"spent_on"`
	SplitType   string             `json:"split_type"`
	CreatedAt   string             `json:"created_at"`
	Shares      map[string]float64 `json:"shares,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Description: e.Description,
		Amount:      e.Amount,
		SpentOn:     e.SpentOn.Format("2006-01-02"),
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// toDraft converts submitted fields into the engine's validation input.
func toDraft(description string, amount float64, payerID, splitType string, participants []ParticipantInput) engine.ExpenseDraft {
	ids := make([]string, len(participants))
	var rawInputs map[string]float64
	for i, p := range participants {
		ids[i] = p.MemberID
		if p.Value != nil {
			if rawInputs == nil {
				rawInputs = make(map[string]float64, len(participants))
			}
			rawInputs[p.MemberID] = *p.Value
		}
	}
	return engine.ExpenseDraft{
		Description:  description,
		Amount:       amount,
		PayerID:      payerID,
		Participants: ids,
		Strategy:     engine.SplitStrategy(splitType),
		RawInputs:    rawInputs,
	}
}
