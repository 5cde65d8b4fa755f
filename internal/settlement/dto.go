package settlement

// BalanceResponse is one member's net position. Positive means the group
// owes the member, negative means the member owes the group.
type BalanceResponse struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Amount     float64 `json:"amount"`
}

// SuggestionResponse is a proposed payer -> payee transfer
type SuggestionResponse struct {
	PayerID   string  `json:"payer_id"`
	PayerName string  `json:"payer_name"`
	PayeeID   string  `json:"payee_id"`
	PayeeName string  `json:"payee_name"`
	Amount    float64 `json:"amount"`
}

// SuggestionsResponse wraps the suggestion list with a settled flag so the
// client can show "all settled up" without inspecting the list
type SuggestionsResponse struct {
	Settled     bool                  `json:"settled"`
	Suggestions []*SuggestionResponse `json:"suggestions"`
}

// ConfirmRequest represents the request to confirm a suggested settlement
// as actually paid
type ConfirmRequest struct {
	PayerID string  `json:"payer_id"`
	PayeeID string  `json:"payee_id"`
	Amount  float64 `json:"amount"`
}

// PaymentResponse represents a confirmed settlement payment
type PaymentResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	PayerID   string  `json:"payer_id"`
	PayeeID   string  `json:"payee_id"`
	Amount    float64 `json:"amount"`
	PaidOn    string  `json:"paid_on"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		GroupID:   p.GroupID,
		PayerID:   p.PayerID,
		PayeeID:   p.PayeeID,
		Amount:    p.Amount,
		PaidOn:    p.PaidOn.Format("2006-01-02T15:04:05Z"),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
