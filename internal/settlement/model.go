package settlement

import (
	"time"

	"divvy/internal/engine"
)

// Payment is a confirmed real-world transfer between two members. Rows are
// append-only: the service never updates or deletes one, it only folds them
// into balance computations.
type Payment struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	PayerID   string    `json:"payer_id"`
	PayeeID   string    `json:"payee_id"`
	Amount    float64   `json:"amount"`
	PaidOn    time.Time `json:"paid_on"`
	CreatedAt time.Time `json:"created_at"`
}

// ToEngine converts the stored payment into the engine's snapshot form.
func (p *Payment) ToEngine() engine.SettlementPayment {
	return engine.SettlementPayment{
		ID:      p.ID,
		GroupID: p.GroupID,
		PayerID: p.PayerID,
		PayeeID: p.PayeeID,
		Amount:  p.Amount,
		Date:    p.PaidOn,
	}
}
