package settlement

import (
	"context"
	"database/sql"
	"time"
)

// Repository handles database operations for settlement payments
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a confirmed payment to the ledger
func (r *Repository) Create(ctx context.Context, p *Payment) error {
	p.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settlement_payments (id, group_id, payer_id, payee_id, amount, paid_on, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.GroupID, p.PayerID, p.PayeeID, p.Amount, p.PaidOn, p.CreatedAt,
	)
	return err
}

// ListByGroup retrieves a group's confirmed payments, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, payee_id, amount, paid_on, created_at
		   FROM settlement_payments
		  WHERE group_id = $1
		  ORDER BY paid_on DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(&p.ID, &p.GroupID, &p.PayerID, &p.PayeeID, &p.Amount, &p.PaidOn, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
