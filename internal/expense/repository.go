package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles database operations for expenses
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an expense and its participant set in one transaction
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, payer_id, description, amount, spent_on, split_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.GroupID, e.PayerID, e.Description, e.Amount, e.SpentOn, e.SplitType, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	if err := insertParticipants(ctx, tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

// Update replaces an expense and its participant set in one transaction
// (edit-and-resubmit), reporting whether the expense existed
func (r *Repository) Update(ctx context.Context, e *Expense) (bool, error) {
	e.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE expenses
		    SET payer_id = $1, description = $2, amount = $3, spent_on = $4, split_type = $5, updated_at = $6
		  WHERE id = $7`,
		e.PayerID, e.Description, e.Amount, e.SpentOn, e.SplitType, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_participants WHERE expense_id = $1`, e.ID,
	); err != nil {
		return false, fmt.Errorf("clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, e); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func insertParticipants(ctx context.Context, tx *sql.Tx, e *Expense) error {
	for _, p := range e.Participants {
		p.ExpenseID = e.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_participants (expense_id, member_id, position, raw_input)
			 VALUES ($1, $2, $3, $4)`,
			p.ExpenseID, p.MemberID, p.Position, p.RawInput,
		)
		if err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an expense with its participants in selection order, or
// nil if it doesn't exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	e := &Expense{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, payer_id, description, amount, spent_on, split_type, created_at, updated_at
		   FROM expenses WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount, &e.SpentOn, &e.SplitType, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadParticipants(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByGroup retrieves one page of a group's expenses, newest first, plus
// the total count
func (r *Repository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE group_id = $1`, groupID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, amount, spent_on, split_type, created_at, updated_at
		   FROM expenses
		  WHERE group_id = $1
		  ORDER BY spent_on DESC, created_at DESC
		  LIMIT $2 OFFSET $3`,
		groupID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListAllByGroup retrieves a group's entire expense ledger with participant
// sets, the snapshot the balance aggregator folds
func (r *Repository) ListAllByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, amount, spent_on, split_type, created_at, updated_at
		   FROM expenses
		  WHERE group_id = $1
		  ORDER BY spent_on, created_at`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}

	for _, e := range expenses {
		if err := r.loadParticipants(ctx, e); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// Delete removes an expense, reporting whether it existed
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *Repository) loadParticipants(ctx context.Context, e *Expense) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT expense_id, member_id, position, raw_input
		   FROM expense_participants
		  WHERE expense_id = $1
		  ORDER BY position`,
		e.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(&p.ExpenseID, &p.MemberID, &p.Position, &p.RawInput); err != nil {
			return err
		}
		e.Participants = append(e.Participants, p)
	}
	return rows.Err()
}

func scanExpenses(rows *sql.Rows) ([]*Expense, error) {
	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		err := rows.Scan(&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount, &e.SpentOn, &e.SplitType, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
