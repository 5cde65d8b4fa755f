package group

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Repository handles database operations for groups and their members.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group
func (r *Repository) Create(ctx context.Context, name string, description *string) (*Group, error) {
	g := &Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.Description, g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a group by ID, or nil if it doesn't exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	g := &Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM groups WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// List retrieves all groups ordered by creation time
func (r *Repository) List(ctx context.Context) ([]*Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM groups ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpdateName renames a group, reporting whether the group existed
func (r *Repository) UpdateName(ctx context.Context, id, name string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE groups SET name = $1 WHERE id = $2`,
		name, id,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a group and, via cascade, its members, expenses and
// settlement payments
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// AddMember inserts a new member into a group
func (r *Repository) AddMember(ctx context.Context, groupID, name string) (*Member, error) {
	m := &Member{
		ID:       uuid.NewString(),
		GroupID:  groupID,
		Name:     name,
		JoinedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, group_id, name, joined_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.GroupID, m.Name, m.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMember retrieves a member by ID regardless of removal status, or nil
// if it doesn't exist
func (r *Repository) GetMember(ctx context.Context, memberID string) (*Member, error) {
	m := &Member{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, name, joined_at, removed_at FROM members WHERE id = $1`,
		memberID,
	).Scan(&m.ID, &m.GroupID, &m.Name, &m.JoinedAt, &m.RemovedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember soft-removes a member so history stays intact, reporting
// whether a current member was removed
func (r *Repository) RemoveMember(ctx context.Context, memberID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET removed_at = $1 WHERE id = $2 AND removed_at IS NULL`,
		time.Now().UTC(), memberID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ListCurrentMembers retrieves the members of a group that have not been
// removed, in join order
func (r *Repository) ListCurrentMembers(ctx context.Context, groupID string) ([]*Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, name, joined_at, removed_at
		   FROM members
		  WHERE group_id = $1 AND removed_at IS NULL
		  ORDER BY joined_at`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.JoinedAt, &m.RemovedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
