package expense

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"divvy/internal/engine"
	"divvy/internal/group"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidDate     = errors.New("spent_on must be a YYYY-MM-DD date")
)

// Service handles expense business logic. Validation runs through the
// engine before anything is persisted: a failing rule blocks the whole
// save.
type Service struct {
	repo      *Repository
	groupRepo *group.Repository
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository) *Service {
	return &Service{repo: repo, groupRepo: groupRepo}
}

// Create validates and persists a new expense, returning it together with
// its computed share breakdown
func (s *Service) Create(ctx context.Context, req *CreateExpenseRequest) (*Expense, engine.Shares, error) {
	currentIDs, err := s.currentMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, nil, err
	}

	draft := toDraft(req.Description, req.Amount, req.PayerID, req.SplitType, req.Participants)
	if err := engine.ValidateExpense(draft, currentIDs); err != nil {
		return nil, nil, err
	}

	spentOn, err := parseSpentOn(req.SpentOn)
	if err != nil {
		return nil, nil, err
	}

	e := &Expense{
		GroupID:      req.GroupID,
		PayerID:      req.PayerID,
		Description:  req.Description,
		Amount:       engine.Round2(req.Amount),
		SpentOn:      spentOn,
		SplitType:    engine.SplitStrategy(req.SplitType),
		Participants: buildParticipants(req.Participants),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, nil, err
	}

	return e, s.shares(e, currentIDs), nil
}

// Get retrieves an expense with its share breakdown over current members
func (s *Service) Get(ctx context.Context, id string) (*Expense, engine.Shares, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if e == nil {
		return nil, nil, ErrExpenseNotFound
	}

	currentIDs, err := s.currentMemberIDs(ctx, e.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return e, s.shares(e, currentIDs), nil
}

// Update replaces an expense wholesale after re-validation
// (edit-and-resubmit)
func (s *Service) Update(ctx context.Context, id string, req *UpdateExpenseRequest) (*Expense, engine.Shares, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, ErrExpenseNotFound
	}

	currentIDs, err := s.currentMemberIDs(ctx, existing.GroupID)
	if err != nil {
		return nil, nil, err
	}

	draft := toDraft(req.Description, req.Amount, req.PayerID, req.SplitType, req.Participants)
	if err := engine.ValidateExpense(draft, currentIDs); err != nil {
		return nil, nil, err
	}

	spentOn, err := parseSpentOn(req.SpentOn)
	if err != nil {
		return nil, nil, err
	}

	e := &Expense{
		ID:           id,
		GroupID:      existing.GroupID,
		PayerID:      req.PayerID,
		Description:  req.Description,
		Amount:       engine.Round2(req.Amount),
		SpentOn:      spentOn,
		SplitType:    engine.SplitStrategy(req.SplitType),
		Participants: buildParticipants(req.Participants),
		CreatedAt:    existing.CreatedAt,
	}
	ok, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrExpenseNotFound
	}

	return e, s.shares(e, currentIDs), nil
}

// List retrieves one page of a group's expenses
func (s *Service) List(ctx context.Context, groupID string, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage
	return s.repo.ListByGroup(ctx, groupID, perPage, offset)
}

// Delete removes an expense from the ledger
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) currentMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	members, err := s.groupRepo.ListCurrentMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids, nil
}

func (s *Service) shares(e *Expense, currentIDs []string) engine.Shares {
	shares, warnings := engine.ComputeShares(e.ToEngine(), currentIDs)
	for _, w := range warnings {
		slog.Warn("expense data inconsistency",
			"kind", w.Kind,
			"expense_id", w.ExpenseID,
			"detail", w.Message,
		)
	}
	return shares
}

func buildParticipants(inputs []ParticipantInput) []*Participant {
	participants := make([]*Participant, len(inputs))
	for i, in := range inputs {
		participants[i] = &Participant{
			MemberID: in.MemberID,
			Position: i,
			RawInput: in.Value,
		}
	}
	return participants
}

func parseSpentOn(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
