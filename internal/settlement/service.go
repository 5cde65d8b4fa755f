package settlement

import (
	"context"
	"errors"
	"log/slog"

	"divvy/internal/engine"
	"divvy/internal/expense"
	"divvy/internal/group"
)

// Common errors
var (
	ErrNotGroupMember    = errors.New("payer and payee must be current group members")
	ErrSelfSettlement    = errors.New("cannot settle with yourself")
	ErrNonPositiveAmount = errors.New("settlement amount must be positive")
)

// Service computes balances and settlement suggestions and records
// confirmed payments. Every query rebuilds its result from a fresh snapshot
// of members, expenses and payments; nothing is incrementally patched.
type Service struct {
	repo        *Repository
	groupRepo   *group.Repository
	expenseRepo *expense.Repository
}

// NewService creates a new settlement service
func NewService(repo *Repository, groupRepo *group.Repository, expenseRepo *expense.Repository) *Service {
	return &Service{repo: repo, groupRepo: groupRepo, expenseRepo: expenseRepo}
}

// Balances recomputes every current member's net position from the group's
// full expense and payment ledgers
func (s *Service) Balances(ctx context.Context, groupID string) ([]*BalanceResponse, error) {
	members, err := s.members(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := s.computeBalances(ctx, groupID, members)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	resp := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = &BalanceResponse{
			MemberID:   b.MemberID,
			MemberName: names[b.MemberID],
			Amount:     b.Amount,
		}
	}
	return resp, nil
}

// Suggestions proposes the payments that would settle the group
func (s *Service) Suggestions(ctx context.Context, groupID string) (*SuggestionsResponse, error) {
	members, err := s.members(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := s.computeBalances(ctx, groupID, members)
	if err != nil {
		return nil, err
	}

	suggestions, warnings := engine.SuggestSettlements(balances)
	for _, w := range warnings {
		slog.Warn("residual settlement balance",
			"group_id", groupID,
			"member_id", w.MemberID,
			"detail", w.Message,
		)
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	resp := &SuggestionsResponse{
		Settled:     len(suggestions) == 0,
		Suggestions: make([]*SuggestionResponse, len(suggestions)),
	}
	for i, sug := range suggestions {
		resp.Suggestions[i] = &SuggestionResponse{
			PayerID:   sug.PayerID,
			PayerName: names[sug.PayerID],
			PayeeID:   sug.PayeeID,
			PayeeName: names[sug.PayeeID],
			Amount:    sug.Amount,
		}
	}
	return resp, nil
}

// Confirm records a suggested settlement as actually paid. The resulting
// payment is immutable; balances simply stop suggesting the discharged
// debt.
func (s *Service) Confirm(ctx context.Context, groupID string, req *ConfirmRequest) (*Payment, error) {
	if req.PayerID == req.PayeeID {
		return nil, ErrSelfSettlement
	}
	if req.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	members, err := s.members(ctx, groupID)
	if err != nil {
		return nil, err
	}
	current := make(map[string]bool, len(members))
	for _, m := range members {
		current[m.ID] = true
	}
	if !current[req.PayerID] || !current[req.PayeeID] {
		return nil, ErrNotGroupMember
	}

	entry := engine.ConfirmSettlement(engine.Suggestion{
		PayerID: req.PayerID,
		PayeeID: req.PayeeID,
		Amount:  req.Amount,
	}, groupID)

	p := &Payment{
		ID:      entry.ID,
		GroupID: entry.GroupID,
		PayerID: entry.PayerID,
		PayeeID: entry.PayeeID,
		Amount:  entry.Amount,
		PaidOn:  entry.Date,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPayments retrieves a group's confirmed payment ledger
func (s *Service) ListPayments(ctx context.Context, groupID string) ([]*Payment, error) {
	if _, err := s.members(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID)
}

func (s *Service) members(ctx context.Context, groupID string) ([]*group.Member, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	return s.groupRepo.ListCurrentMembers(ctx, groupID)
}

func (s *Service) computeBalances(ctx context.Context, groupID string, members []*group.Member) ([]engine.Balance, error) {
	expenses, err := s.expenseRepo.ListAllByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	roster := make([]engine.Member, len(members))
	for i, m := range members {
		roster[i] = engine.Member{ID: m.ID, Name: m.Name}
	}
	ledger := make([]engine.Expense, len(expenses))
	for i, e := range expenses {
		ledger[i] = e.ToEngine()
	}
	transfers := make([]engine.SettlementPayment, len(payments))
	for i, p := range payments {
		transfers[i] = p.ToEngine()
	}

	balances, warnings := engine.ComputeBalances(roster, ledger, transfers)
	for _, w := range warnings {
		slog.Warn("balance data inconsistency",
			"group_id", groupID,
			"kind", w.Kind,
			"expense_id", w.ExpenseID,
			"detail", w.Message,
		)
	}
	return balances, nil
}
