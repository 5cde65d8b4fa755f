package group

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberRemoved   = errors.New("member has already been removed")
	ErrEmptyGroupName  = errors.New("group name must not be empty")
	ErrEmptyMemberName = errors.New("member name must not be empty")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateGroup creates a new group
func (s *Service) CreateGroup(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyGroupName
	}
	return s.repo.Create(ctx, strings.TrimSpace(req.Name), req.Description)
}

// GetGroup retrieves a group with its current members
func (s *Service) GetGroup(ctx context.Context, id string) (*Group, []*Member, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.ListCurrentMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}

// ListGroups retrieves all groups
func (s *Service) ListGroups(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}

// RenameGroup renames a group
func (s *Service) RenameGroup(ctx context.Context, id string, req *UpdateGroupRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyGroupName
	}
	ok, err := s.repo.UpdateName(ctx, id, strings.TrimSpace(req.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrGroupNotFound
	}
	return nil
}

// DeleteGroup deletes a group and all its data
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGroupNotFound
	}
	return nil
}

// AddMember adds a member to a group
func (s *Service) AddMember(ctx context.Context, groupID string, req *AddMemberRequest) (*Member, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyMemberName
	}

	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.AddMember(ctx, groupID, strings.TrimSpace(req.Name))
}

// RemoveMember soft-removes a member from a group. Historical expenses keep
// referencing the member; balances simply stop including them.
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID string) error {
	m, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if m == nil || m.GroupID != groupID {
		return ErrMemberNotFound
	}
	if m.RemovedAt != nil {
		return ErrMemberRemoved
	}

	ok, err := s.repo.RemoveMember(ctx, memberID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemberRemoved
	}
	return nil
}
