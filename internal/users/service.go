package users

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role name")

type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*UserResponse, error)
	RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) (*UserResponse, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.repo.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}
	resp := user.ToResponse(roles)
	return &resp, nil
}

func (s *service) ListUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	result, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(result))
	for i := range result {
		roles, err := s.repo.RolesOf(ctx, result[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve roles: %w", err)
		}
		responses[i] = result[i].ToResponse(roles)
	}

	return &PaginatedUsers{
		Users:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*UserResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(roleName))
	if !IsValidRole(name) {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	return s.GetUser(ctx, userID)
}

func (s *service) RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) (*UserResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(roleName))
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RevokeRole(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke role: %w", err)
	}
	return s.GetUser(ctx, userID)
}

func (s *service) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, userID, active)
}
