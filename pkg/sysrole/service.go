package sysrole

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// FindByPage returns one page of roles matching the name filter plus the total match count
func (s *RoleService) FindByPage(ctx context.Context, params FindByPageParams) (*RoleListResponse, error) {
	pageNum := params.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	listParams := ListRolesParams{
		RoleName: params.RoleName,
		Limit:    pageSize,
		Offset:   (pageNum - 1) * pageSize,
	}

	roles, err := s.repo.List(ctx, listParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	total, err := s.repo.Count(ctx, listParams)
	if err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}

	return &RoleListResponse{
		Items: roles,
		Total: total,
	}, nil
}

// CreateRole adds a new role
func (s *RoleService) CreateRole(ctx context.Context, params CreateRoleParams) (SysRole, error) {
	if params.RoleName == "" {
		return SysRole{}, ErrEmptyRoleName
	}
	return s.repo.Create(ctx, SysRole{
		RoleName:    params.RoleName,
		RoleCode:    params.RoleCode,
		Description: params.Description,
	})
}

// UpdateRole modifies an existing role
func (s *RoleService) UpdateRole(ctx context.Context, id uuid.UUID, params UpdateRoleParams) (SysRole, error) {
	if params.RoleName != nil && *params.RoleName == "" {
		return SysRole{}, ErrEmptyRoleName
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteRole removes a role
func (s *RoleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// GetRole retrieves a role by ID
func (s *RoleService) GetRole(ctx context.Context, id uuid.UUID) (SysRole, error) {
	return s.repo.GetByID(ctx, id)
}
