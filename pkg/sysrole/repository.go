package sysrole

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoleName = errors.New("role name cannot be empty")
	ErrRoleNotFound  = errors.New("role not found")
)

// ListRolesParams carries repository-level filters for listing roles
type ListRolesParams struct {
	RoleName string
	Limit    int32
	Offset   int32
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (SysRole, error)
	List(ctx context.Context, arg ListRolesParams) ([]SysRole, error)
	Count(ctx context.Context, arg ListRolesParams) (int64, error)
	Create(ctx context.Context, role SysRole) (SysRole, error)
	Update(ctx context.Context, id uuid.UUID, arg UpdateRoleParams) (SysRole, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
