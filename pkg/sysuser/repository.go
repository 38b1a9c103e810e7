package sysuser

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListUsersParams carries repository-level filters for listing users
type ListUsersParams struct {
	Keyword         string
	CreateTimeBegin *time.Time
	CreateTimeEnd   *time.Time
	Limit           int32
	Offset          int32
}

// UserRepository defines the interface for system user persistence
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (SysUser, error)
	// GetByUsername retrieves a user by unique username
	GetByUsername(ctx context.Context, username string) (SysUser, error)
	// List returns users matching the filters, newest first
	List(ctx context.Context, arg ListUsersParams) ([]SysUser, error)
	// Count returns the number of users matching the filters
	Count(ctx context.Context, arg ListUsersParams) (int64, error)
	// Create inserts a new user and returns it
	Create(ctx context.Context, user SysUser) (SysUser, error)
	// Update applies non-nil fields to an existing user
	Update(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (SysUser, error)
	// Delete soft deletes a user, idempotently
	Delete(ctx context.Context, id uuid.UUID) error
}
