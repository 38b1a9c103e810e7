package sysuser

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/simple-mall/pkg/utils"
)

// UserService provides methods for system user management
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (SysUser, error) {
	return s.repo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a user by username. The login flow relies on this lookup.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (SysUser, error) {
	return s.repo.GetByUsername(ctx, username)
}

// FindByPage returns one page of users matching the filters plus the total match count
func (s *UserService) FindByPage(ctx context.Context, params FindByPageParams) (*UserListResponse, error) {
	pageNum := params.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	listParams := ListUsersParams{
		Keyword:         params.Keyword,
		CreateTimeBegin: params.CreateTimeBegin,
		CreateTimeEnd:   params.CreateTimeEnd,
		Limit:           pageSize,
		Offset:          (pageNum - 1) * pageSize,
	}

	users, err := s.repo.List(ctx, listParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := s.repo.Count(ctx, listParams)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &UserListResponse{
		Items: users,
		Total: total,
	}, nil
}

// CreateUser adds a new system user, hashing the submitted password
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (SysUser, error) {
	if params.Username == "" {
		return SysUser{}, ErrEmptyUsername
	}
	if params.Password == "" {
		return SysUser{}, ErrEmptyPassword
	}

	if _, err := s.repo.GetByUsername(ctx, params.Username); err == nil {
		return SysUser{}, ErrUsernameAlreadyExists
	}

	user := SysUser{
		Username:    params.Username,
		Password:    utils.DigestHex(params.Password),
		Name:        params.Name,
		Phone:       params.Phone,
		Avatar:      params.Avatar,
		Description: params.Description,
		Status:      StatusNormal,
	}
	return s.repo.Create(ctx, user)
}

// UpdateUser modifies an existing system user
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (SysUser, error) {
	return s.repo.Update(ctx, id, params)
}

// DeleteUser soft deletes a system user
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
