package sysuser

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserRepository implements UserRepository using in-memory storage
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]SysUser
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]SysUser),
	}
}

func (r *InMemoryUserRepository) matches(user SysUser, arg ListUsersParams) bool {
	if user.DeletedAt != nil {
		return false
	}
	if arg.Keyword != "" &&
		!strings.Contains(user.Username, arg.Keyword) &&
		!strings.Contains(user.Name, arg.Keyword) {
		return false
	}
	if arg.CreateTimeBegin != nil && user.CreatedAt.Before(*arg.CreateTimeBegin) {
		return false
	}
	if arg.CreateTimeEnd != nil && user.CreatedAt.After(*arg.CreateTimeEnd) {
		return false
	}
	return true
}

// GetByID retrieves a user by ID
func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (SysUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return SysUser{}, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername retrieves a user by unique username
func (r *InMemoryUserRepository) GetByUsername(ctx context.Context, username string) (SysUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username && user.DeletedAt == nil {
			return user, nil
		}
	}
	return SysUser{}, ErrUserNotFound
}

// List returns users matching the filters, newest first
func (r *InMemoryUserRepository) List(ctx context.Context, arg ListUsersParams) ([]SysUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []SysUser{}
	for _, user := range r.users {
		if r.matches(user, arg) {
			matched = append(matched, user)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := int(arg.Offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(arg.Limit)
	if arg.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

// Count returns the number of users matching the filters
func (r *InMemoryUserRepository) Count(ctx context.Context, arg ListUsersParams) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, user := range r.users {
		if r.matches(user, arg) {
			count++
		}
	}
	return count, nil
}

// Create inserts a new user and returns it
func (r *InMemoryUserRepository) Create(ctx context.Context, user SysUser) (SysUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username && existing.DeletedAt == nil {
			return SysUser{}, ErrUsernameAlreadyExists
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	r.users[user.ID] = user
	return user, nil
}

// Update applies non-nil fields to an existing user
func (r *InMemoryUserRepository) Update(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (SysUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return SysUser{}, ErrUserNotFound
	}

	if arg.Name != nil {
		user.Name = *arg.Name
	}
	if arg.Phone != nil {
		user.Phone = *arg.Phone
	}
	if arg.Avatar != nil {
		user.Avatar = *arg.Avatar
	}
	if arg.Description != nil {
		user.Description = *arg.Description
	}
	if arg.Status != nil {
		user.Status = *arg.Status
	}
	user.UpdatedAt = time.Now().UTC()

	r.users[id] = user
	return user, nil
}

// Delete soft deletes a user, idempotently
func (r *InMemoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	user.DeletedAt = &now
	r.users[id] = user
	return nil
}
