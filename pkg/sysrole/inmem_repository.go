package sysrole

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[uuid.UUID]SysRole
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles: make(map[uuid.UUID]SysRole),
	}
}

func matches(role SysRole, arg ListRolesParams) bool {
	if role.DeletedAt != nil {
		return false
	}
	if arg.RoleName != "" && !strings.Contains(role.RoleName, arg.RoleName) {
		return false
	}
	return true
}

func (r *InMemoryRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (SysRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok || role.DeletedAt != nil {
		return SysRole{}, ErrRoleNotFound
	}
	return role, nil
}

func (r *InMemoryRoleRepository) List(ctx context.Context, arg ListRolesParams) ([]SysRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []SysRole{}
	for _, role := range r.roles {
		if matches(role, arg) {
			matched = append(matched, role)
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

func (r *InMemoryRoleRepository) Count(ctx context.Context, arg ListRolesParams) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, role := range r.roles {
		if matches(role, arg) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRoleRepository) Create(ctx context.Context, role SysRole) (SysRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	now := time.Now().UTC()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	if role.UpdatedAt.IsZero() {
		role.UpdatedAt = now
	}
	r.roles[role.ID] = role
	return role, nil
}

func (r *InMemoryRoleRepository) Update(ctx context.Context, id uuid.UUID, arg UpdateRoleParams) (SysRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[id]
	if !ok || role.DeletedAt != nil {
		return SysRole{}, ErrRoleNotFound
	}

	if arg.RoleName != nil {
		role.RoleName = *arg.RoleName
	}
	if arg.RoleCode != nil {
		role.RoleCode = *arg.RoleCode
	}
	if arg.Description != nil {
		role.Description = *arg.Description
	}
	role.UpdatedAt = time.Now().UTC()

	r.roles[id] = role
	return role, nil
}

func (r *InMemoryRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[id]
	if !ok || role.DeletedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	role.DeletedAt = &now
	r.roles[id] = role
	return nil
}
