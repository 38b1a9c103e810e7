package sysrole

import (
	"time"

	"github.com/google/uuid"
)

// SysRole represents a system role
type SysRole struct {
	ID          uuid.UUID  `json:"id"`
	RoleName    string     `json:"role_name"`
	RoleCode    string     `json:"role_code"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CreateRoleParams represents the request to create a role
type CreateRoleParams struct {
	RoleName    string `json:"role_name"`
	RoleCode    string `json:"role_code"`
	Description string `json:"description"`
}

// UpdateRoleParams represents the request to update a role. Nil fields are left unchanged.
type UpdateRoleParams struct {
	RoleName    *string `json:"role_name,omitempty"`
	RoleCode    *string `json:"role_code,omitempty"`
	Description *string `json:"description,omitempty"`
}

// FindByPageParams carries the paginated search filters for roles
type FindByPageParams struct {
	RoleName string `json:"role_name"`
	PageNum  int32  `json:"page_num"`
	PageSize int32  `json:"page_size"`
}

// RoleListResponse represents the response for a paginated role search
type RoleListResponse struct {
	Items []SysRole `json:"items"`
	Total int64     `json:"total"`
}
