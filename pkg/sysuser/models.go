package sysuser

import (
	"time"

	"github.com/google/uuid"
)

// User status values stored in sys_user.status
const (
	StatusNormal   int32 = 1
	StatusDisabled int32 = 0
)

// SysUser represents a system (back-office) user. The password field holds the
// md5-hex digest of the plain password and is never serialized.
type SysUser struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Password    string     `json:"-"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      int32      `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CreateUserParams represents the request to create a system user
type CreateUserParams struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
}

// UpdateUserParams represents the request to update a system user.
// Nil fields are left unchanged.
type UpdateUserParams struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *int32  `json:"status,omitempty"`
}

// FindByPageParams carries the paginated search filters for system users
type FindByPageParams struct {
	Keyword         string     `json:"keyword"`
	CreateTimeBegin *time.Time `json:"create_time_begin,omitempty"`
	CreateTimeEnd   *time.Time `json:"create_time_end,omitempty"`
	PageNum         int32      `json:"page_num"`
	PageSize        int32      `json:"page_size"`
}

// UserListResponse represents the response for a paginated user search
type UserListResponse struct {
	Items []SysUser `json:"items"`
	Total int64     `json:"total"`
}
