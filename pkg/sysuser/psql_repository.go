package sysuser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tendant/simple-mall/pkg/utils"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db DBTX
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `id, username, password, name, phone, avatar, description, status, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (SysUser, error) {
	var user SysUser
	// phone and avatar are nullable columns; NULL reads as the empty string
	var phone, avatar sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Name,
		&phone,
		&avatar,
		&user.Description,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	user.Phone = phone.String
	user.Avatar = avatar.String
	return user, err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (SysUser, error) {
	query := `SELECT ` + userColumns + ` FROM sys_user WHERE id = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SysUser{}, ErrUserNotFound
		}
		return SysUser{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by unique username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (SysUser, error) {
	query := `SELECT ` + userColumns + ` FROM sys_user WHERE username = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SysUser{}, ErrUserNotFound
		}
		return SysUser{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func listUsersFilter(arg ListUsersParams) (string, []interface{}) {
	where := ` WHERE deleted_at IS NULL`
	args := []interface{}{}

	if arg.Keyword != "" {
		args = append(args, "%"+arg.Keyword+"%")
		where += fmt.Sprintf(` AND (username ILIKE $%d OR name ILIKE $%d)`, len(args), len(args))
	}
	if arg.CreateTimeBegin != nil {
		args = append(args, *arg.CreateTimeBegin)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if arg.CreateTimeEnd != nil {
		args = append(args, *arg.CreateTimeEnd)
		where += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	return where, args
}

// List returns users matching the filters, newest first
func (r *PostgresUserRepository) List(ctx context.Context, arg ListUsersParams) ([]SysUser, error) {
	where, args := listUsersFilter(arg)

	args = append(args, arg.Limit)
	limitPos := len(args)
	args = append(args, arg.Offset)
	offsetPos := len(args)

	query := `SELECT ` + userColumns + ` FROM sys_user` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, limitPos, offsetPos)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []SysUser{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the number of users matching the filters
func (r *PostgresUserRepository) Count(ctx context.Context, arg ListUsersParams) (int64, error) {
	where, args := listUsersFilter(arg)
	query := `SELECT COUNT(*) FROM sys_user` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Create inserts a new user and returns it
func (r *PostgresUserRepository) Create(ctx context.Context, user SysUser) (SysUser, error) {
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

	query := `
		INSERT INTO sys_user (
			id, username, password, name, phone, avatar, description, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Password,
		user.Name,
		utils.ToNullString(user.Phone),
		utils.ToNullString(user.Avatar),
		user.Description,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		return SysUser{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Update applies non-nil fields to an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (SysUser, error) {
	set := `updated_at = $1`
	args := []interface{}{time.Now().UTC()}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		set += fmt.Sprintf(`, %s = $%d`, column, len(args))
	}

	if arg.Name != nil {
		appendSet("name", *arg.Name)
	}
	if arg.Phone != nil {
		appendSet("phone", utils.ToNullString(*arg.Phone))
	}
	if arg.Avatar != nil {
		appendSet("avatar", utils.ToNullString(*arg.Avatar))
	}
	if arg.Description != nil {
		appendSet("description", *arg.Description)
	}
	if arg.Status != nil {
		appendSet("status", *arg.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE sys_user SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		set, len(args), userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SysUser{}, ErrUserNotFound
		}
		return SysUser{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete soft deletes a user, idempotently
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sys_user SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
