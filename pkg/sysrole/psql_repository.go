package sysrole

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db DBTX
}

func NewPostgresRoleRepository(db DBTX) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		db: db,
	}
}

const roleColumns = `id, role_name, role_code, description, created_at, updated_at, deleted_at`

func scanRole(row pgx.Row) (SysRole, error) {
	var role SysRole
	err := row.Scan(
		&role.ID,
		&role.RoleName,
		&role.RoleCode,
		&role.Description,
		&role.CreatedAt,
		&role.UpdatedAt,
		&role.DeletedAt,
	)
	return role, err
}

func (r *PostgresRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (SysRole, error) {
	query := `SELECT ` + roleColumns + ` FROM sys_role WHERE id = $1 AND deleted_at IS NULL`
	role, err := scanRole(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SysRole{}, ErrRoleNotFound
		}
		return SysRole{}, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (r *PostgresRoleRepository) List(ctx context.Context, arg ListRolesParams) ([]SysRole, error) {
	query := `SELECT ` + roleColumns + ` FROM sys_role WHERE deleted_at IS NULL`
	args := []interface{}{}

	if arg.RoleName != "" {
		args = append(args, "%"+arg.RoleName+"%")
		query += fmt.Sprintf(` AND role_name ILIKE $%d`, len(args))
	}

	args = append(args, arg.Limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, arg.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []SysRole{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *PostgresRoleRepository) Count(ctx context.Context, arg ListRolesParams) (int64, error) {
	query := `SELECT COUNT(*) FROM sys_role WHERE deleted_at IS NULL`
	args := []interface{}{}

	if arg.RoleName != "" {
		args = append(args, "%"+arg.RoleName+"%")
		query += fmt.Sprintf(` AND role_name ILIKE $%d`, len(args))
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count roles: %w", err)
	}
	return count, nil
}

func (r *PostgresRoleRepository) Create(ctx context.Context, role SysRole) (SysRole, error) {
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

	query := `
		INSERT INTO sys_role (
			id, role_name, role_code, description, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING ` + roleColumns

	created, err := scanRole(r.db.QueryRow(ctx, query,
		role.ID,
		role.RoleName,
		role.RoleCode,
		role.Description,
		role.CreatedAt,
		role.UpdatedAt,
	))
	if err != nil {
		return SysRole{}, fmt.Errorf("failed to create role: %w", err)
	}
	return created, nil
}

func (r *PostgresRoleRepository) Update(ctx context.Context, id uuid.UUID, arg UpdateRoleParams) (SysRole, error) {
	set := `updated_at = $1`
	args := []interface{}{time.Now().UTC()}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		set += fmt.Sprintf(`, %s = $%d`, column, len(args))
	}

	if arg.RoleName != nil {
		appendSet("role_name", *arg.RoleName)
	}
	if arg.RoleCode != nil {
		appendSet("role_code", *arg.RoleCode)
	}
	if arg.Description != nil {
		appendSet("description", *arg.Description)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE sys_role SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		set, len(args), roleColumns)

	role, err := scanRole(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SysRole{}, ErrRoleNotFound
		}
		return SysRole{}, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

func (r *PostgresRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sys_role SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}
