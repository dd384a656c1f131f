// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// CreateAdminUserParams holds the fields for a new back-office account.
type CreateAdminUserParams struct {
	Name         string
	Email        string
	Mobile       string
	Username     string
	PasswordHash string
	Role         model.Role
	CreatedAt    time.Time
}

const adminUserColumns = `id, name, email, mobile, username, password_hash, role, is_active, created_at, last_login_at`

func scanAdminUser(row interface{ Scan(...any) error }) (model.AdminUser, error) {
	var u model.AdminUser
	var active int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Username, &u.PasswordHash,
		&u.Role, &active, &u.CreatedAt, &u.LastLoginAt)
	u.IsActive = active != 0
	return u, err
}

// CreateAdminUser inserts a new admin account and returns it.
func (q *Queries) CreateAdminUser(ctx context.Context, p CreateAdminUserParams) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (name, email, mobile, username, password_hash, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		RETURNING `+adminUserColumns,
		p.Name, p.Email, p.Mobile, p.Username, p.PasswordHash, p.Role, p.CreatedAt)
	return scanAdminUser(row)
}

// GetAdminUserByID fetches an admin account by id.
func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE id = ?`, id)
	return scanAdminUser(row)
}

// GetAdminUserByEmail fetches an admin account by email.
func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE email = ?`, email)
	return scanAdminUser(row)
}

// ListAdminUsers returns all admin accounts in insertion order.
func (q *Queries) ListAdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.AdminUser
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetAdminUserActive toggles the ban flag on an admin account.
func (q *Queries) SetAdminUserActive(ctx context.Context, id int64, active bool) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// UpdateAdminUserLastLogin records a successful sign-in.
func (q *Queries) UpdateAdminUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET last_login_at = ? WHERE id = ?`, at, id)
	return err
}

// UpdateAdminUserPassword replaces the stored password hash.
func (q *Queries) UpdateAdminUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return err
}

// CountAdminUsers returns the number of admin accounts.
func (q *Queries) CountAdminUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// requireRowAffected converts a zero-row update into sql.ErrNoRows so
// callers can treat missing ids uniformly.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
