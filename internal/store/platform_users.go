// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// CreatePlatformUserParams holds the fields for a new platform account.
type CreatePlatformUserParams struct {
	Name           string
	Email          string
	Status         model.UserStatus
	JoinDate       time.Time
	LastActive     time.Time
	ArticlesCount  int64
	FollowersCount int64
}

const platformUserColumns = `id, name, email, status, join_date, last_active, articles_count, followers_count`

func scanPlatformUser(row interface{ Scan(...any) error }) (model.PlatformUser, error) {
	var u model.PlatformUser
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.JoinDate, &u.LastActive,
		&u.ArticlesCount, &u.FollowersCount)
	return u, err
}

// CreatePlatformUser inserts a platform account and returns it.
func (q *Queries) CreatePlatformUser(ctx context.Context, p CreatePlatformUserParams) (model.PlatformUser, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO platform_users (name, email, status, join_date, last_active, articles_count, followers_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+platformUserColumns,
		p.Name, p.Email, p.Status, p.JoinDate, p.LastActive, p.ArticlesCount, p.FollowersCount)
	return scanPlatformUser(row)
}

// GetPlatformUser fetches a platform account by id.
func (q *Queries) GetPlatformUser(ctx context.Context, id int64) (model.PlatformUser, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+platformUserColumns+` FROM platform_users WHERE id = ?`, id)
	return scanPlatformUser(row)
}

// ListPlatformUsers returns all platform accounts in insertion order.
func (q *Queries) ListPlatformUsers(ctx context.Context) ([]model.PlatformUser, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+platformUserColumns+` FROM platform_users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.PlatformUser
	for rows.Next() {
		u, err := scanPlatformUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetPlatformUserStatus moves a platform account to a new status.
func (q *Queries) SetPlatformUserStatus(ctx context.Context, id int64, status model.UserStatus) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE platform_users SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// CountPlatformUsers returns the number of platform accounts.
func (q *Queries) CountPlatformUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM platform_users`).Scan(&n)
	return n, err
}
