// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// CreateAuthorProfileParams holds the fields for a new author profile.
type CreateAuthorProfileParams struct {
	Name           string
	Email          string
	Bio            string
	Specialization string
	ArticlesCount  int64
	FollowersCount int64
	TotalViews     int64
	Rating         float64
	JoinDate       time.Time
	Status         model.AuthorStatus
}

const authorProfileColumns = `id, name, email, bio, specialization, articles_count,
	followers_count, total_views, rating, join_date, status`

func scanAuthorProfile(row interface{ Scan(...any) error }) (model.AuthorProfile, error) {
	var a model.AuthorProfile
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Bio, &a.Specialization, &a.ArticlesCount,
		&a.FollowersCount, &a.TotalViews, &a.Rating, &a.JoinDate, &a.Status)
	return a, err
}

func (q *Queries) collectAuthorProfiles(ctx context.Context, query string, args ...any) ([]model.AuthorProfile, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []model.AuthorProfile
	for rows.Next() {
		a, err := scanAuthorProfile(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// CreateAuthorProfile inserts an author profile and returns it.
func (q *Queries) CreateAuthorProfile(ctx context.Context, p CreateAuthorProfileParams) (model.AuthorProfile, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO author_profiles (name, email, bio, specialization, articles_count,
			followers_count, total_views, rating, join_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+authorProfileColumns,
		p.Name, p.Email, p.Bio, p.Specialization, p.ArticlesCount,
		p.FollowersCount, p.TotalViews, p.Rating, p.JoinDate, p.Status)
	return scanAuthorProfile(row)
}

// GetAuthorProfile fetches an author profile by id.
func (q *Queries) GetAuthorProfile(ctx context.Context, id int64) (model.AuthorProfile, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+authorProfileColumns+` FROM author_profiles WHERE id = ?`, id)
	return scanAuthorProfile(row)
}

// ListAuthorProfiles returns all author profiles in insertion order.
func (q *Queries) ListAuthorProfiles(ctx context.Context) ([]model.AuthorProfile, error) {
	return q.collectAuthorProfiles(ctx,
		`SELECT `+authorProfileColumns+` FROM author_profiles ORDER BY id`)
}

// ListVerifiedAuthorProfiles returns the public author directory.
func (q *Queries) ListVerifiedAuthorProfiles(ctx context.Context) ([]model.AuthorProfile, error) {
	return q.collectAuthorProfiles(ctx,
		`SELECT `+authorProfileColumns+` FROM author_profiles WHERE status = 'verified' ORDER BY id`)
}

// CountAuthorProfiles returns the total number of author profiles.
func (q *Queries) CountAuthorProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM author_profiles`).Scan(&n)
	return n, err
}

// SetAuthorProfileStatus moves an author profile to a new status.
func (q *Queries) SetAuthorProfileStatus(ctx context.Context, id int64, status model.AuthorStatus) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE author_profiles SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
