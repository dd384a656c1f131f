// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// CreateBlogPostParams holds the fields for a new post.
type CreateBlogPostParams struct {
	Title        string
	Slug         string
	Author       string
	AuthorAvatar string
	Category     string
	Excerpt      string
	Body         string
	Status       model.BlogStatus
	ScheduledAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const blogPostColumns = `id, title, slug, author, author_avatar, category, excerpt, body,
	status, published_at, scheduled_at, views, likes, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Author, &p.AuthorAvatar, &p.Category,
		&p.Excerpt, &p.Body, &p.Status, &p.PublishedAt, &p.ScheduledAt,
		&p.Views, &p.Likes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) collectBlogPosts(ctx context.Context, query string, args ...any) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CreateBlogPost inserts a new post and returns it.
func (q *Queries) CreateBlogPost(ctx context.Context, p CreateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, author, author_avatar, category, excerpt, body,
			status, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+blogPostColumns,
		p.Title, p.Slug, p.Author, p.AuthorAvatar, p.Category, p.Excerpt, p.Body,
		p.Status, p.ScheduledAt, p.CreatedAt, p.UpdatedAt)
	return scanBlogPost(row)
}

// GetBlogPost fetches a post by id.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// GetBlogPostBySlug fetches a post by slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = ?`, slug)
	return scanBlogPost(row)
}

// ListBlogPosts returns all posts in insertion order.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return q.collectBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts ORDER BY id`)
}

// ListPublishedBlogPosts returns a page of published posts, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context, limit, offset int64) ([]model.BlogPost, error) {
	return q.collectBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts
		 WHERE status = 'published'
		 ORDER BY published_at DESC, id DESC
		 LIMIT ? OFFSET ?`, limit, offset)
}

// CountPublishedBlogPosts returns the number of published posts.
func (q *Queries) CountPublishedBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE status = 'published'`).Scan(&n)
	return n, err
}

// CountBlogPosts returns the total number of posts in any status.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&n)
	return n, err
}

// SumBlogPostViews returns the total view count across all posts.
func (q *Queries) SumBlogPostViews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(views), 0) FROM blog_posts`).Scan(&n)
	return n, err
}

// CountBlogPostsByStatus returns the number of posts in a given status.
func (q *Queries) CountBlogPostsByStatus(ctx context.Context, status model.BlogStatus) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE status = ?`, status).Scan(&n)
	return n, err
}

// ListBlogPostsByAuthor returns a writer's own posts in insertion order.
func (q *Queries) ListBlogPostsByAuthor(ctx context.Context, author string) ([]model.BlogPost, error) {
	return q.collectBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE author = ? ORDER BY id`, author)
}

// UpdateBlogPostStatus moves a post to a new status. publishedAt is set
// only on the publish transition; callers pass an invalid NullTime
// otherwise to leave the stored value alone.
func (q *Queries) UpdateBlogPostStatus(ctx context.Context, id int64, status model.BlogStatus, publishedAt sql.NullTime) error {
	var res sql.Result
	var err error
	if publishedAt.Valid {
		res, err = q.db.ExecContext(ctx,
			`UPDATE blog_posts SET status = ?, published_at = ?, updated_at = ? WHERE id = ?`,
			status, publishedAt, time.Now(), id)
	} else {
		res, err = q.db.ExecContext(ctx,
			`UPDATE blog_posts SET status = ?, updated_at = ? WHERE id = ?`,
			status, time.Now(), id)
	}
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// DeleteBlogPost permanently removes a post. There is no tombstone.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// IncrementBlogPostViews bumps the view counter.
func (q *Queries) IncrementBlogPostViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE blog_posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// SetBlogPostCounters overwrites the view and like counters. Used by
// demo seeding and backfills.
func (q *Queries) SetBlogPostCounters(ctx context.Context, id, views, likes int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE blog_posts SET views = ?, likes = ? WHERE id = ?`, views, likes, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// CategoryCount is a category name with its published article count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ListCategories aggregates published posts per category.
func (q *Queries) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM blog_posts
		WHERE status = 'published'
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ListScheduledBlogPostsDue returns pending posts whose scheduled
// publish time has arrived.
func (q *Queries) ListScheduledBlogPostsDue(ctx context.Context, now time.Time) ([]model.BlogPost, error) {
	return q.collectBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts
		 WHERE status = 'pending' AND scheduled_at IS NOT NULL AND scheduled_at <= ?
		 ORDER BY scheduled_at`, now)
}
