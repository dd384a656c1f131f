// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vkwebcraft/indublog/internal/auth"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/util"
)

// Default back-office credentials
const (
	DefaultAdminEmail    = "admin@indublog.com"
	DefaultAdminPassword = "admin123"

	DefaultEditorEmail    = "editor@indublog.com"
	DefaultEditorPassword = "editor123"

	DefaultViewerEmail    = "viewer@indublog.com"
	DefaultViewerPassword = "viewer123"
)

type seedAccount struct {
	name     string
	email    string
	mobile   string
	username string
	password string
	role     model.Role
}

var seedAccounts = []seedAccount{
	{"Admin User", DefaultAdminEmail, "+1234567890", "admin", DefaultAdminPassword, model.RoleSuperAdmin},
	{"Editor User", DefaultEditorEmail, "+1234567891", "editor", DefaultEditorPassword, model.RoleEditor},
	{"Viewer User", DefaultViewerEmail, "+1234567892", "viewer", DefaultViewerPassword, model.RoleViewer},
}

// Seed creates the initial back-office accounts. It is safe to call on
// every start: an already-populated admin_users table is left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountAdminUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		slog.Info("admin users already exist, skipping seed")
		return nil
	}

	now := time.Now()
	for _, acct := range seedAccounts {
		hash, err := auth.HashPassword(acct.password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", acct.email, err)
		}
		user, err := queries.CreateAdminUser(ctx, CreateAdminUserParams{
			Name:         acct.name,
			Email:        acct.email,
			Mobile:       acct.mobile,
			Username:     acct.username,
			PasswordHash: hash,
			Role:         acct.role,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating %s account: %w", acct.role, err)
		}
		slog.Info("created default admin account",
			"id", user.ID,
			"email", user.Email,
			"role", user.Role,
		)
	}

	return nil
}

// SeedDemo creates demo content for showcasing the moderation queues.
// It runs after Seed when demo mode is enabled in the config.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	slog.Info("seeding demo content")
	queries := New(db)

	if err := seedDemoPosts(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo posts: %w", err)
	}
	if err := seedDemoPlatformUsers(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo platform users: %w", err)
	}
	if err := seedDemoAuthors(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo authors: %w", err)
	}

	slog.Info("demo content seeded successfully")
	return nil
}

func seedDemoPosts(ctx context.Context, queries *Queries) error {
	count, err := queries.CountBlogPostsByStatus(ctx, model.BlogStatusPending)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("demo posts already exist, skipping")
		return nil
	}

	posts := []struct {
		title    string
		author   string
		avatar   string
		category string
		excerpt  string
		body     string
		status   model.BlogStatus
		views    int64
		likes    int64
	}{
		{
			title:    "Getting Started with React",
			author:   "John Doe",
			avatar:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=40&h=40&fit=crop&crop=face",
			category: "Technology",
			excerpt:  "Learn the basics of React and start building modern web applications...",
			body:     "## Getting Started\n\nReact is a library for building user interfaces.",
			status:   model.BlogStatusPending,
			views:    1250,
			likes:    45,
		},
		{
			title:    "Advanced TypeScript Patterns",
			author:   "Jane Smith",
			avatar:   "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=40&h=40&fit=crop&crop=face",
			category: "Programming",
			excerpt:  "Explore advanced TypeScript patterns and techniques for better code...",
			body:     "## Patterns\n\nConditional types and mapped types unlock expressive APIs.",
			status:   model.BlogStatusPublished,
			views:    2340,
			likes:    89,
		},
		{
			title:    "UI/UX Design Principles",
			author:   "Mike Johnson",
			avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=40&h=40&fit=crop&crop=face",
			category: "Design",
			excerpt:  "Essential design principles every designer should know...",
			body:     "## Principles\n\nConsistency, hierarchy and feedback guide every good interface.",
			status:   model.BlogStatusDraft,
			views:    890,
			likes:    23,
		},
		{
			title:    "Building Scalable APIs",
			author:   "Sarah Wilson",
			avatar:   "https://images.unsplash.com/photo-1494790108755-2616b332c8c2?w=40&h=40&fit=crop&crop=face",
			category: "Backend",
			excerpt:  "Best practices for building scalable and maintainable APIs...",
			body:     "## APIs\n\nVersioning and pagination keep large APIs maintainable.",
			status:   model.BlogStatusPending,
			views:    1567,
			likes:    67,
		},
	}

	now := time.Now()
	for _, p := range posts {
		created, err := queries.CreateBlogPost(ctx, CreateBlogPostParams{
			Title:        p.title,
			Slug:         util.Slugify(p.title),
			Author:       p.author,
			AuthorAvatar: p.avatar,
			Category:     p.category,
			Excerpt:      p.excerpt,
			Body:         p.body,
			Status:       p.status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating post %q: %w", p.title, err)
		}
		if p.status == model.BlogStatusPublished {
			err = queries.UpdateBlogPostStatus(ctx, created.ID, model.BlogStatusPublished,
				sql.NullTime{Time: now, Valid: true})
			if err != nil {
				return fmt.Errorf("publishing post %q: %w", p.title, err)
			}
		}
		if p.views > 0 {
			if err := queries.SetBlogPostCounters(ctx, created.ID, p.views, p.likes); err != nil {
				return fmt.Errorf("setting counters for %q: %w", p.title, err)
			}
		}
	}
	return nil
}

func seedDemoPlatformUsers(ctx context.Context, queries *Queries) error {
	count, err := queries.CountPlatformUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("demo platform users already exist, skipping")
		return nil
	}

	users := []CreatePlatformUserParams{
		{Name: "John Doe", Email: "john@example.com", Status: model.UserStatusActive,
			JoinDate: date(2024, 1, 15), LastActive: date(2024, 1, 20), ArticlesCount: 12, FollowersCount: 245},
		{Name: "Jane Smith", Email: "jane@example.com", Status: model.UserStatusActive,
			JoinDate: date(2024, 1, 10), LastActive: date(2024, 1, 19), ArticlesCount: 8, FollowersCount: 189},
		{Name: "Mike Johnson", Email: "mike@example.com", Status: model.UserStatusSuspended,
			JoinDate: date(2024, 1, 5), LastActive: date(2024, 1, 18), ArticlesCount: 3, FollowersCount: 67},
		{Name: "Sarah Wilson", Email: "sarah@example.com", Status: model.UserStatusPending,
			JoinDate: date(2024, 1, 18), LastActive: date(2024, 1, 18), ArticlesCount: 0, FollowersCount: 12},
	}
	for _, u := range users {
		if _, err := queries.CreatePlatformUser(ctx, u); err != nil {
			return fmt.Errorf("creating user %q: %w", u.Email, err)
		}
	}
	return nil
}

func seedDemoAuthors(ctx context.Context, queries *Queries) error {
	_, err := queries.GetAuthorProfile(ctx, 1)
	if err == nil {
		slog.Info("demo authors already exist, skipping")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	authors := []CreateAuthorProfileParams{
		{Name: "John Doe", Email: "john@example.com",
			Bio:            "Full-stack developer with 5+ years of experience",
			Specialization: "Web Development",
			ArticlesCount:  24, FollowersCount: 1250, TotalViews: 45000, Rating: 4.8,
			JoinDate: date(2023, 6, 15), Status: model.AuthorStatusVerified},
		{Name: "Jane Smith", Email: "jane@example.com",
			Bio:            "UI/UX Designer passionate about user-centered design",
			Specialization: "Design",
			ArticlesCount:  18, FollowersCount: 890, TotalViews: 32000, Rating: 4.6,
			JoinDate: date(2023, 8, 20), Status: model.AuthorStatusVerified},
		{Name: "Mike Johnson", Email: "mike@example.com",
			Bio:            "Backend engineer specializing in scalable systems",
			Specialization: "Backend",
			ArticlesCount:  15, FollowersCount: 670, TotalViews: 28000, Rating: 4.4,
			JoinDate: date(2023, 9, 10), Status: model.AuthorStatusPending},
		{Name: "Sarah Wilson", Email: "sarah@example.com",
			Bio:            "Data scientist and AI enthusiast",
			Specialization: "Data Science",
			ArticlesCount:  12, FollowersCount: 445, TotalViews: 19000, Rating: 4.2,
			JoinDate: date(2023, 10, 5), Status: model.AuthorStatusVerified},
	}
	for _, a := range authors {
		if _, err := queries.CreateAuthorProfile(ctx, a); err != nil {
			return fmt.Errorf("creating author %q: %w", a.Email, err)
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
