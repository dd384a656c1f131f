// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "indublog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateAdminUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateAdminUser(ctx, CreateAdminUserParams{
		Name:         "Test User",
		Email:        "test@indublog.com",
		Mobile:       "+1000000000",
		Username:     "testuser",
		PasswordHash: "hashed-password",
		Role:         model.RoleEditor,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@indublog.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@indublog.com")
	}
	if user.Role != model.RoleEditor {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleEditor)
	}
	if !user.IsActive {
		t.Error("new accounts should be active")
	}
}

func TestGetAdminUserByEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.GetAdminUserByEmail(ctx, "missing@indublog.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetAdminUserByEmail(missing) = %v, want sql.ErrNoRows", err)
	}

	created, err := q.CreateAdminUser(ctx, CreateAdminUserParams{
		Name:         "Test User",
		Email:        "test@indublog.com",
		Mobile:       "+1000000000",
		Username:     "testuser",
		PasswordHash: "hashed-password",
		Role:         model.RoleViewer,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	got, err := q.GetAdminUserByEmail(ctx, "test@indublog.com")
	if err != nil {
		t.Fatalf("GetAdminUserByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
}

func TestSetAdminUserActive(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateAdminUser(ctx, CreateAdminUserParams{
		Name:         "Test User",
		Email:        "test@indublog.com",
		Mobile:       "+1000000000",
		Username:     "testuser",
		PasswordHash: "hashed-password",
		Role:         model.RoleEditor,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	if err := q.SetAdminUserActive(ctx, user.ID, false); err != nil {
		t.Fatalf("SetAdminUserActive: %v", err)
	}
	got, err := q.GetAdminUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetAdminUserByID: %v", err)
	}
	if got.IsActive {
		t.Error("user should be banned")
	}

	if err := q.SetAdminUserActive(ctx, 99999, false); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("SetAdminUserActive(missing) = %v, want sql.ErrNoRows", err)
	}
}

func TestBlogPostLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	post, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Title:     "Test Post",
		Slug:      "test-post",
		Author:    "Jane Smith",
		Category:  "Technology",
		Excerpt:   "A test post.",
		Body:      "Body text.",
		Status:    model.BlogStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if post.Status != model.BlogStatusPending {
		t.Errorf("Status = %q, want pending", post.Status)
	}
	if post.PublishedAt.Valid {
		t.Error("PublishedAt should be unset on a pending post")
	}

	publishedAt := sql.NullTime{Time: now, Valid: true}
	if err := q.UpdateBlogPostStatus(ctx, post.ID, model.BlogStatusPublished, publishedAt); err != nil {
		t.Fatalf("UpdateBlogPostStatus: %v", err)
	}

	got, err := q.GetBlogPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetBlogPost: %v", err)
	}
	if got.Status != model.BlogStatusPublished {
		t.Errorf("Status = %q, want published", got.Status)
	}
	if !got.PublishedAt.Valid {
		t.Error("PublishedAt should be set on publish")
	}

	published, err := q.ListPublishedBlogPosts(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPublishedBlogPosts: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published count = %d, want 1", len(published))
	}

	if err := q.DeleteBlogPost(ctx, post.ID); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}
	if _, err := q.GetBlogPost(ctx, post.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetBlogPost(deleted) = %v, want sql.ErrNoRows", err)
	}
}

func TestRejectKeepsPublishedAtUnset(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	post, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Title:     "Rejected Post",
		Slug:      "rejected-post",
		Author:    "John Doe",
		Category:  "Design",
		Status:    model.BlogStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	if err := q.UpdateBlogPostStatus(ctx, post.ID, model.BlogStatusRejected, sql.NullTime{}); err != nil {
		t.Fatalf("UpdateBlogPostStatus: %v", err)
	}
	got, err := q.GetBlogPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetBlogPost: %v", err)
	}
	if got.Status != model.BlogStatusRejected {
		t.Errorf("Status = %q, want rejected", got.Status)
	}
	if got.PublishedAt.Valid {
		t.Error("PublishedAt should stay unset on reject")
	}
}

func TestPlatformUserStatus(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreatePlatformUser(ctx, CreatePlatformUserParams{
		Name:       "John Doe",
		Email:      "john@example.com",
		Status:     model.UserStatusActive,
		JoinDate:   now,
		LastActive: now,
	})
	if err != nil {
		t.Fatalf("CreatePlatformUser: %v", err)
	}

	if err := q.SetPlatformUserStatus(ctx, user.ID, model.UserStatusSuspended); err != nil {
		t.Fatalf("SetPlatformUserStatus: %v", err)
	}
	got, err := q.GetPlatformUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetPlatformUser: %v", err)
	}
	if got.Status != model.UserStatusSuspended {
		t.Errorf("Status = %q, want suspended", got.Status)
	}
}

func TestAuthorProfileStatus(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	author, err := q.CreateAuthorProfile(ctx, CreateAuthorProfileParams{
		Name:           "Mike Johnson",
		Email:          "mike@example.com",
		Bio:            "Backend engineer",
		Specialization: "Backend",
		Rating:         4.4,
		JoinDate:       time.Now(),
		Status:         model.AuthorStatusPending,
	})
	if err != nil {
		t.Fatalf("CreateAuthorProfile: %v", err)
	}

	if err := q.SetAuthorProfileStatus(ctx, author.ID, model.AuthorStatusVerified); err != nil {
		t.Fatalf("SetAuthorProfileStatus: %v", err)
	}

	verified, err := q.ListVerifiedAuthorProfiles(ctx)
	if err != nil {
		t.Fatalf("ListVerifiedAuthorProfiles: %v", err)
	}
	if len(verified) != 1 {
		t.Fatalf("verified count = %d, want 1", len(verified))
	}
	if verified[0].ID != author.ID {
		t.Errorf("verified[0].ID = %d, want %d", verified[0].ID, author.ID)
	}
}

func TestEventLog(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	event, err := q.CreateEvent(ctx, CreateEventParams{
		Level:    model.EventLevelWarning,
		Category: model.EventCategoryAuth,
		Message:  "failed login",
		Metadata: `{"email":"test@indublog.com"}`,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == 0 {
		t.Error("event.ID should not be 0")
	}
	if event.CreatedAt.IsZero() {
		t.Error("event.CreatedAt should be stamped on insert")
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}

	deleted, err := q.DeleteEventsBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestSubscribers(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	sub, err := q.CreateSubscriber(ctx, "reader@example.com", "token-1")
	if err != nil {
		t.Fatalf("CreateSubscriber: %v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Errorf("Email = %q, want reader@example.com", sub.Email)
	}
	if sub.SubscribedAt.IsZero() {
		t.Error("sub.SubscribedAt should be stamped on insert")
	}

	// Duplicate signup hits the unique constraint.
	if _, err := q.CreateSubscriber(ctx, "reader@example.com", "token-2"); err == nil {
		t.Error("duplicate subscriber should fail")
	}

	if err := q.DeleteSubscriberByToken(ctx, "token-1"); err != nil {
		t.Fatalf("DeleteSubscriberByToken: %v", err)
	}
	if _, err := q.GetSubscriberByEmail(ctx, "reader@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetSubscriberByEmail(deleted) = %v, want sql.ErrNoRows", err)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	count, err := q.CountAdminUsers(ctx)
	if err != nil {
		t.Fatalf("CountAdminUsers: %v", err)
	}
	if count != 3 {
		t.Errorf("admin count = %d, want 3", count)
	}

	admin, err := q.GetAdminUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetAdminUserByEmail: %v", err)
	}
	if admin.Role != model.RoleSuperAdmin {
		t.Errorf("admin Role = %q, want super_admin", admin.Role)
	}

	// Second run is a no-op.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}
	count, err = q.CountAdminUsers(ctx)
	if err != nil {
		t.Fatalf("CountAdminUsers: %v", err)
	}
	if count != 3 {
		t.Errorf("admin count after reseed = %d, want 3", count)
	}
}

func TestSeedDemo(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	pending, err := q.CountBlogPostsByStatus(ctx, model.BlogStatusPending)
	if err != nil {
		t.Fatalf("CountBlogPostsByStatus: %v", err)
	}
	if pending != 2 {
		t.Errorf("pending posts = %d, want 2", pending)
	}

	users, err := q.ListPlatformUsers(ctx)
	if err != nil {
		t.Fatalf("ListPlatformUsers: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("platform users = %d, want 4", len(users))
	}

	// Second run is a no-op.
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo (second run): %v", err)
	}
	users, err = q.ListPlatformUsers(ctx)
	if err != nil {
		t.Fatalf("ListPlatformUsers: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("platform users after reseed = %d, want 4", len(users))
	}
}
