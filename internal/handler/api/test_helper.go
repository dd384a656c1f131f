// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
	"github.com/vkwebcraft/indublog/internal/testutil"
	"github.com/vkwebcraft/indublog/internal/util"
)

// testSetup creates a migrated test database and an API handler backed
// by an in-memory session store.
func testSetup(t *testing.T) (*sql.DB, *Handler, *scs.SessionManager) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := scs.New()
	return db, NewHandler(db, sm, nil, nil), sm
}

// createTestPost inserts a post directly through the store layer.
func createTestPost(t *testing.T, db *sql.DB, title string, status model.BlogStatus) model.BlogPost {
	t.Helper()

	now := time.Now()
	post, err := store.New(db).CreateBlogPost(context.Background(), store.CreateBlogPostParams{
		Title:     title,
		Slug:      util.Slugify(title),
		Author:    "Test Author",
		Category:  "Technology",
		Excerpt:   "excerpt",
		Body:      "# " + title,
		Status:    model.BlogStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}

	if status != model.BlogStatusDraft {
		var publishedAt sql.NullTime
		if status == model.BlogStatusPublished {
			publishedAt = sql.NullTime{Time: now, Valid: true}
		}
		if err := store.New(db).UpdateBlogPostStatus(context.Background(), post.ID, status, publishedAt); err != nil {
			t.Fatalf("failed to move test post to %s: %v", status, err)
		}
		post, err = store.New(db).GetBlogPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("failed to reload test post: %v", err)
		}
	}

	return post
}

// withAdmin attaches an authenticated admin account to the request
// context the way the LoadAdmin middleware does.
func withAdmin(r *http.Request, admin model.AdminUser) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyAdmin, admin)
	return r.WithContext(ctx)
}

// editorAdmin and friends model the three seeded roles.
func editorAdmin() model.AdminUser {
	return model.AdminUser{ID: 2, Name: "Editor User", Email: "editor@indublog.com", Role: model.RoleEditor, IsActive: true}
}

func superAdmin() model.AdminUser {
	return model.AdminUser{ID: 1, Name: "Admin User", Email: "admin@indublog.com", Role: model.RoleSuperAdmin, IsActive: true}
}

func viewerAdmin() model.AdminUser {
	return model.AdminUser{ID: 3, Name: "Viewer User", Email: "viewer@indublog.com", Role: model.RoleViewer, IsActive: true}
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
