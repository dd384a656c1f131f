// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/vkwebcraft/indublog/internal/model"
)

// PostStats breaks the post inventory down by moderation status.
type PostStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Pending   int64 `json:"pending"`
	Draft     int64 `json:"draft"`
	Rejected  int64 `json:"rejected"`
}

// DashboardStats is the payload for the admin dashboard.
type DashboardStats struct {
	Posts       PostStats `json:"posts"`
	TotalViews  int64     `json:"total_views"`
	Users       int64     `json:"users"`
	Authors     int64     `json:"authors"`
	Subscribers int64     `json:"subscribers"`
	AdminUsers  int64     `json:"admin_users"`
}

// Dashboard handles GET /api/v1/admin/stats.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var stats DashboardStats
	var err error

	counts := []struct {
		dst    *int64
		status model.BlogStatus
	}{
		{&stats.Posts.Published, model.BlogStatusPublished},
		{&stats.Posts.Pending, model.BlogStatusPending},
		{&stats.Posts.Draft, model.BlogStatusDraft},
		{&stats.Posts.Rejected, model.BlogStatusRejected},
	}
	for _, c := range counts {
		if *c.dst, err = h.queries.CountBlogPostsByStatus(ctx, c.status); err != nil {
			WriteInternalError(w, "Failed to load dashboard stats")
			return
		}
	}

	if stats.Posts.Total, err = h.queries.CountBlogPosts(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	if stats.TotalViews, err = h.queries.SumBlogPostViews(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	if stats.Users, err = h.queries.CountPlatformUsers(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	if stats.Authors, err = h.queries.CountAuthorProfiles(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	if stats.Subscribers, err = h.queries.CountSubscribers(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	if stats.AdminUsers, err = h.queries.CountAdminUsers(ctx); err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}

	WriteSuccess(w, stats, nil)
}

// RecentEvents handles GET /api/v1/admin/events?limit=N.
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	events, err := h.events.RecentEvents(r.Context(), limit)
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	WriteSuccess(w, events, nil)
}
