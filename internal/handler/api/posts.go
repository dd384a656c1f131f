// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vkwebcraft/indublog/internal/listing"
	"github.com/vkwebcraft/indublog/internal/markdown"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
	"github.com/vkwebcraft/indublog/internal/util"
)

// PostResponse represents a blog post in API responses. The raw markdown
// body is never exposed; the single-article endpoint carries rendered
// HTML instead.
type PostResponse struct {
	model.BlogPost
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	BodyHTML    string     `json:"body_html,omitempty"`
}

func toPostResponse(p model.BlogPost) PostResponse {
	resp := PostResponse{BlogPost: p}
	if p.PublishedAt.Valid {
		resp.PublishedAt = &p.PublishedAt.Time
	}
	if p.ScheduledAt.Valid {
		resp.ScheduledAt = &p.ScheduledAt.Time
	}
	return resp
}

func toPostResponses(posts []model.BlogPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

// ListPosts handles GET /api/v1/posts. Anonymous readers see published
// posts only; an authenticated session may filter across every status.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromRequest(r)

	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")
	page, perPage := parsePagination(r)

	if sess == nil {
		if status != "" && status != string(model.BlogStatusPublished) {
			WriteForbidden(w, "Authentication required to view non-published posts")
			return
		}

		// Unfiltered home feed goes through the cache.
		if query == "" && category == "" {
			h.listPublishedFeed(w, r, page, perPage)
			return
		}
		status = string(model.BlogStatusPublished)
	}

	posts, err := h.queries.ListBlogPosts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	facet := status
	if facet == "" {
		facet = listing.FacetAll
	}
	posts = listing.BlogPosts(posts, query, facet)
	if category != "" {
		posts = filterByCategory(posts, category)
	}

	pagePosts, meta := paginate(posts, page, perPage)
	WriteSuccess(w, toPostResponses(pagePosts), meta)
}

// listPublishedFeed serves the anonymous home feed, cache-first.
func (h *Handler) listPublishedFeed(w http.ResponseWriter, r *http.Request, page, perPage int) {
	ctx := r.Context()
	limit := int64(perPage)
	offset := int64((page - 1) * perPage)

	var posts []model.BlogPost
	var err error
	if h.feed != nil {
		posts, err = h.feed.PublishedPosts(ctx, limit, offset)
	} else {
		posts, err = h.queries.ListPublishedBlogPosts(ctx, limit, offset)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	total, err := h.queries.CountPublishedBlogPosts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	WriteSuccess(w, toPostResponses(posts), &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	})
}

func filterByCategory(posts []model.BlogPost, category string) []model.BlogPost {
	out := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// GetPost handles GET /api/v1/posts/{id}. The parameter may be a numeric
// ID or a slug. Anonymous readers get published posts only; a successful
// public read counts one view.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromRequest(r)

	param := chi.URLParam(r, "id")
	var post model.BlogPost
	var err error
	if id, parseErr := strconv.ParseInt(param, 10, 64); parseErr == nil {
		post, err = h.queries.GetBlogPost(ctx, id)
	} else {
		post, err = h.queries.GetBlogPostBySlug(ctx, param)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
		} else {
			WriteInternalError(w, "Failed to retrieve post")
		}
		return
	}

	// Unpublished posts are invisible to anonymous readers, not forbidden.
	if sess == nil && !post.IsPublished() {
		WriteNotFound(w, "Post not found")
		return
	}

	resp := toPostResponse(post)
	html, err := markdown.Render(post.Body)
	if err != nil {
		slog.Warn("markdown render failed", "error", err, "post_id", post.ID)
	} else {
		resp.BodyHTML = html
	}

	if post.IsPublished() {
		if err := h.queries.IncrementBlogPostViews(ctx, post.ID); err == nil {
			resp.Views++
		}
	}

	WriteSuccess(w, resp, nil)
}

// ListCategories handles GET /api/v1/categories and returns category
// names with published post counts.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var categories []store.CategoryCount
	var err error
	if h.feed != nil {
		categories, err = h.feed.Categories(ctx)
	} else {
		categories, err = h.queries.ListCategories(ctx)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list categories")
		return
	}

	WriteSuccess(w, categories, nil)
}

// CreatePostRequest is the request body for creating a draft.
type CreatePostRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Excerpt     string  `json:"excerpt"`
	Body        string  `json:"body"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

// CreatePost handles POST /api/v1/posts. New posts always start as
// drafts under the authenticated account's name; review happens through
// the submit and approve endpoints.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin := middleware.GetAdmin(r)
	if admin == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		fieldErrors["category"] = "Category is required"
	}
	if strings.TrimSpace(req.Body) == "" {
		fieldErrors["body"] = "Body is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	var scheduledAt sql.NullTime
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		at, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			WriteValidationError(w, map[string]string{"scheduled_at": "Must be an RFC3339 timestamp"})
			return
		}
		scheduledAt = sql.NullTime{Time: at, Valid: true}
	}

	slug := util.Slugify(req.Title)
	if _, err := h.queries.GetBlogPostBySlug(ctx, slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "A post with this title already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to create post")
		return
	}

	now := time.Now()
	post, err := h.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Author:      admin.Name,
		Category:    strings.TrimSpace(req.Category),
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Body:        req.Body,
		Status:      model.BlogStatusDraft,
		ScheduledAt: scheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create post")
		return
	}

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "post drafted",
		&admin.ID, middleware.GetClientIP(r), map[string]any{"post_id": post.ID, "title": post.Title})

	WriteCreated(w, toPostResponse(post))
}

// MyPosts handles GET /api/v1/posts/mine: the authenticated account's
// own posts in every status, with the usual list filters.
func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin := middleware.GetAdmin(r)
	if admin == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	posts, err := h.queries.ListBlogPostsByAuthor(ctx, admin.Name)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	facet := r.URL.Query().Get("status")
	if facet == "" {
		facet = listing.FacetAll
	}
	posts = listing.BlogPosts(posts, r.URL.Query().Get("q"), facet)

	page, perPage := parsePagination(r)
	pagePosts, meta := paginate(posts, page, perPage)
	WriteSuccess(w, toPostResponses(pagePosts), meta)
}

// SubmitPost handles POST /api/v1/posts/{id}/submit: the author-side
// draft to pending edge.
func (h *Handler) SubmitPost(w http.ResponseWriter, r *http.Request) {
	h.movePost(w, r, h.moderation.SubmitBlogPost, false)
}

// ApprovePost handles POST /api/v1/admin/blogs/{id}/approve.
func (h *Handler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	h.movePost(w, r, h.moderation.ApproveBlogPost, true)
}

// RejectPost handles POST /api/v1/admin/blogs/{id}/reject.
func (h *Handler) RejectPost(w http.ResponseWriter, r *http.Request) {
	h.movePost(w, r, h.moderation.RejectBlogPost, false)
}

type postMove func(ctx context.Context, sess *model.Session, id int64) (model.BlogPost, error)

func (h *Handler) movePost(w http.ResponseWriter, r *http.Request, move postMove, invalidatesFeed bool) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid post ID", nil)
		return
	}

	post, err := move(ctx, middleware.SessionFromRequest(r), id)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	if invalidatesFeed && h.feed != nil {
		h.feed.Invalidate(ctx)
	}

	WriteSuccess(w, toPostResponse(post), nil)
}

// DeletePost handles DELETE /api/v1/admin/blogs/{id}. Deletion is
// allowed from any status for the moderator roles.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid post ID", nil)
		return
	}

	if err := h.moderation.DeleteBlogPost(ctx, middleware.SessionFromRequest(r), id); err != nil {
		writeModerationError(w, err)
		return
	}

	if h.feed != nil {
		h.feed.Invalidate(ctx)
	}

	w.WriteHeader(http.StatusNoContent)
}
