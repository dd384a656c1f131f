// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/vkwebcraft/indublog/internal/listing"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
)

type authorMove func(ctx context.Context, sess *model.Session, id int64) (model.AuthorProfile, error)

// ListAuthors handles GET /api/v1/authors. The anonymous directory shows
// verified authors only; an authenticated session sees every profile and
// may filter by ?q and ?status.
func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromRequest(r)

	var authors []model.AuthorProfile
	var err error
	if sess == nil {
		authors, err = h.queries.ListVerifiedAuthorProfiles(ctx)
	} else {
		authors, err = h.queries.ListAuthorProfiles(ctx)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list authors")
		return
	}

	facet := listing.FacetAll
	if sess != nil && r.URL.Query().Get("status") != "" {
		facet = r.URL.Query().Get("status")
	}
	authors = listing.AuthorProfiles(authors, r.URL.Query().Get("q"), facet)

	page, perPage := parsePagination(r)
	pageAuthors, meta := paginate(authors, page, perPage)
	WriteSuccess(w, pageAuthors, meta)
}

// VerifyAuthor handles POST /api/v1/admin/authors/{id}/verify.
func (h *Handler) VerifyAuthor(w http.ResponseWriter, r *http.Request) {
	h.moveAuthor(w, r, h.moderation.VerifyAuthor)
}

// SuspendAuthor handles POST /api/v1/admin/authors/{id}/suspend.
func (h *Handler) SuspendAuthor(w http.ResponseWriter, r *http.Request) {
	h.moveAuthor(w, r, h.moderation.SuspendAuthor)
}

func (h *Handler) moveAuthor(w http.ResponseWriter, r *http.Request, move authorMove) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid author ID", nil)
		return
	}

	author, err := move(r.Context(), middleware.SessionFromRequest(r), id)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	WriteSuccess(w, author, nil)
}
