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

type userMove func(ctx context.Context, sess *model.Session, id int64) (model.PlatformUser, error)

// ListUsers handles GET /api/v1/admin/users with the usual ?q and
// ?status list filters.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.queries.ListPlatformUsers(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list users")
		return
	}

	facet := r.URL.Query().Get("status")
	if facet == "" {
		facet = listing.FacetAll
	}
	users = listing.PlatformUsers(users, r.URL.Query().Get("q"), facet)

	page, perPage := parsePagination(r)
	pageUsers, meta := paginate(users, page, perPage)
	WriteSuccess(w, pageUsers, meta)
}

// SuspendUser handles POST /api/v1/admin/users/{id}/suspend.
func (h *Handler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	h.moveUser(w, r, h.moderation.SuspendUser)
}

// ActivateUser handles POST /api/v1/admin/users/{id}/activate.
func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.moveUser(w, r, h.moderation.ActivateUser)
}

func (h *Handler) moveUser(w http.ResponseWriter, r *http.Request, move userMove) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := move(r.Context(), middleware.SessionFromRequest(r), id)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	WriteSuccess(w, user, nil)
}
