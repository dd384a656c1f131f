// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vkwebcraft/indublog/internal/auth"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/moderation"
)

type adminUserMove func(ctx context.Context, sess *model.Session, id int64) (model.AdminUser, error)

// ListAdminUsers handles GET /api/v1/admin/admin-users.
func (h *Handler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListAdminUsers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list admin users")
		return
	}

	page, perPage := parsePagination(r)
	pageUsers, meta := paginate(users, page, perPage)
	WriteSuccess(w, pageUsers, meta)
}

// CreateAdminUserRequest is the request body for creating a back-office
// account.
type CreateAdminUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Mobile   string     `json:"mobile"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// CreateAdminUser handles POST /api/v1/admin/admin-users.
func (h *Handler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateAdminUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.moderation.CreateAdminUser(ctx, middleware.SessionFromRequest(r), moderation.CreateAdminUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}, auth.HashPassword)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	WriteCreated(w, user)
}

// BanAdminUser handles POST /api/v1/admin/admin-users/{id}/ban.
func (h *Handler) BanAdminUser(w http.ResponseWriter, r *http.Request) {
	h.moveAdminUser(w, r, h.moderation.BanAdminUser)
}

// UnbanAdminUser handles POST /api/v1/admin/admin-users/{id}/unban.
func (h *Handler) UnbanAdminUser(w http.ResponseWriter, r *http.Request) {
	h.moveAdminUser(w, r, h.moderation.UnbanAdminUser)
}

func (h *Handler) moveAdminUser(w http.ResponseWriter, r *http.Request, move adminUserMove) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid admin user ID", nil)
		return
	}

	user, err := move(r.Context(), middleware.SessionFromRequest(r), id)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	WriteSuccess(w, user, nil)
}
