// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vkwebcraft/indublog/internal/auth"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/session"
)

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the authenticated identity.
type SessionResponse struct {
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email"`
	Role          model.Role `json:"role"`
	Authenticated bool       `json:"authenticated"`
}

// Login handles POST /api/v1/auth/login. Credentials are checked against
// the admin accounts table; failures are indistinguishable between an
// unknown email and a wrong password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ip := middleware.GetClientIP(r)

	if h.guard != nil && !h.guard.CheckIPRateLimit(ip) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "Too many login attempts, slow down", nil)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{"credentials": "Email and password are required"})
		return
	}

	if h.guard != nil {
		if locked, retryAfter := h.guard.IsAccountLocked(email); locked {
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				fmt.Sprintf("Account temporarily locked, retry in %s", retryAfter.Round(time.Second)), nil)
			return
		}
	}

	user, err := h.queries.GetAdminUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.recordLoginFailure(r, email, "unknown email")
			WriteUnauthorized(w, "Invalid credentials")
			return
		}
		WriteInternalError(w, "Login failed")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.recordLoginFailure(r, email, "wrong password")
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	// Only a caller who already holds valid credentials learns the
	// account is banned; anyone else gets the generic 401 above.
	if !user.IsActive {
		_ = h.events.LogAuthEvent(ctx, model.EventLevelWarning, "login rejected for banned account",
			&user.ID, ip, map[string]any{"email": email})
		WriteForbidden(w, "Account is disabled")
		return
	}

	// Session fixation protection: rotate the token on privilege change.
	if err := h.sessions.RenewToken(ctx); err != nil {
		WriteInternalError(w, "Login failed")
		return
	}
	h.sessions.Put(ctx, session.KeyAdminUserID, user.ID)
	h.sessions.Put(ctx, session.KeyAdminEmail, user.Email)

	if h.guard != nil {
		h.guard.RecordSuccessfulLogin(email)
	}

	// Upgrade the stored hash transparently when parameters have changed.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if updErr := h.queries.UpdateAdminUserPassword(ctx, user.ID, newHash); updErr != nil {
				slog.Warn("password rehash failed", "error", updErr, "admin_user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateAdminUserLastLogin(ctx, user.ID, time.Now()); err != nil {
		slog.Warn("failed to record last login", "error", err, "admin_user_id", user.ID)
	}

	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "admin signed in",
		&user.ID, ip, map[string]any{"email": user.Email, "role": string(user.Role)})

	WriteSuccess(w, SessionResponse{
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		Authenticated: true,
	}, nil)
}

// recordLoginFailure tracks the lockout counter and audits the attempt.
func (h *Handler) recordLoginFailure(r *http.Request, email, reason string) {
	ip := middleware.GetClientIP(r)
	if h.guard != nil {
		h.guard.RecordFailedAttempt(email)
	}
	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "failed login attempt",
		nil, ip, map[string]any{"email": email, "reason": reason})
}

// Logout handles POST /api/v1/auth/logout. Signing out an anonymous
// session is a no-op success so retried requests stay safe.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	adminID := h.sessions.GetInt64(ctx, session.KeyAdminUserID)
	if err := h.sessions.Destroy(ctx); err != nil {
		WriteInternalError(w, "Logout failed")
		return
	}

	if adminID != 0 {
		_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "admin signed out",
			&adminID, middleware.GetClientIP(r), nil)
	}

	WriteSuccess(w, SessionResponse{Authenticated: false}, nil)
}

// Me handles GET /api/v1/auth/me and returns the current session identity.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r)
	if admin == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	WriteSuccess(w, SessionResponse{
		Name:          admin.Name,
		Email:         admin.Email,
		Role:          admin.Role,
		Authenticated: true,
	}, nil)
}
