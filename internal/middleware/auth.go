// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/rbac"
	"github.com/vkwebcraft/indublog/internal/service"
	"github.com/vkwebcraft/indublog/internal/session"
	"github.com/vkwebcraft/indublog/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyAdmin ContextKey = "admin"
)

// writeJSONError writes a minimal JSON error body. The API handler
// package has richer helpers; middleware keeps its own to avoid an
// import cycle.
func writeJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// Auth creates middleware that requires an authenticated session.
// Requests without one get a JSON 401.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := sm.GetInt64(r.Context(), session.KeyAdminUserID)
			if adminID == 0 {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin creates middleware that loads the signed-in admin account
// into the request context. A session pointing at a missing or banned
// account is destroyed so a stale cookie cannot keep a foothold.
func LoadAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := sm.GetInt64(r.Context(), session.KeyAdminUserID)
			if adminID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			admin, err := queries.GetAdminUserByID(r.Context(), adminID)
			if err != nil || !admin.IsActive {
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the current admin account from the request context.
// Returns nil if no account is in context.
func GetAdmin(r *http.Request) *model.AdminUser {
	admin, ok := r.Context().Value(ContextKeyAdmin).(model.AdminUser)
	if !ok {
		return nil
	}
	return &admin
}

// GetAdminIDPtr returns a pointer to the current admin's ID from
// context, or nil if not found. Useful for event logging.
func GetAdminIDPtr(r *http.Request) *int64 {
	if admin := GetAdmin(r); admin != nil {
		id := admin.ID
		return &id
	}
	return nil
}

// SessionFromRequest builds the session record the policy layer checks
// against. Returns nil when no admin is loaded.
func SessionFromRequest(r *http.Request) *model.Session {
	admin := GetAdmin(r)
	if admin == nil {
		return nil
	}
	return admin.Session()
}

// RequireRoles creates middleware that admits only sessions whose role
// is on the given allow-list. An empty list admits nobody.
func RequireRoles(roles []model.Role, eventService *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromRequest(r)
			if sess == nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}

			if !rbac.CanAccess(sess, roles) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"admin_id", sess.AdminUserID,
					"role", sess.Role,
					"remote_addr", r.RemoteAddr,
				)

				if eventService != nil {
					metadata := map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
						"status": http.StatusForbidden,
						"role":   string(sess.Role),
					}
					_ = eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
						"Access denied: insufficient permissions",
						&sess.AdminUserID, r.RemoteAddr, metadata)
				}

				writeJSONError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
