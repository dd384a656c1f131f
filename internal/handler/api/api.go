// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API handlers for the IndubLog platform:
// public content endpoints, the admin moderation surface and session auth.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/vkwebcraft/indublog/internal/cache"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/moderation"
	"github.com/vkwebcraft/indublog/internal/service"
	"github.com/vkwebcraft/indublog/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	queries    *store.Queries
	sessions   *scs.SessionManager
	moderation *moderation.Service
	events     *service.EventService
	guard      *middleware.LoginProtection
	feed       *cache.FeedCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, sm *scs.SessionManager, guard *middleware.LoginProtection, feed *cache.FeedCache) *Handler {
	return &Handler{
		db:         db,
		queries:    store.New(db),
		sessions:   sm,
		moderation: moderation.NewService(db),
		events:     service.NewEventService(db),
		guard:      guard,
		feed:       feed,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// writeModerationError maps a moderation outcome to the API error surface.
// Unknown errors become a 500 without leaking internals.
func writeModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, moderation.ErrAccessDenied):
		WriteForbidden(w, "Access denied")
	case errors.Is(err, moderation.ErrNotFound):
		WriteNotFound(w, "Not found")
	case errors.Is(err, moderation.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, "invalid_transition", "Status transition not permitted", nil)
	case errors.Is(err, moderation.ErrSelfBan):
		WriteError(w, http.StatusUnprocessableEntity, "self_ban", "You cannot ban your own account", nil)
	case errors.Is(err, moderation.ErrValidation):
		WriteError(w, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
	default:
		WriteInternalError(w, "Operation failed")
	}
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}

// parseIDParam extracts the {id} URL parameter as an int64.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// parsePagination reads ?page and ?per_page with sane bounds.
func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	perPage = defaultPerPage
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = min(v, maxPerPage)
	}
	return page, perPage
}

// paginate slices items for the requested page and builds the Meta block.
func paginate[T any](items []T, page, perPage int) ([]T, *Meta) {
	total := int64(len(items))
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, &Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
	}
	end := min(start+perPage, len(items))
	return items[start:end], &Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}
