// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vkwebcraft/indublog/internal/model"
)

// SubscribeRequest is the request body for POST /api/v1/newsletter/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse carries the per-subscriber unsubscribe token.
type SubscribeResponse struct {
	Email            string `json:"email"`
	UnsubscribeToken string `json:"unsubscribe_token"`
}

// Subscribe handles POST /api/v1/newsletter/subscribe. Subscribing an
// already-subscribed address returns the existing token rather than an
// error, so the form stays safe to resubmit.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		WriteValidationError(w, map[string]string{"email": "A valid email address is required"})
		return
	}

	if existing, err := h.queries.GetSubscriberByEmail(ctx, email); err == nil {
		WriteSuccess(w, SubscribeResponse{
			Email:            existing.Email,
			UnsubscribeToken: existing.UnsubscribeToken,
		}, nil)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Subscription failed")
		return
	}

	sub, err := h.queries.CreateSubscriber(ctx, email, uuid.NewString())
	if err != nil {
		WriteInternalError(w, "Subscription failed")
		return
	}

	_ = h.events.LogUserEvent(ctx, model.EventLevelInfo, "newsletter subscription",
		nil, "", map[string]any{"email": sub.Email})

	WriteCreated(w, SubscribeResponse{
		Email:            sub.Email,
		UnsubscribeToken: sub.UnsubscribeToken,
	})
}

// Unsubscribe handles DELETE /api/v1/newsletter/unsubscribe/{token}.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := chi.URLParam(r, "token")
	if token == "" {
		WriteBadRequest(w, "Missing unsubscribe token", nil)
		return
	}

	if err := h.queries.DeleteSubscriberByToken(ctx, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Unknown unsubscribe token")
		} else {
			WriteInternalError(w, "Unsubscribe failed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
