// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging bridges slog to the event log table so that WARN
// and ERROR records show up in the admin audit trail without every
// call site having to log twice.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

// EventLogHandler decorates another slog.Handler. Every record goes to
// the inner handler; records at or above the threshold are also
// persisted as events.
type EventLogHandler struct {
	inner     slog.Handler
	queries   *store.Queries
	threshold slog.Level
}

// NewEventLogHandler wraps inner with the default WARN threshold.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel wraps inner, persisting records at or
// above level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:     inner,
		queries:   store.New(db),
		threshold: level,
	}
}

func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.inner.Handle(ctx, r)
	if r.Level >= h.threshold {
		h.persist(r)
	}
	return err
}

func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:     h.inner.WithAttrs(attrs),
		queries:   h.queries,
		threshold: h.threshold,
	}
}

func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:     h.inner.WithGroup(name),
		queries:   h.queries,
		threshold: h.threshold,
	}
}

// persist stores the record as an event. It runs on a background
// context so a cancelled request cannot swallow its own error report,
// and it never fails the log call itself.
func (h *EventLogHandler) persist(r slog.Record) {
	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:       eventLevel(r.Level),
		Category:    eventCategory(r),
		Message:     r.Message,
		AdminUserID: sql.NullInt64{}, // slog records carry no admin identity
		Metadata:    attrsJSON(r),
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// eventCategory honors an explicit "category" attribute and otherwise
// guesses from the message text, defaulting to system.
func eventCategory(r slog.Record) string {
	var explicit string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			explicit = a.Value.String()
			return false
		}
		return true
	})
	if explicit != "" {
		return explicit
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "logout"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "moderation") || strings.Contains(msg, "approve") || strings.Contains(msg, "reject"):
		return model.EventCategoryModeration
	case strings.Contains(msg, "post") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	case strings.Contains(msg, "user") || strings.Contains(msg, "author"):
		return model.EventCategoryUser
	default:
		return model.EventCategorySystem
	}
}

// attrsJSON flattens the record's attributes into a JSON object,
// dropping "category" since it is stored in its own column.
func attrsJSON(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	if len(attrs) == 0 {
		return "{}"
	}

	b, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(b)
}
