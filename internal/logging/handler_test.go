// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
	"github.com/vkwebcraft/indublog/internal/testutil"
)

func newTestHandler(t *testing.T) (*EventLogHandler, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	inner := slog.NewTextHandler(io.Discard, nil)
	return NewEventLogHandler(inner, db), store.New(db), cleanup
}

func TestWarnForwardedToEventLog(t *testing.T) {
	h, q, cleanup := newTestHandler(t)
	defer cleanup()

	logger := slog.New(h)
	logger.Warn("suspicious login", "email", "admin@indublog.com")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want warning", events[0].Level)
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want auth (inferred from message)", events[0].Category)
	}
	if events[0].Metadata != `{"email":"admin@indublog.com"}` {
		t.Errorf("Metadata = %q", events[0].Metadata)
	}
}

func TestInfoNotForwarded(t *testing.T) {
	h, q, cleanup := newTestHandler(t)
	defer cleanup()

	logger := slog.New(h)
	logger.Info("server started")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("event count = %d, want 0", len(events))
	}
}

func TestExplicitCategoryAttr(t *testing.T) {
	h, q, cleanup := newTestHandler(t)
	defer cleanup()

	logger := slog.New(h)
	logger.Error("something broke", "category", model.EventCategoryModeration)

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryModeration {
		t.Errorf("Category = %q, want moderation", events[0].Category)
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want error", events[0].Level)
	}
}

func TestAttrsJSONOnlyCategory(t *testing.T) {
	h, q, cleanup := newTestHandler(t)
	defer cleanup()

	// A record whose only attribute is the category column must not
	// leave a dangling JSON fragment behind.
	logger := slog.New(h)
	logger.Warn("cleanup failed", "category", model.EventCategorySystem)

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want empty object", events[0].Metadata)
	}
}
