// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth       = "auth"
	EventCategoryModeration = "moderation"
	EventCategoryContent    = "content"
	EventCategoryUser       = "user"
	EventCategorySystem     = "system"
)

// Event represents an audit log entry.
type Event struct {
	ID          int64
	Level       string
	Category    string
	Message     string
	AdminUserID sql.NullInt64
	IPAddress   string
	Metadata    string // JSON string
	CreatedAt   time.Time
}
