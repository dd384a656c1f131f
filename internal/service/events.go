// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality
// including event logging for audit trails.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

// EventService provides event logging functionality.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	var nullUserID sql.NullInt64
	if adminUserID != nil {
		nullUserID = sql.NullInt64{Int64: *adminUserID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:       level,
		Category:    category,
		Message:     message,
		AdminUserID: nullUserID,
		IPAddress:   ipAddress,
		Metadata:    metadataJSON,
	})
	if err != nil {
		log.Printf("Failed to log event: %v", err)
		return err
	}

	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, adminUserID, ipAddress, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, adminUserID, ipAddress, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, adminUserID, ipAddress, metadata)
}

// LogModerationEvent logs a moderation decision.
func (s *EventService) LogModerationEvent(ctx context.Context, level, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryModeration, message, adminUserID, ipAddress, metadata)
}

// LogContentEvent logs a content-related event.
func (s *EventService) LogContentEvent(ctx context.Context, level, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryContent, message, adminUserID, ipAddress, metadata)
}

// LogUserEvent logs a platform-user-related event.
func (s *EventService) LogUserEvent(ctx context.Context, level, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryUser, message, adminUserID, ipAddress, metadata)
}

// LogSystemEvent logs a system-related event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, adminUserID *int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, adminUserID, ipAddress, metadata)
}

// RecentEvents returns the newest audit entries.
func (s *EventService) RecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	return s.queries.ListRecentEvents(ctx, limit)
}
