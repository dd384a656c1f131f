// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

// CreateEventParams holds the fields for a new event log entry.
type CreateEventParams struct {
	Level       string
	Category    string
	Message     string
	AdminUserID sql.NullInt64
	IPAddress   string
	Metadata    string
}

const eventColumns = `id, level, category, message, admin_user_id, ip_address, metadata, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.AdminUserID,
		&e.IPAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (level, category, message, admin_user_id, ip_address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		p.Level, p.Category, p.Message, p.AdminUserID, p.IPAddress, p.Metadata, time.Now())
	return scanEvent(row)
}

// ListRecentEvents returns the newest events first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEventsBefore removes events older than the cutoff. Returns the
// number of rows removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
