// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "database/sql"

// Queries wraps a database handle with typed query methods. Methods are
// grouped per entity in the sibling files.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance over the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
