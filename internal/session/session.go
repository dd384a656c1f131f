// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session wires scs session management to the SQLite database.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Keys under which the auth handlers store the signed-in admin.
const (
	KeyAdminUserID = "admin_user_id"
	KeyAdminEmail  = "admin_email"
)

const lifetime = 24 * time.Hour

// New returns a session manager backed by the sessions table. In
// production the cookie gets the __Host- prefix, which requires
// Secure and Path=/ and pins it to the exact host.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = lifetime

	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	if !isDev {
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
		sm.Cookie.Secure = true
	}

	return sm
}
