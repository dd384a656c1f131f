// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// AdminUser is a back-office account, distinct from PlatformUser.
type AdminUser struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Mobile       string       `json:"mobile"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Role         Role         `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// IsSuperAdmin returns true if the account has the super_admin role.
func (u *AdminUser) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// Session returns the session record for this account.
func (u *AdminUser) Session() *Session {
	return &Session{AdminUserID: u.ID, Email: u.Email, Role: u.Role, Authenticated: true}
}
