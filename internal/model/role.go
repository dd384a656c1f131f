// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including admin users, blog posts, platform users, author
// profiles and the audit event structures.
package model

// Role is the capability tier of an authenticated admin identity.
type Role string

// Admin roles. Every gated route and action declares an explicit
// allow-list of these; there is no implicit hierarchy between them.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// ValidRoles contains all valid admin roles.
var ValidRoles = []Role{RoleSuperAdmin, RoleEditor, RoleViewer}

// IsValidRole reports whether role is one of the known admin roles.
func IsValidRole(role Role) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable name for a role.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleEditor:
		return "Editor"
	case RoleViewer:
		return "Viewer"
	default:
		return string(r)
	}
}

// Session is the record of the currently authenticated admin identity.
// A nil *Session or Authenticated=false always denies access.
type Session struct {
	AdminUserID   int64  `json:"-"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	Authenticated bool   `json:"authenticated"`
}
