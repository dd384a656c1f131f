// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package rbac holds the role registry and the access policy evaluator.
// Every gated route, tab and mutation declares an explicit allow-list of
// roles; absence of a session or a role outside the allow-list denies.
package rbac

import "github.com/vkwebcraft/indublog/internal/model"

// Capability names a coarse-grained admin ability granted by a role.
type Capability string

// Capabilities of the admin console.
const (
	CapViewDashboard    Capability = "view-dashboard"
	CapManageContent    Capability = "manage-content"
	CapManageUsers      Capability = "manage-users"
	CapManageAuthors    Capability = "manage-authors"
	CapManageAdminUsers Capability = "manage-admin-users"
	CapViewAnalytics    Capability = "view-analytics"
	CapManageSettings   Capability = "manage-settings"
)

// grants maps each capability to the roles allowed to exercise it.
var grants = map[Capability][]model.Role{
	CapViewDashboard:    {model.RoleSuperAdmin, model.RoleEditor, model.RoleViewer},
	CapManageContent:    {model.RoleSuperAdmin, model.RoleEditor},
	CapManageUsers:      {model.RoleSuperAdmin, model.RoleEditor},
	CapManageAuthors:    {model.RoleSuperAdmin, model.RoleEditor},
	CapManageAdminUsers: {model.RoleSuperAdmin},
	CapViewAnalytics:    {model.RoleSuperAdmin, model.RoleEditor},
	CapManageSettings:   {model.RoleSuperAdmin},
}

// AllRoles returns the fixed set of admin roles.
func AllRoles() []model.Role {
	return []model.Role{model.RoleSuperAdmin, model.RoleEditor, model.RoleViewer}
}

// Capabilities returns the capabilities granted to the given role.
// Unknown roles have no capabilities.
func Capabilities(role model.Role) []Capability {
	var caps []Capability
	for cap, roles := range grants {
		for _, r := range roles {
			if r == role {
				caps = append(caps, cap)
				break
			}
		}
	}
	return caps
}

// RolesFor returns the allow-list for a capability.
func RolesFor(cap Capability) []model.Role {
	return grants[cap]
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role model.Role, cap Capability) bool {
	for _, r := range grants[cap] {
		if r == role {
			return true
		}
	}
	return false
}

// CanAccess decides whether the session may perform an action gated by
// the given role allow-list. A nil or unauthenticated session denies,
// as does an empty allow-list. Pure and total: absence of a session is
// a normal input, not an error.
func CanAccess(session *model.Session, requiredRoles []model.Role) bool {
	if session == nil || !session.Authenticated {
		return false
	}
	for _, r := range requiredRoles {
		if r == session.Role {
			return true
		}
	}
	return false
}

// Can is a convenience form of CanAccess gated by a capability.
func Can(session *model.Session, cap Capability) bool {
	return CanAccess(session, grants[cap])
}
