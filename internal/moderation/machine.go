// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package moderation implements the status state machines that govern
// blog posts, platform users, author profiles and admin accounts. Each
// machine is a fixed table of permitted edges with a role allow-list per
// edge; everything off the table is rejected without touching state.
package moderation

import (
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/rbac"
)

// Edge is a single permitted status transition.
type Edge struct {
	From, To string
}

// Machine is the transition table for one entity kind.
type Machine struct {
	name  string
	edges map[Edge][]model.Role
}

// Name returns the entity kind the machine governs.
func (m *Machine) Name() string { return m.name }

// Check validates a from→to transition for the given session. A
// transition to the current state is a no-op success so that retried
// commands stay safe. Off-table edges return ErrInvalidTransition;
// on-table edges with an out-of-list role return ErrAccessDenied.
func (m *Machine) Check(session *model.Session, from, to string) error {
	if from == to {
		return nil
	}
	allowed, ok := m.edges[Edge{From: from, To: to}]
	if !ok {
		return ErrInvalidTransition
	}
	if !rbac.CanAccess(session, allowed) {
		return ErrAccessDenied
	}
	return nil
}

// Edges returns the permitted edges, for introspection and tests.
func (m *Machine) Edges() []Edge {
	out := make([]Edge, 0, len(m.edges))
	for e := range m.edges {
		out = append(out, e)
	}
	return out
}

// moderators can approve, reject and delete content.
var moderators = []model.Role{model.RoleSuperAdmin, model.RoleEditor}

// BlogPosts governs blog post statuses. Drafts leave the machine only
// through the author-side submit edge; published and rejected are
// terminal for admin actions short of deletion.
var BlogPosts = &Machine{
	name: "blog_post",
	edges: map[Edge][]model.Role{
		{From: string(model.BlogStatusPending), To: string(model.BlogStatusPublished)}: moderators,
		{From: string(model.BlogStatusPending), To: string(model.BlogStatusRejected)}:  moderators,
		// Author-side edge: submitting a draft for review is open to any
		// authenticated account, not only moderators.
		{From: string(model.BlogStatusDraft), To: string(model.BlogStatusPending)}: rbac.AllRoles(),
	},
}

// BlogDeleteRoles is the allow-list for permanently removing a post,
// permitted from any state.
var BlogDeleteRoles = moderators

// PlatformUsers governs platform user accounts. Suspension is a
// super_admin-only toggle; pending accounts have no exposed exit.
var PlatformUsers = &Machine{
	name: "platform_user",
	edges: map[Edge][]model.Role{
		{From: string(model.UserStatusActive), To: string(model.UserStatusSuspended)}: {model.RoleSuperAdmin},
		{From: string(model.UserStatusSuspended), To: string(model.UserStatusActive)}: {model.RoleSuperAdmin},
	},
}

// AuthorProfiles governs author verification. There is no recovery path
// out of suspended.
var AuthorProfiles = &Machine{
	name: "author_profile",
	edges: map[Edge][]model.Role{
		{From: string(model.AuthorStatusPending), To: string(model.AuthorStatusVerified)}:   moderators,
		{From: string(model.AuthorStatusVerified), To: string(model.AuthorStatusSuspended)}: moderators,
	},
}
