// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package moderation

import "errors"

// Negative outcomes of a moderation attempt. These are ordinary values
// for callers to branch on, never panics: denied access, a missing
// entity or a bad request leave the entity state untouched.
var (
	// ErrAccessDenied means the session's role is not in the edge's
	// allow-list, or there is no authenticated session.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition means the requested edge is not in the
	// permitted-transitions table for the entity kind.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound means the target entity id is absent.
	ErrNotFound = errors.New("not found")

	// ErrValidation means required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrSelfBan means an admin attempted to ban or unban their own
	// account, which is never permitted regardless of role.
	ErrSelfBan = errors.New("cannot ban own account")
)
