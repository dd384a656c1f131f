// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// UserStatus is the account state of a platform user.
type UserStatus string

// Platform user account states. The suspend action toggles between
// active and suspended; pending accounts have no exposed exit.
const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

// PlatformUser is a reader or author account as the platform sees it,
// distinct from the back-office AdminUser.
type PlatformUser struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Status         UserStatus `json:"status"`
	JoinDate       time.Time  `json:"join_date"`
	LastActive     time.Time  `json:"last_active"`
	ArticlesCount  int64      `json:"articles_count"`
	FollowersCount int64      `json:"followers_count"`
}
