// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// AuthorStatus is the verification state of an author profile.
type AuthorStatus string

// Author profile states. Verification moves pending to verified; a
// verified author may be suspended. There is no recovery path out of
// suspended.
const (
	AuthorStatusVerified  AuthorStatus = "verified"
	AuthorStatusPending   AuthorStatus = "pending"
	AuthorStatusSuspended AuthorStatus = "suspended"
)

// AuthorProfile is an author's public-facing record. A platform user may
// or may not have one.
type AuthorProfile struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Bio            string       `json:"bio"`
	Specialization string       `json:"specialization"`
	ArticlesCount  int64        `json:"articles_count"`
	FollowersCount int64        `json:"followers_count"`
	TotalViews     int64        `json:"total_views"`
	Rating         float64      `json:"rating"` // 0..5
	JoinDate       time.Time    `json:"join_date"`
	Status         AuthorStatus `json:"status"`
}
