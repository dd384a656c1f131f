// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Subscriber is a newsletter subscription record.
type Subscriber struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	UnsubscribeToken string    `json:"-"`
	SubscribedAt     time.Time `json:"subscribed_at"`
}
