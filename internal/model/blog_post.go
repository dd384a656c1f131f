// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// BlogStatus is the moderation state of a blog post.
type BlogStatus string

// Blog post moderation states.
const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPending   BlogStatus = "pending"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusRejected  BlogStatus = "rejected"
)

// BlogPost is a content item on the platform.
type BlogPost struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Author       string       `json:"author"`
	AuthorAvatar string       `json:"author_avatar,omitempty"`
	Category     string       `json:"category"`
	Excerpt      string       `json:"excerpt"`
	Body         string       `json:"-"` // Markdown source, rendered on the single-article endpoint
	Status       BlogStatus   `json:"status"`
	PublishedAt  sql.NullTime `json:"-"`
	ScheduledAt  sql.NullTime `json:"-"`
	Views        int64        `json:"views"`
	Likes        int64        `json:"likes"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsPublished returns true if the post is visible to anonymous readers.
func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogStatusPublished
}
