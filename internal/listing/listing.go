// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing implements the free-text plus status-facet filter used
// by the admin list screens for blog posts, platform users and author
// profiles. Filtering is pure and stable: it never reorders, never
// mutates its input and always returns a subset of it.
package listing

import (
	"strings"

	"github.com/vkwebcraft/indublog/internal/model"
)

// FacetAll is the sentinel that disables the status facet.
const FacetAll = "all"

// Filter returns the items whose text fields contain query
// (case-insensitive substring, empty query matches everything) AND whose
// status equals facet (FacetAll disables the facet; unknown facet values
// match nothing). Result order is the input order.
func Filter[T any](items []T, query, facet string, fields func(T) []string, status func(T) string) []T {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(fields(item), query) {
			continue
		}
		if facet != FacetAll && status(item) != facet {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// BlogPosts filters posts by title, author name and category.
func BlogPosts(items []model.BlogPost, query, facet string) []model.BlogPost {
	return Filter(items, query, facet,
		func(p model.BlogPost) []string { return []string{p.Title, p.Author, p.Category} },
		func(p model.BlogPost) string { return string(p.Status) })
}

// PlatformUsers filters users by name and email.
func PlatformUsers(items []model.PlatformUser, query, facet string) []model.PlatformUser {
	return Filter(items, query, facet,
		func(u model.PlatformUser) []string { return []string{u.Name, u.Email} },
		func(u model.PlatformUser) string { return string(u.Status) })
}

// AuthorProfiles filters authors by name, email and specialization.
func AuthorProfiles(items []model.AuthorProfile, query, facet string) []model.AuthorProfile {
	return Filter(items, query, facet,
		func(a model.AuthorProfile) []string { return []string{a.Name, a.Email, a.Specialization} },
		func(a model.AuthorProfile) string { return string(a.Status) })
}
