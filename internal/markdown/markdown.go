// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown converts author-submitted markdown bodies to
// sanitized HTML for the public article endpoint.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlSanitizer uses bluemonday's UGCPolicy, which allows safe HTML tags
// for user-generated content while stripping potentially dangerous
// elements like <script> and event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

// converter renders GitHub-flavored markdown. WithUnsafe passes inline
// HTML through so bluemonday is the single filter deciding what
// survives; without it goldmark escapes safe tags authors are allowed
// to use, like plain links.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts markdown to sanitized HTML. Post bodies come from
// platform authors, so the output is always run through the sanitizer.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
