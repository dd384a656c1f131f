// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	html, err := Render("## Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "<h2") {
		t.Errorf("output missing heading: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("output missing bold text: %q", html)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	html, err := Render(`Hello <script>alert("xss")</script> world`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(html, "<script") {
		t.Errorf("output contains script tag: %q", html)
	}
	if strings.Contains(html, "alert") {
		t.Errorf("output contains script body: %q", html)
	}
}

func TestRenderStripsEventHandlers(t *testing.T) {
	html, err := Render(`<a href="https://example.com" onclick="steal()">link</a>`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(html, "onclick") {
		t.Errorf("output contains event handler: %q", html)
	}
	if !strings.Contains(html, "example.com") {
		t.Errorf("safe link should survive: %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	html, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "<table") {
		t.Errorf("GFM table not rendered: %q", html)
	}
}
