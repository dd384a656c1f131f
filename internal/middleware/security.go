// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the IndubLog admin API.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS, which would pin localhost to HTTPS.
	IsDevelopment bool

	// ContentSecurityPolicy is the CSP header value.
	ContentSecurityPolicy string

	// HSTSMaxAge is the max-age for Strict-Transport-Security in seconds.
	// Set to 0 to disable HSTS.
	HSTSMaxAge int

	// HSTSIncludeSubDomains includes subdomains in the HSTS policy.
	HSTSIncludeSubDomains bool

	// FrameOptions controls X-Frame-Options: "DENY", "SAMEORIGIN", or
	// empty to disable.
	FrameOptions string

	// ReferrerPolicy controls the Referrer-Policy header.
	ReferrerPolicy string

	// PermissionsPolicy controls the Permissions-Policy header.
	PermissionsPolicy string
}

// DefaultSecurityHeadersConfig returns the policy for a JSON API that
// serves no HTML of its own: nothing may be loaded, framed or embedded.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000, // 1 year
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		ContentSecurityPolicy: buildCSP(map[string]string{
			"default-src":     "'none'",
			"frame-ancestors": "'none'",
			"base-uri":        "'none'",
			"form-action":     "'none'",
		}),
		PermissionsPolicy: buildPermissionsPolicy(map[string]string{
			"accelerometer":   "()",
			"camera":          "()",
			"geolocation":     "()",
			"gyroscope":       "()",
			"magnetometer":    "()",
			"microphone":      "()",
			"payment":         "()",
			"usb":             "()",
			"interest-cohort": "()",
			"browsing-topics": "()",
		}),
	}
	if !isDev {
		cfg.HSTSIncludeSubDomains = true
	}
	return cfg
}

// cspOrder keeps the emitted header stable between runs.
var cspOrder = []string{
	"default-src", "script-src", "style-src", "img-src", "connect-src",
	"object-src", "base-uri", "form-action", "frame-ancestors",
}

// buildCSP builds a Content-Security-Policy string from a map of directives.
func buildCSP(directives map[string]string) string {
	var parts []string
	for _, key := range cspOrder {
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
		}
	}
	for key, value := range directives {
		ordered := false
		for _, o := range cspOrder {
			if key == o {
				ordered = true
				break
			}
		}
		if !ordered {
			parts = append(parts, key+" "+value)
		}
	}
	return strings.Join(parts, "; ")
}

// buildPermissionsPolicy builds a Permissions-Policy string from a map.
func buildPermissionsPolicy(policies map[string]string) string {
	var parts []string
	for key, value := range policies {
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, ", ")
}

// SecurityHeaders returns a middleware that adds security headers to
// every response.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.ContentSecurityPolicy != "" {
				w.Header().Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}

			if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
				hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
				if cfg.HSTSIncludeSubDomains {
					hsts += "; includeSubDomains"
				}
				w.Header().Set("Strict-Transport-Security", hsts)
			}

			if cfg.FrameOptions != "" {
				w.Header().Set("X-Frame-Options", cfg.FrameOptions)
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")

			if cfg.ReferrerPolicy != "" {
				w.Header().Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			if cfg.PermissionsPolicy != "" {
				w.Header().Set("Permissions-Policy", cfg.PermissionsPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
