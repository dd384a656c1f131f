// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d and answers with a JSON
// 503 if the handler has not produced a response by then. A handler
// that already started writing is left alone; truncating its body would
// be worse than letting it finish.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &deadlineWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.timeoutResponse()
			}
		})
	}
}

// deadlineWriter tracks whether the wrapped handler has committed a
// response, so the timeout path never writes a second header.
type deadlineWriter struct {
	http.ResponseWriter
	mu        sync.Mutex
	committed bool
}

func (tw *deadlineWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.committed {
		return
	}
	tw.committed = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *deadlineWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if !tw.committed {
		tw.committed = true
		tw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

func (tw *deadlineWriter) timeoutResponse() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.committed {
		return
	}
	tw.committed = true
	tw.ResponseWriter.Header().Set("Content-Type", "application/json")
	tw.ResponseWriter.WriteHeader(http.StatusServiceUnavailable)
	_, _ = tw.ResponseWriter.Write([]byte(`{"error":{"code":"timeout","message":"Request timed out"}}`))
}
