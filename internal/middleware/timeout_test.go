// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func serveWithTimeout(t *testing.T, d time.Duration, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	Timeout(d)(h).ServeHTTP(rr, req)
	return rr
}

func TestTimeoutFastHandlerUntouched(t *testing.T) {
	rr := serveWithTimeout(t, 2*time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	})

	if rr.Code != http.StatusCreated {
		t.Errorf("Code = %d, want %d", rr.Code, http.StatusCreated)
	}
	if got := rr.Body.String(); got != `{"data":{"id":1}}` {
		t.Errorf("Body = %q, want handler body", got)
	}
}

func TestTimeoutSlowHandlerGetsJSON503(t *testing.T) {
	rr := serveWithTimeout(t, 30*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	})

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"code":"timeout"`) {
		t.Errorf("Body = %q, want timeout error envelope", body)
	}
}

func TestTimeoutDoesNotClobberStartedResponse(t *testing.T) {
	// Handler commits a response and then overruns the deadline. The
	// middleware must not append a second status or body on top.
	done := make(chan struct{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h := Timeout(30 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		<-r.Context().Done()
	}))
	h.ServeHTTP(rr, req)
	<-done

	if rr.Code != http.StatusOK {
		t.Errorf("Code = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); body != "partial" {
		t.Errorf("Body = %q, want %q", body, "partial")
	}
}

func TestDeadlineWriterSingleCommit(t *testing.T) {
	rr := httptest.NewRecorder()
	tw := &deadlineWriter{ResponseWriter: rr}

	tw.WriteHeader(http.StatusAccepted)
	tw.WriteHeader(http.StatusNotFound)

	if rr.Code != http.StatusAccepted {
		t.Errorf("Code = %d, want first WriteHeader to win", rr.Code)
	}

	tw.timeoutResponse()
	if body := rr.Body.String(); body != "" {
		t.Errorf("Body = %q, want timeout body suppressed after commit", body)
	}
}

func TestDeadlineWriterImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	tw := &deadlineWriter{ResponseWriter: rr}

	n, err := tw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Write() = %d, want 5", n)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("Code = %d, want implicit %d", rr.Code, http.StatusOK)
	}
}
