// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

func doLogin(t *testing.T, h *Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)
	return rec
}

func TestLoginSeededSuperAdmin(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	rec := doLogin(t, h, store.DefaultAdminEmail, store.DefaultAdminPassword)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, store.DefaultAdminEmail, resp.Data.Email)
	assert.Equal(t, model.RoleSuperAdmin, resp.Data.Role)
	assert.True(t, resp.Data.Authenticated)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	rec := doLogin(t, h, "Editor@IndubLog.com", store.DefaultEditorPassword)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	rec := doLogin(t, h, store.DefaultAdminEmail, "not-the-password")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unauthorized", resp.Error.Code)
	assert.Equal(t, "Invalid credentials", resp.Error.Message)
}

func TestLoginUnknownEmailSameAnswer(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	known := doLogin(t, h, store.DefaultAdminEmail, "wrong")
	unknown := doLogin(t, h, "nobody@indublog.com", "wrong")

	assert.Equal(t, known.Code, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestLoginBannedAccountForbidden(t *testing.T) {
	db, h, _ := testSetup(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	queries := store.New(db)
	editor, err := queries.GetAdminUserByEmail(ctx, store.DefaultEditorEmail)
	require.NoError(t, err)
	require.NoError(t, queries.SetAdminUserActive(ctx, editor.ID, false))

	rec := doLogin(t, h, store.DefaultEditorEmail, store.DefaultEditorPassword)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginBannedAccountWrongPasswordSameAnswer(t *testing.T) {
	db, h, _ := testSetup(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	queries := store.New(db)
	editor, err := queries.GetAdminUserByEmail(ctx, store.DefaultEditorEmail)
	require.NoError(t, err)
	require.NoError(t, queries.SetAdminUserActive(ctx, editor.ID, false))

	// Without valid credentials the ban must stay invisible: the
	// response matches the unknown-email one exactly.
	banned := doLogin(t, h, store.DefaultEditorEmail, "wrong")
	unknown := doLogin(t, h, "nobody@indublog.com", "wrong")

	assert.Equal(t, http.StatusUnauthorized, banned.Code)
	assert.Equal(t, unknown.Code, banned.Code)
	assert.JSONEq(t, unknown.Body.String(), banned.Body.String())
}

func TestLoginMissingFields(t *testing.T) {
	_, h, _ := testSetup(t)

	rec := doLogin(t, h, "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	_, h, _ := testSetup(t)

	// Signing out without ever signing in still succeeds.
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		rec := httptest.NewRecorder()
		h.sessions.LoadAndSave(http.HandlerFunc(h.Logout)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data SessionResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.False(t, resp.Data.Authenticated)
	}
}

func TestMe(t *testing.T) {
	_, h, _ := testSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = withAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), editorAdmin())
	rec = httptest.NewRecorder()
	h.Me(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.RoleEditor, resp.Data.Role)
	assert.True(t, resp.Data.Authenticated)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	cfg := middleware.DefaultLoginProtectionConfig()
	cfg.IPRateLimit = 1000 // keep the IP limiter out of the way
	cfg.IPBurst = 1000
	cfg.MaxFailedAttempts = 3
	h.guard = middleware.NewLoginProtection(cfg)

	for range 3 {
		rec := doLogin(t, h, store.DefaultAdminEmail, "wrong")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doLogin(t, h, store.DefaultAdminEmail, store.DefaultAdminPassword)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
