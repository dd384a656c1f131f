// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

func TestListAdminUsers(t *testing.T) {
	db, h, _ := testSetup(t)
	require.NoError(t, store.Seed(context.Background(), db))

	req := withAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/admin/admin-users", nil), superAdmin())
	rec := httptest.NewRecorder()
	h.ListAdminUsers(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.AdminUser `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 3)
	// Password hashes never leave the API.
	assert.NotContains(t, rec.Body.String(), "argon2")
}

func TestCreateAdminUser(t *testing.T) {
	_, h, _ := testSetup(t)

	body := `{"name":"New Admin","email":"New@IndubLog.com","mobile":"+15550001111",
		"username":"newadmin","password":"secret-password","role":"editor"}`
	req := withAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users", strings.NewReader(body)), superAdmin())
	rec := httptest.NewRecorder()
	h.CreateAdminUser(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data model.AdminUser `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "new@indublog.com", resp.Data.Email)
	assert.Equal(t, model.RoleEditor, resp.Data.Role)
	assert.True(t, resp.Data.IsActive)
}

func TestCreateAdminUserValidation(t *testing.T) {
	_, h, _ := testSetup(t)

	body := `{"name":"No Email","mobile":"+15550001111","username":"x","password":"secret-password","role":"editor"}`
	req := withAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users", strings.NewReader(body)), superAdmin())
	rec := httptest.NewRecorder()
	h.CreateAdminUser(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
}

func TestCreateAdminUserEditorForbidden(t *testing.T) {
	_, h, _ := testSetup(t)

	body := `{"name":"New Admin","email":"new@indublog.com","mobile":"+15550001111",
		"username":"newadmin","password":"secret-password","role":"editor"}`
	req := withAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users", strings.NewReader(body)), editorAdmin())
	rec := httptest.NewRecorder()
	h.CreateAdminUser(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBanAndUnbanAdminUser(t *testing.T) {
	db, h, _ := testSetup(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	editor, err := store.New(db).GetAdminUserByEmail(ctx, store.DefaultEditorEmail)
	require.NoError(t, err)
	id := strconv.FormatInt(editor.ID, 10)

	ban := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users/"+id+"/ban", nil),
		map[string]string{"id": id}), superAdmin())
	rec := httptest.NewRecorder()
	h.BanAdminUser(rec, ban)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.AdminUser `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Data.IsActive)

	unban := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users/"+id+"/unban", nil),
		map[string]string{"id": id}), superAdmin())
	rec = httptest.NewRecorder()
	h.UnbanAdminUser(rec, unban)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBanOwnAccountRejected(t *testing.T) {
	db, h, _ := testSetup(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	admin, err := store.New(db).GetAdminUserByEmail(ctx, store.DefaultAdminEmail)
	require.NoError(t, err)
	id := strconv.FormatInt(admin.ID, 10)

	req := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/admin-users/"+id+"/ban", nil),
		map[string]string{"id": id}), admin)
	rec := httptest.NewRecorder()
	h.BanAdminUser(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "self_ban", resp.Error.Code)

	// The account still works.
	reloaded, err := store.New(db).GetAdminUserByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsActive)
}
