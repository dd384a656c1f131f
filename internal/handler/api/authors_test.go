// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

func createTestAuthor(t *testing.T, db *sql.DB, name string, status model.AuthorStatus) model.AuthorProfile {
	t.Helper()

	author, err := store.New(db).CreateAuthorProfile(context.Background(), store.CreateAuthorProfileParams{
		Name:           name,
		Email:          name + "@example.com",
		Bio:            "bio",
		Specialization: "Web Development",
		Rating:         4.5,
		JoinDate:       time.Now(),
		Status:         status,
	})
	require.NoError(t, err)
	return author
}

func TestListAuthorsAnonymousVerifiedOnly(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestAuthor(t, db, "verified-author", model.AuthorStatusVerified)
	createTestAuthor(t, db, "pending-author", model.AuthorStatusPending)
	createTestAuthor(t, db, "suspended-author", model.AuthorStatusSuspended)

	rec := httptest.NewRecorder()
	h.ListAuthors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/authors", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.AuthorProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "verified-author", resp.Data[0].Name)
}

func TestListAuthorsAuthenticatedSeesAll(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestAuthor(t, db, "verified-author", model.AuthorStatusVerified)
	createTestAuthor(t, db, "pending-author", model.AuthorStatusPending)

	req := withAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/admin/authors", nil), viewerAdmin())
	rec := httptest.NewRecorder()
	h.ListAuthors(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.AuthorProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
}

func TestVerifyAuthor(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestAuthor(t, db, "pending-author", model.AuthorStatusPending)

	req := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors/1/verify", nil),
		map[string]string{"id": "1"}), editorAdmin())
	rec := httptest.NewRecorder()
	h.VerifyAuthor(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.AuthorProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.AuthorStatusVerified, resp.Data.Status)
}

func TestVerifySuspendedAuthorConflict(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestAuthor(t, db, "suspended-author", model.AuthorStatusSuspended)

	req := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors/1/verify", nil),
		map[string]string{"id": "1"}), editorAdmin())
	rec := httptest.NewRecorder()
	h.VerifyAuthor(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSuspendAuthorViewerForbidden(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestAuthor(t, db, "verified-author", model.AuthorStatusVerified)

	req := withAdmin(requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors/1/suspend", nil),
		map[string]string{"id": "1"}), viewerAdmin())
	rec := httptest.NewRecorder()
	h.SuspendAuthor(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
