// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, h *Handler, email string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/subscribe",
		strings.NewReader(`{"email":"`+email+`"}`))
	rec := httptest.NewRecorder()
	h.Subscribe(rec, req)
	return rec
}

func TestSubscribe(t *testing.T) {
	_, h, _ := testSetup(t)

	rec := subscribe(t, h, "Reader@Example.com")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data SubscribeResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "reader@example.com", resp.Data.Email)
	assert.NotEmpty(t, resp.Data.UnsubscribeToken)
}

func TestSubscribeTwiceReturnsSameToken(t *testing.T) {
	_, h, _ := testSetup(t)

	first := subscribe(t, h, "reader@example.com")
	require.Equal(t, http.StatusCreated, first.Code)
	var resp1 struct {
		Data SubscribeResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(first.Body).Decode(&resp1))

	second := subscribe(t, h, "reader@example.com")
	require.Equal(t, http.StatusOK, second.Code)
	var resp2 struct {
		Data SubscribeResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(second.Body).Decode(&resp2))

	assert.Equal(t, resp1.Data.UnsubscribeToken, resp2.Data.UnsubscribeToken)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	_, h, _ := testSetup(t)

	rec := subscribe(t, h, "not-an-email")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnsubscribe(t *testing.T) {
	_, h, _ := testSetup(t)

	rec := subscribe(t, h, "reader@example.com")
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data SubscribeResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	req := requestWithURLParams(
		httptest.NewRequest(http.MethodDelete, "/api/v1/newsletter/unsubscribe/"+resp.Data.UnsubscribeToken, nil),
		map[string]string{"token": resp.Data.UnsubscribeToken})
	del := httptest.NewRecorder()
	h.Unsubscribe(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	// A second use of the token is a 404.
	del = httptest.NewRecorder()
	h.Unsubscribe(del, req)
	assert.Equal(t, http.StatusNotFound, del.Code)
}
