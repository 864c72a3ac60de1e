package controller_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityCreateForUsernameGuards(t *testing.T) {
	s := setupTestServer(t)
	acmeToken, _ := s.registerAndLogin(t, clientRegistration("acme", "123456789"))
	globexToken, _ := s.registerAndLogin(t, clientRegistration("globex", "987654321"))
	adminToken := s.loginAdmin(t)

	payload := map[string]string{"description": "Подана декларация"}

	// Own log is writable
	w := s.request(t, http.MethodPost, "/api/activities/user/acme", acmeToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Подана декларация", body["description"])
	assert.NotEmpty(t, body["activityDate"])

	// Someone else's is not
	w = s.request(t, http.MethodPost, "/api/activities/user/acme", globexToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Доступ запрещен", decodeBody(t, w)["error"])

	// Administrators write anywhere
	w = s.request(t, http.MethodPost, "/api/activities/user/acme", adminToken,
		map[string]string{"description": "Проверка документов"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Unknown username
	w = s.request(t, http.MethodPost, "/api/activities/user/nobody", adminToken, payload)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Пользователь не найден", decodeBody(t, w)["error"])

	// Description stays mandatory over the wire
	w = s.request(t, http.MethodPost, "/api/activities/user/acme", acmeToken,
		map[string]string{"description": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Описание активности обязательно", decodeBody(t, w)["error"])

	// Anonymous callers never reach the handler
	w = s.request(t, http.MethodPost, "/api/activities/user/acme", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActivityCreateForUserID(t *testing.T) {
	s := setupTestServer(t)
	acmeToken, acmeID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))
	globexToken, _ := s.registerAndLogin(t, clientRegistration("globex", "987654321"))

	payload := map[string]string{"description": "Оплачен платеж"}

	w := s.request(t, http.MethodPost, fmt.Sprintf("/api/activities/user/id/%d", acmeID), acmeToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(acmeID), decodeBody(t, w)["userId"])

	// The scope check applies to the username route only; by id any
	// authenticated principal may write
	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/activities/user/id/%d", acmeID), globexToken, payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/activities/user/id/%d", acmeID), "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodPost, "/api/activities/user/id/abc", acmeToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivityRecentAndPagedOverHTTP(t *testing.T) {
	s := setupTestServer(t)
	clientToken, clientID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))

	base := time.Now().Add(-12 * time.Hour)
	for i := 0; i < 5; i++ {
		w := s.request(t, http.MethodPost, "/api/activities/user/acme", clientToken, map[string]interface{}{
			"description":  fmt.Sprintf("Событие %d", i+1),
			"activityDate": base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.request(t, http.MethodGet, fmt.Sprintf("/api/activities/user/%d/recent?limit=2", clientID), clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	recent := decodeList(t, w)
	require.Len(t, recent, 2)
	assert.Equal(t, "Событие 5", recent[0]["description"])
	assert.Equal(t, "Событие 4", recent[1]["description"])

	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/activities/user/%d/page?page=1&size=2", clientID), clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decodeBody(t, w)
	assert.Equal(t, float64(5), page["totalElements"])
	assert.Equal(t, float64(3), page["totalPages"])
	content, _ := page["content"].([]interface{})
	assert.Len(t, content, 2)

	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/activities/user/%d/stats", clientID), clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decodeBody(t, w)["totalActivities"])
}

func TestActivityUpdateAndDeleteOverHTTP(t *testing.T) {
	s := setupTestServer(t)
	clientToken, clientID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))

	w := s.request(t, http.MethodPost, "/api/activities/user/acme", clientToken,
		map[string]string{"description": "Черновик"})
	require.Equal(t, http.StatusCreated, w.Code)
	activityID := uint(decodeBody(t, w)["id"].(float64))

	w = s.request(t, http.MethodPut, fmt.Sprintf("/api/activities/%d", activityID), clientToken,
		map[string]string{"description": "Исправленная запись"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Исправленная запись", decodeBody(t, w)["description"])

	w = s.request(t, http.MethodDelete, fmt.Sprintf("/api/activities/%d", activityID), clientToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/activities/%d", activityID), clientToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Активность не найдена", decodeBody(t, w)["error"])

	// Bulk wipe for a user
	s.request(t, http.MethodPost, "/api/activities/user/acme", clientToken, map[string]string{"description": "A"})
	s.request(t, http.MethodPost, "/api/activities/user/acme", clientToken, map[string]string{"description": "B"})
	w = s.request(t, http.MethodDelete, fmt.Sprintf("/api/activities/user/%d", clientID), clientToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/activities/user/%d/stats", clientID), clientToken, nil)
	assert.Equal(t, float64(0), decodeBody(t, w)["totalActivities"])
}
