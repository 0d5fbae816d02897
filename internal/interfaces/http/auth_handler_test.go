package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Errores(t *testing.T) {
	env := buildTestApp(t)

	status, body := env.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail, "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	status, body = env.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "email")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout_InvalidaTokenYDescartaBorradores(t *testing.T) {
	env := buildTestApp(t)
	token := env.login(t)
	env.openDraft(t, token, "quote")
	require.Equal(t, 1, env.drafts.Len())

	status, _ := env.call(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, env.drafts.Len())

	status, body := env.call(t, http.MethodGet, "/api/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "SESSION_EXPIRED", body["code"])
}

func TestSetCurrency(t *testing.T) {
	env := buildTestApp(t)
	token := env.login(t)

	status, body := env.call(t, http.MethodPut, "/api/session/currency", token, map[string]string{"currency": "jpy"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "JPY", body["currency"])

	status, body = env.call(t, http.MethodPut, "/api/session/currency", token, map[string]string{"currency": "EUR"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED_CURRENCY", body["code"])

	status, body = env.call(t, http.MethodGet, "/api/currencies", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "USD", body["default"])
	assert.Len(t, body["supported"], 2)
}
