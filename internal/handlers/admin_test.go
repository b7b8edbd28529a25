package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfrag/fraghouse/internal/auth"
)

func loginRequest(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	LoginHandler(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	auth.Init()
	hash, err := auth.CreateHash("hunter2", auth.Params)
	require.NoError(t, err)
	t.Setenv("ADMIN_USER", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)

	t.Run("valid credentials issue a token cookie", func(t *testing.T) {
		w := loginRequest(`{"username":"admin","password":"hunter2"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "auth_token" {
				cookie = c
			}
		}
		require.NotNil(t, cookie, "auth_token cookie set")
		assert.True(t, cookie.HttpOnly)

		sub, err := auth.AuthenticateJWT(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "admin", sub)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := loginRequest(`{"username":"admin","password":"wrong"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong username is rejected", func(t *testing.T) {
		w := loginRequest(`{"username":"intruder","password":"hunter2"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed payload is a bad request", func(t *testing.T) {
		w := loginRequest(`{"username":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandlerUnconfigured(t *testing.T) {
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	w := loginRequest(`{"username":"admin","password":"hunter2"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
