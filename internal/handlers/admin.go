// internal/handlers/admin.go
package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/openfrag/fraghouse/internal/auth"
)

// LoginHandler authenticates the operator against ADMIN_USER and
// ADMIN_PASSWORD_HASH (an Argon2id encoded hash) and sets the auth_token
// cookie used by the rest of the admin API.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad login payload", http.StatusBadRequest)
		return
	}

	wantUser := os.Getenv("ADMIN_USER")
	wantHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if wantUser == "" || wantHash == "" {
		http.Error(w, "admin login is not configured", http.StatusServiceUnavailable)
		return
	}
	ok, err := auth.ComparePasswordAndHash(req.Password, wantHash)
	if err != nil || !ok || req.Username != wantUser {
		http.Error(w, "invalid credentials", http.StatusForbidden)
		return
	}

	token, err := auth.CreateJWT(req.Username)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
