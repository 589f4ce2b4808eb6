package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type AuthHandler struct {
	Password string
}

func NewAuthHandler(password string) *AuthHandler {
	return &AuthHandler{Password: password}
}

type LoginRequest struct {
	Password string `json:"password"`
}

// HandleLogin (POST /api/login) — confere a senha do dashboard e emite o
// cookie de sessão. Gate cosmético, sem vínculo com usuário.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Password == "" {
		respondError(w, http.StatusInternalServerError, "dashboard password not configured")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Password)) != 1 {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "true",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleLogout (POST /api/logout) — expira o cookie de sessão.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
