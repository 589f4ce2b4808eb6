package middleware

import (
	"encoding/json"
	"net/http"
)

const AuthCookieName = "auth"

// DashboardAuth protege as rotas de staff com o cookie de sessão.
// É um gate cosmético (flag em texto puro), igual ao do dashboard web:
// não há credencial criptográfica aqui.
func DashboardAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AuthCookieName)
		if err != nil || cookie.Value != "true" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
