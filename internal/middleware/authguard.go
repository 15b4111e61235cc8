package middleware

import (
	"net/http"
)

// AuthCookieName is the presence cookie set on sign-in. It carries no session
// state; the bearer token remains the source of truth for identity.
const AuthCookieName = "fw_authed"

// RequireAuthCookie rejects requests that carry neither the presence cookie
// nor an Authorization header. Guarded routes still validate the bearer token
// themselves; this only gives unauthenticated clients a fast 401.
func RequireAuthCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			if _, err := r.Cookie(AuthCookieName); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"message":"Authentication required"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
