package middleware

import (
	"context"
	"log"
	"net/http"

	"mangemate/utils"
)

// RequireAuth guards a route behind the session cookie. The decoded
// email lands in the request context under "userEmail"; the failure
// cause is logged but never echoed to the caller.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SessionCookieName)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		claims, err := utils.ValidateJWT(cookie.Value)
		if err != nil {
			log.Printf("RequireAuth: token validation failed: %v", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), "userEmail", claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerEmail pulls the authenticated caller's email out of the request
// context. Empty when the route was not guarded by RequireAuth.
func CallerEmail(r *http.Request) string {
	email, _ := r.Context().Value("userEmail").(string)
	return email
}
