// handlers/auth_handler.go
package handlers

import (
	"log"
	"net/http"
	"strings"

	"mangemate/utils"
)

// IssueToken signs a session credential for the supplied email and sets
// it as the session cookie. The caller asserts its own identity here;
// guarded routes only ever trust the cookie after signature checks.
func IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	token, err := utils.GenerateJWT(payload.Email)
	if err != nil {
		log.Printf("token signing failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, utils.SessionCookie(token))
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout clears the session cookie with attributes matching the ones it
// was issued with.
func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, utils.ExpiredSessionCookie())
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
