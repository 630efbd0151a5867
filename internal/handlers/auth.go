package handlers

import (
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
)

// Login exchanges the admin Basic credentials for a bearer token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.CheckBasic(r.Header.Get("Authorization")); err != nil {
		RespondError(w, err)
		return
	}

	token, err := h.auth.GenerateAdminToken()
	if err != nil {
		RespondError(w, err)
		return
	}

	respondData(w, map[string]string{"jwt": token})
}

// LoginManager issues a manager token from an already-valid manager token
// (refresh) — managers first receive a short-lived token by link.
func (h *Handlers) LoginManager(w http.ResponseWriter, r *http.Request) {
	managerID, err := h.auth.VerifyManager(r.Header.Get("Authorization"))
	if err != nil {
		RespondError(w, err)
		return
	}

	token, err := h.auth.GenerateManagerToken(managerID, 14)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondData(w, map[string]string{"jwt": token})
}

// Verify confirms the bearer token is still valid and echoes it.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if err := h.auth.VerifyAdmin(header); err != nil {
		if _, merr := h.auth.VerifyManager(header); merr != nil {
			RespondError(w, merr)
			return
		}
	}

	token, _, err := h.auth.TokenExpiry(header)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondData(w, map[string]string{"jwt": token})
}

// Logout revokes the bearer token until its natural expiry.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, expiresAt, err := h.auth.TokenExpiry(r.Header.Get("Authorization"))
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := db.RevokeToken(token, expiresAt); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	respondData(w, nil)
}
