package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

// ListAuthorizations returns every authorization, newest submissions first.
func (h *Handlers) ListAuthorizations(w http.ResponseWriter, r *http.Request) {
	authorizations, err := db.ListAuthorizations()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"authorizations": authorizations})
}

// GetAuthorization returns one authorization.
func (h *Handlers) GetAuthorization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	authorization, err := db.GetAuthorization(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("authorization not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	respondData(w, map[string]any{"authorization": authorization})
}

// SubmitAuthorization creates a new authorization (editorial only).
func (h *Handlers) SubmitAuthorization(w http.ResponseWriter, r *http.Request) {
	var req workflow.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	authorizations, err := h.workflow.Submit(req)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCreated(w, map[string]any{"authorizations": authorizations})
}

// UpdateAuthorization dispatches on the caller's role: the editorial team
// edits or resubmits a draft, a manager responds with a decision.
func (h *Handlers) UpdateAuthorization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	header := r.Header.Get("Authorization")
	if h.auth.VerifyAdmin(header) == nil {
		h.resubmitAuthorization(w, r, id)
		return
	}
	managerID, err := h.auth.VerifyManager(header)
	if err != nil {
		RespondError(w, err)
		return
	}
	h.respondAuthorization(w, r, id, managerID)
}

func (h *Handlers) resubmitAuthorization(w http.ResponseWriter, r *http.Request, id int) {
	var req workflow.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	authorizations, err := h.workflow.Resubmit(id, req)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondData(w, map[string]any{"authorizations": authorizations})
}

func (h *Handlers) respondAuthorization(w http.ResponseWriter, r *http.Request, id int, managerID string) {
	var req workflow.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	authorizations, err := h.workflow.Respond(id, managerID, req)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondData(w, map[string]any{"authorizations": authorizations})
}

// DeleteAuthorization removes an authorization (editorial only; independent
// of the approval state machine).
func (h *Handlers) DeleteAuthorization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetAuthorization(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("authorization not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteAuthorization(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	authorizations, err := db.ListAuthorizations()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"authorizations": authorizations})
}
