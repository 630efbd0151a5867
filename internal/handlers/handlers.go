// Package handlers exposes the HTTP surface. Handlers validate request
// fields, delegate to the store and the workflow, and answer with the
// {code, message, data} envelope the site expects.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/auth"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/feed"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/realtime"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

// Handlers carries the collaborators every endpoint shares.
type Handlers struct {
	auth     *auth.Service
	workflow *workflow.Service
	hub      *realtime.Hub
	feedCfg  feed.Config

	now func() time.Time
}

func New(authService *auth.Service, workflowService *workflow.Service, hub *realtime.Hub, feedCfg feed.Config) *Handlers {
	return &Handlers{
		auth:     authService,
		workflow: workflowService,
		hub:      hub,
		feedCfg:  feedCfg,
		now:      time.Now,
	}
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(envelope{Code: code, Message: message, Data: data}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondData(w http.ResponseWriter, data any) {
	respond(w, http.StatusOK, "Success", data)
}

func respondCreated(w http.ResponseWriter, data any) {
	respond(w, http.StatusCreated, "Success", data)
}

// RespondError translates an error kind into its HTTP status. Storage
// failures keep their cause server-side.
func RespondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, apierr.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, apierr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apierr.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, apierr.ErrAuth):
		code = http.StatusUnauthorized
	default:
		log.Printf("Internal error: %v", err)
	}
	respond(w, code, apierr.Message(err), nil)
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apierr.Validationf("invalid id")
	}
	return id, nil
}

// isAdmin reports whether the request carries a valid editorial token,
// without failing the request.
func (h *Handlers) isAdmin(r *http.Request) bool {
	return h.auth.VerifyAdmin(r.Header.Get("Authorization")) == nil
}
