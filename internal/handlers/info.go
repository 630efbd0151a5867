package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
)

type infoBody struct {
	HTML    string `json:"html"`
	CSS     string `json:"css"`
	Enabled *bool  `json:"enabled"`
}

// GetInfo returns the enabled banners to the public and all of them to the
// editorial team.
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	var info []models.Info
	var err error
	if h.isAdmin(r) {
		info, err = db.GetAllInfo()
	} else {
		info, err = db.GetEnabledInfo()
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"info": info})
}

// CreateInfo adds a banner, disabled until explicitly enabled.
func (h *Handlers) CreateInfo(w http.ResponseWriter, r *http.Request) {
	var body infoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	if body.HTML == "" {
		RespondError(w, apierr.Validationf("missing parameters"))
		return
	}

	if err := db.CreateInfo(models.Info{HTML: body.HTML, CSS: body.CSS}); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	info, err := db.GetAllInfo()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"info": info})
}

// UpdateInfo edits a banner; enabling it disables every other banner.
func (h *Handlers) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var body infoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	info, err := db.GetInfo(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("info not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if body.HTML != "" {
		info.HTML = body.HTML
	}
	if body.CSS != "" {
		info.CSS = body.CSS
	}
	if body.Enabled != nil {
		info.Enabled = *body.Enabled
	}

	if err := db.UpdateInfo(info); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	all, err := db.GetAllInfo()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"info": all})
}

func (h *Handlers) DeleteInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetInfo(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("info not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteInfo(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	info, err := db.GetAllInfo()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"info": info})
}
