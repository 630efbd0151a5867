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

type eventBody struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Date      int64  `json:"date"`
	Color     string `json:"color"`
	Thumbnail string `json:"thumbnail"`
}

// GetAgenda is the public event list.
func (h *Handlers) GetAgenda(w http.ResponseWriter, r *http.Request) {
	agenda, err := db.GetAgenda()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"agenda": agenda})
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body eventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	if body.Title == "" || body.Content == "" || body.Thumbnail == "" || body.Date == 0 || body.Color == "" {
		RespondError(w, apierr.Validationf("missing parameters"))
		return
	}

	event := models.Event{
		Title:     body.Title,
		Content:   body.Content,
		Date:      body.Date,
		Color:     body.Color,
		Thumbnail: body.Thumbnail,
	}
	if err := db.CreateEvent(event); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	agenda, err := db.GetAgenda()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"agenda": agenda})
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var body eventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	event, err := db.GetEvent(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("event not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if body.Title != "" {
		event.Title = body.Title
	}
	if body.Content != "" {
		event.Content = body.Content
	}
	if body.Date != 0 {
		event.Date = body.Date
	}
	if body.Color != "" {
		event.Color = body.Color
	}
	if body.Thumbnail != "" {
		event.Thumbnail = body.Thumbnail
	}

	if err := db.UpdateEvent(event); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	agenda, err := db.GetAgenda()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"agenda": agenda})
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetEvent(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("event not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteEvent(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	agenda, err := db.GetAgenda()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"agenda": agenda})
}
