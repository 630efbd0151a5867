package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/realtime"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

// showBody is the create/update payload. Status is a pointer to the numeric
// code so "absent" stays distinguishable on update.
type showBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	StreamID    string   `json:"streamId"`
	PodcastID   string   `json:"podcastId"`
	Date        int64    `json:"date"`
	Status      *float64 `json:"status"`
	Prompter    string   `json:"prompter"`
}

// stripPrompter hides the presenters' script from unauthenticated callers.
func stripPrompter(shows []models.WebradioShow) []models.WebradioShow {
	for i := range shows {
		shows[i].Prompter = ""
	}
	return shows
}

// GetPublishedShows is the public podcast archive.
func (h *Handlers) GetPublishedShows(w http.ResponseWriter, r *http.Request) {
	shows, err := db.GetPublishedShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"shows": stripPrompter(shows)})
}

// GetCurrentShow returns the show occupying the broadcast slot, or "No
// show". The prompter is only included for the editorial team.
func (h *Handlers) GetCurrentShow(w http.ResponseWriter, r *http.Request) {
	show, err := db.GetCurrentShow()
	if errors.Is(err, sql.ErrNoRows) {
		respond(w, http.StatusOK, "No show", nil)
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if !h.isAdmin(r) {
		show.Prompter = ""
	}
	respondData(w, map[string]any{"show": show})
}

// GetAllShows lists every show, drafts included.
func (h *Handlers) GetAllShows(w http.ResponseWriter, r *http.Request) {
	shows, err := db.GetAllShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"shows": shows})
}

// GetShow returns one show. Shows outside the public statuses require
// credentials; the prompter is editorial-only.
func (h *Handlers) GetShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	show, err := db.GetShow(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("show not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	admin := h.isAdmin(r)
	if !show.Status.Public() && !admin {
		if _, merr := h.auth.VerifyManager(r.Header.Get("Authorization")); merr != nil {
			RespondError(w, merr)
			return
		}
	}
	if !admin {
		show.Prompter = ""
	}

	respondData(w, map[string]any{"show": show})
}

// CreateShow inserts a show. Going straight into the broadcast slot is
// subject to the one-live-show rule, enforced in the store transaction.
func (h *Handlers) CreateShow(w http.ResponseWriter, r *http.Request) {
	var body showBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	if body.Title == "" || body.Description == "" || body.Thumbnail == "" || body.Status == nil {
		RespondError(w, apierr.Validationf("missing parameters"))
		return
	}

	st, err := status.ParseShowStatus(*body.Status)
	if err != nil {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}

	date := body.Date
	if date == 0 {
		date = h.now().Unix()
	}

	show := models.WebradioShow{
		Title:       body.Title,
		Description: body.Description,
		Thumbnail:   body.Thumbnail,
		StreamID:    body.StreamID,
		PodcastID:   body.PodcastID,
		Date:        date,
		Status:      st,
		Prompter:    body.Prompter,
	}

	if err := workflow.ValidateShowWrite(show); err != nil {
		RespondError(w, err)
		return
	}

	id, err := db.CreateShow(show)
	if err != nil {
		if errors.Is(err, apierr.ErrConflict) {
			RespondError(w, err)
			return
		}
		RespondError(w, apierr.Storage(err))
		return
	}
	show.ID = id

	if show.Status.OnAir() {
		h.hub.Broadcast(realtime.EventShowLive, stripPrompter([]models.WebradioShow{show})[0])
	}

	shows, err := db.GetAllShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"shows": shows, "id": id})
}

// UpdateShow merges the supplied fields and applies the status transition
// rules: stream id required to go on air, one show in the broadcast slot,
// realtime events on air crossings.
func (h *Handlers) UpdateShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var body showBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	show, err := db.GetShow(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("show not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	previous := show.Status

	next := show.Status
	if body.Status != nil {
		next, err = status.ParseShowStatus(*body.Status)
		if err != nil {
			RespondError(w, apierr.Validationf("invalid parameters"))
			return
		}
	}

	if body.Title != "" {
		show.Title = body.Title
	}
	if body.Description != "" {
		show.Description = body.Description
	}
	if body.Thumbnail != "" {
		show.Thumbnail = body.Thumbnail
	}
	if body.StreamID != "" {
		show.StreamID = body.StreamID
	}
	if body.PodcastID != "" {
		show.PodcastID = body.PodcastID
	}
	if body.Date != 0 {
		show.Date = body.Date
	}
	if body.Prompter != "" {
		show.Prompter = body.Prompter
	}
	show.Status = next

	if err := workflow.ValidateShowWrite(show); err != nil {
		RespondError(w, err)
		return
	}

	if err := db.UpdateShow(show); err != nil {
		if errors.Is(err, apierr.ErrConflict) {
			RespondError(w, err)
			return
		}
		RespondError(w, apierr.Storage(err))
		return
	}

	wentLive, stopped := workflow.ShowCrossing(previous, show.Status)
	if wentLive {
		h.hub.Broadcast(realtime.EventShowLive, stripPrompter([]models.WebradioShow{show})[0])
	}
	if stopped {
		h.hub.Broadcast(realtime.EventShowStopped, nil)
	}

	shows, err := db.GetAllShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"shows": shows, "id": id})
}

// DeleteShow removes the show and its authorizations.
func (h *Handlers) DeleteShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetShow(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("show not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteShow(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	shows, err := db.GetAllShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"shows": shows})
}

// GetCurrentQuestions lists the listener questions of the show in the
// broadcast slot.
func (h *Handlers) GetCurrentQuestions(w http.ResponseWriter, r *http.Request) {
	show, err := db.GetOnAirShow()
	if errors.Is(err, sql.ErrNoRows) {
		respond(w, http.StatusOK, "No show", map[string]any{"questions": []models.WebradioQuestion{}})
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	questions, err := db.GetQuestions(show.ID)
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"questions": questions})
}

// PostQuestion attaches a listener question to the current show and pushes
// the refreshed list to the realtime channel. Public, rate limited.
func (h *Handlers) PostQuestion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	question := strings.TrimSpace(body.Question)
	if question == "" {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}

	show, err := db.GetOnAirShow()
	if errors.Is(err, sql.ErrNoRows) {
		respond(w, http.StatusOK, "No show", map[string]any{"questions": []models.WebradioQuestion{}})
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	q := models.WebradioQuestion{ShowID: show.ID, Question: question, Date: h.now().Unix()}
	if err := db.CreateQuestion(q); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	questions, err := db.GetQuestions(show.ID)
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	h.hub.Broadcast(realtime.EventQuestionsUpdated, questions)
	respondData(w, map[string]any{"questions": questions})
}

// DeleteQuestion removes a question (editorial only) and pushes the update.
func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := db.DeleteQuestion(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	show, err := db.GetOnAirShow()
	if err == nil {
		if questions, qerr := db.GetQuestions(show.ID); qerr == nil {
			h.hub.Broadcast(realtime.EventQuestionsUpdated, questions)
		}
	}

	respondData(w, nil)
}
