package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

type videoBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoID     string `json:"videoId"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Date        int64  `json:"date"`
	Status      *int   `json:"status"`
}

// GetPublishedVideos is the public video list.
func (h *Handlers) GetPublishedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := db.GetPublishedVideos()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"videos": videos})
}

// GetAllVideos lists every video, drafts included.
func (h *Handlers) GetAllVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := db.GetAllVideos()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"videos": videos})
}

// GetVideo returns one video; unpublished ones require the editorial token.
func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	video, err := db.GetVideo(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("video not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if video.Status != status.ContentPublished && !h.isAdmin(r) {
		RespondError(w, apierr.ErrAuth)
		return
	}

	respondData(w, map[string]any{"video": video})
}

// CreateVideo inserts a new video after validating platform, category and
// status.
func (h *Handlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var body videoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	if body.Title == "" || body.Description == "" || body.Thumbnail == "" || body.VideoID == "" || body.Type == "" || body.Category == "" || body.Status == nil {
		RespondError(w, apierr.Validationf("missing parameters"))
		return
	}
	if !models.ValidVideoType(body.Type) || !models.ValidCategory(body.Category) {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}
	st, err := status.ParseContentStatus(*body.Status)
	if err != nil {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}

	date := body.Date
	if date == 0 {
		date = h.now().Unix()
	}

	video := models.Video{
		Title:       body.Title,
		Description: body.Description,
		Thumbnail:   body.Thumbnail,
		VideoID:     body.VideoID,
		Type:        body.Type,
		Category:    body.Category,
		Author:      body.Author,
		Date:        date,
		Status:      st,
	}
	if _, err := db.CreateVideo(video); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	videos, err := db.GetAllVideos()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"videos": videos})
}

// UpdateVideo merges the supplied fields into the stored video. Publishing
// out of pending-authorization restamps the date.
func (h *Handlers) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var body videoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	video, err := db.GetVideo(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("video not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if body.Type != "" && !models.ValidVideoType(body.Type) {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}
	if body.Category != "" && !models.ValidCategory(body.Category) {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}

	next := video.Status
	if body.Status != nil {
		next, err = status.ParseContentStatus(*body.Status)
		if err != nil {
			RespondError(w, apierr.Validationf("invalid parameters"))
			return
		}
	}

	if body.Title != "" {
		video.Title = body.Title
	}
	if body.Description != "" {
		video.Description = body.Description
	}
	if body.Thumbnail != "" {
		video.Thumbnail = body.Thumbnail
	}
	if body.VideoID != "" {
		video.VideoID = body.VideoID
	}
	if body.Type != "" {
		video.Type = body.Type
	}
	if body.Category != "" {
		video.Category = body.Category
	}
	if body.Author != "" {
		video.Author = body.Author
	}
	if body.Date != 0 {
		video.Date = body.Date
	} else {
		video.Date = workflow.PublicationDate(video.Status, next, video.Date, h.now())
	}
	video.Status = next

	if err := db.UpdateVideo(video); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	videos, err := db.GetAllVideos()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"videos": videos})
}

// DeleteVideo removes the video and its authorizations.
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetVideo(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("video not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteVideo(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	videos, err := db.GetAllVideos()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"videos": videos})
}
