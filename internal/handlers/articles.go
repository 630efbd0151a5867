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

// articleBody is the create/update payload. Status is a pointer so "absent"
// and "zero" stay distinguishable on update.
type articleBody struct {
	Title        string `json:"title"`
	Article      string `json:"article"`
	Thumbnail    string `json:"thumbnail"`
	ThumbnailSrc string `json:"thumbnailSrc"`
	Category     string `json:"category"`
	Author       string `json:"author"`
	Date         int64  `json:"date"`
	Status       *int   `json:"status"`
}

// GetPublishedArticles is the public article list.
func (h *Handlers) GetPublishedArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := db.GetPublishedArticles()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"articles": articles})
}

// GetAllArticles lists every article, drafts included.
func (h *Handlers) GetAllArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := db.GetAllArticles()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"articles": articles})
}

// GetArticle returns one article and counts the view. Unpublished articles
// require the editorial token.
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	article, err := db.GetArticle(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("article not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if article.Status != status.ContentPublished && !h.isAdmin(r) {
		RespondError(w, apierr.ErrAuth)
		return
	}

	if err := db.IncrementArticleViews(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	article.Views++

	respondData(w, map[string]any{"article": article})
}

// CreateArticle inserts a new article after validating category and status.
func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	if body.Title == "" || body.Article == "" || body.Thumbnail == "" || body.Category == "" || body.Author == "" || body.Status == nil {
		RespondError(w, apierr.Validationf("missing parameters"))
		return
	}
	if !models.ValidCategory(body.Category) {
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

	article := models.Article{
		Title:        body.Title,
		Article:      body.Article,
		Thumbnail:    body.Thumbnail,
		ThumbnailSrc: body.ThumbnailSrc,
		Category:     body.Category,
		Author:       body.Author,
		Date:         date,
		Status:       st,
	}
	if _, err := db.CreateArticle(article); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	articles, err := db.GetAllArticles()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"articles": articles})
}

// UpdateArticle merges the supplied fields into the stored article.
// Publishing out of pending-authorization restamps the date.
func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var body articleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondError(w, apierr.Validationf("invalid body"))
		return
	}

	article, err := db.GetArticle(id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("article not found"))
		return
	}
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if body.Category != "" && !models.ValidCategory(body.Category) {
		RespondError(w, apierr.Validationf("invalid parameters"))
		return
	}

	next := article.Status
	if body.Status != nil {
		next, err = status.ParseContentStatus(*body.Status)
		if err != nil {
			RespondError(w, apierr.Validationf("invalid parameters"))
			return
		}
	}

	if body.Title != "" {
		article.Title = body.Title
	}
	if body.Article != "" {
		article.Article = body.Article
	}
	if body.Thumbnail != "" {
		article.Thumbnail = body.Thumbnail
	}
	if body.ThumbnailSrc != "" {
		article.ThumbnailSrc = body.ThumbnailSrc
	}
	if body.Category != "" {
		article.Category = body.Category
	}
	if body.Author != "" {
		article.Author = body.Author
	}
	if body.Date != 0 {
		article.Date = body.Date
	} else {
		article.Date = workflow.PublicationDate(article.Status, next, article.Date, h.now())
	}
	article.Status = next

	if err := db.UpdateArticle(article); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	articles, err := db.GetAllArticles()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"articles": articles})
}

// DeleteArticle removes the article and its authorizations.
func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if _, err := db.GetArticle(id); errors.Is(err, sql.ErrNoRows) {
		RespondError(w, apierr.NotFoundf("article not found"))
		return
	} else if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	if err := db.DeleteArticle(id); err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	articles, err := db.GetAllArticles()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}
	respondData(w, map[string]any{"articles": articles})
}
