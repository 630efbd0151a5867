// Package workflow implements the publication approval workflow: editors
// submit content for a manager's approval, managers respond, and approved
// content transitions to published.
package workflow

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/auth"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/signature"
)

// Element is the content item an authorization refers to, reduced to what
// the workflow and the notification templates need.
type Element struct {
	Type      string `json:"type"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Notifier tells the relevant humans that the workflow advanced. Delivery is
// fire and forget: the status change is already committed when the notifier
// runs, and failures are logged, not propagated.
type Notifier interface {
	// NotifyManagers is called once when an authorization reaches the
	// submitted state.
	NotifyManagers(el Element, a models.Authorization) error
	// NotifyEditors is called once when a manager responds.
	NotifyEditors(el Element, a models.Authorization) error
}

// Service coordinates the approval workflow.
type Service struct {
	notifier Notifier
	signer   signature.Signer
	roster   *auth.Roster

	now func() time.Time
}

func New(notifier Notifier, signer signature.Signer, roster *auth.Roster) *Service {
	return &Service{
		notifier: notifier,
		signer:   signer,
		roster:   roster,
		now:      time.Now,
	}
}

// resolveElement looks up the content item an authorization refers to.
// elementID 0 resolves to the most recently created item of that type, a
// convenience for the editor UI which submits right after creating.
func resolveElement(elementType string, elementID int) (Element, error) {
	switch elementType {
	case models.ElementShow:
		var show models.WebradioShow
		var err error
		if elementID == 0 {
			show, err = db.GetMostRecentShow()
		} else {
			show, err = db.GetShow(elementID)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return Element{}, apierr.NotFoundf("show not found")
		}
		if err != nil {
			return Element{}, apierr.Storage(err)
		}
		return Element{Type: elementType, ID: show.ID, Title: show.Title, Thumbnail: show.Thumbnail}, nil
	case models.ElementVideo:
		var video models.Video
		var err error
		if elementID == 0 {
			video, err = db.GetMostRecentVideo()
		} else {
			video, err = db.GetVideo(elementID)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return Element{}, apierr.NotFoundf("video not found")
		}
		if err != nil {
			return Element{}, apierr.Storage(err)
		}
		return Element{Type: elementType, ID: video.ID, Title: video.Title, Thumbnail: video.Thumbnail}, nil
	case models.ElementArticle:
		var article models.Article
		var err error
		if elementID == 0 {
			article, err = db.GetMostRecentArticle()
		} else {
			article, err = db.GetArticle(elementID)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return Element{}, apierr.NotFoundf("article not found")
		}
		if err != nil {
			return Element{}, apierr.Storage(err)
		}
		return Element{Type: elementType, ID: article.ID, Title: article.Title, Thumbnail: article.Thumbnail}, nil
	}
	return Element{}, apierr.Validationf("invalid element type %q", elementType)
}
