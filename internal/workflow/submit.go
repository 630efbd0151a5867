package workflow

import (
	"database/sql"
	"errors"
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

// SubmitRequest is an editor's request to put a content item through the
// approval workflow.
type SubmitRequest struct {
	ElementType string `json:"elementType"`
	// ElementID 0 means "the most recently created item of that type".
	ElementID int    `json:"elementId"`
	Content   string `json:"content"`
	// Status -1 submits to the managers, anything else saves a draft.
	Status int `json:"status"`
}

// Submit creates a new authorization. At most one open authorization may
// exist per element; the duplicate check and the insert run in a single
// transaction in the store.
func (s *Service) Submit(req SubmitRequest) ([]models.Authorization, error) {
	if !models.ValidElementType(req.ElementType) || req.Content == "" {
		return nil, apierr.Validationf("invalid parameters")
	}

	requested := status.AuthorizationDraft
	if req.Status == int(status.AuthorizationSubmitted) {
		requested = status.AuthorizationSubmitted
	}

	el, err := resolveElement(req.ElementType, req.ElementID)
	if err != nil {
		return nil, err
	}

	a := models.Authorization{
		ElementType: req.ElementType,
		ElementID:   el.ID,
		Content:     req.Content,
		Status:      requested,
		SubmitDate:  s.now().Unix(),
	}

	id, err := db.CreateAuthorization(a)
	if err != nil {
		if errors.Is(err, apierr.ErrConflict) {
			return nil, err
		}
		return nil, apierr.Storage(err)
	}
	a.ID = id

	if requested == status.AuthorizationSubmitted {
		s.markPending(el)
		if err := s.notifier.NotifyManagers(el, a); err != nil {
			log.Printf("Error notifying managers for authorization %d: %v", a.ID, err)
		}
	}

	return s.list()
}

// Resubmit edits a draft authorization. Rejected authorizations start over
// as a fresh submission; submitted and approved ones are immutable.
func (s *Service) Resubmit(id int, req SubmitRequest) ([]models.Authorization, error) {
	existing, err := db.GetAuthorization(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFoundf("authorization not found")
	}
	if err != nil {
		return nil, apierr.Storage(err)
	}

	if existing.Status != status.AuthorizationDraft {
		if existing.Status == status.AuthorizationRejected {
			return s.Submit(req)
		}
		return nil, apierr.Conflictf("authorization already submitted")
	}

	if req.ElementType != "" && !models.ValidElementType(req.ElementType) {
		return nil, apierr.Validationf("invalid parameters")
	}

	merged := existing
	if req.ElementType != "" {
		merged.ElementType = req.ElementType
	}
	if req.ElementID != 0 {
		merged.ElementID = req.ElementID
	}
	if req.Content != "" {
		merged.Content = req.Content
	}
	merged.Status = status.AuthorizationDraft
	if req.Status == int(status.AuthorizationSubmitted) {
		merged.Status = status.AuthorizationSubmitted
	}
	merged.SubmitDate = s.now().Unix()

	el, err := resolveElement(merged.ElementType, merged.ElementID)
	if err != nil {
		return nil, err
	}
	merged.ElementID = el.ID

	if err := db.UpdateSubmission(merged); err != nil {
		return nil, apierr.Storage(err)
	}

	if merged.Status == status.AuthorizationSubmitted {
		s.markPending(el)
		if err := s.notifier.NotifyManagers(el, merged); err != nil {
			log.Printf("Error notifying managers for authorization %d: %v", merged.ID, err)
		}
	}

	return s.list()
}

// markPending moves an article or video into the pending-authorization
// status while a manager decision is outstanding. Shows keep their own
// lifecycle.
func (s *Service) markPending(el Element) {
	var err error
	switch el.Type {
	case models.ElementArticle:
		err = db.SetArticleStatus(el.ID, status.ContentPending)
	case models.ElementVideo:
		err = db.SetVideoStatus(el.ID, status.ContentPending)
	}
	if err != nil {
		log.Printf("Error marking %s %d pending: %v", el.Type, el.ID, err)
	}
}

func (s *Service) list() ([]models.Authorization, error) {
	authorizations, err := db.ListAuthorizations()
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return authorizations, nil
}
