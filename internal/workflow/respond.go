package workflow

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

// defaultComments is stamped when the manager leaves no comment.
const defaultComments = "Non spécifié"

// RespondRequest is a manager's decision on a submitted authorization.
type RespondRequest struct {
	// Status is the decision: 2 approves, 1 rejects.
	Status   int    `json:"status"`
	Comments string `json:"comments"`
}

// Respond applies a manager's decision: the record is stamped with the
// manager's roster name, the response date and the signed decision sentence.
// Approval publishes the referenced element.
func (s *Service) Respond(id int, managerID string, req RespondRequest) ([]models.Authorization, error) {
	name, ok := s.roster.Name(managerID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown manager", apierr.ErrAuth)
	}

	decision := status.AuthorizationStatus(req.Status)
	if !decision.Resolved() {
		return nil, apierr.Validationf("invalid parameters")
	}

	a, err := db.GetAuthorization(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFoundf("authorization not found")
	}
	if err != nil {
		return nil, apierr.Storage(err)
	}

	if a.Status != status.AuthorizationSubmitted {
		return nil, apierr.Conflictf("response already submitted")
	}

	el, err := resolveElement(a.ElementType, a.ElementID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sentence := decisionSentence(decision, name, now.Format("02/01/2006"))
	sig, err := s.signer.Sign(sentence)
	if err != nil {
		return nil, fmt.Errorf("sign authorization %d: %w", id, err)
	}

	comments := req.Comments
	if comments == "" {
		comments = defaultComments
	}

	responded, err := db.RespondAuthorization(id, decision, name, comments, now.Unix(), sig)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if !responded {
		return nil, apierr.Conflictf("response already submitted")
	}

	s.applyDecision(el, decision, now.Unix())

	responseDate := now.Unix()
	a.Status = decision
	a.Manager = &name
	a.Comments = &comments
	a.ResponseDate = &responseDate
	a.Signature = &sig
	if err := s.notifier.NotifyEditors(el, a); err != nil {
		log.Printf("Error notifying editors for authorization %d: %v", a.ID, err)
	}

	return s.list()
}

// decisionSentence is the plaintext bound to the manager's signature.
func decisionSentence(decision status.AuthorizationStatus, name, date string) string {
	if decision == status.AuthorizationApproved {
		return fmt.Sprintf("Autorisation de publication accordée par %s le %s.", name, date)
	}
	return fmt.Sprintf("Autorisation de publication refusée par %s le %s.", name, date)
}

// applyDecision transitions the element after the response is committed.
// Approval publishes it; articles and videos get their date restamped so
// publication order drives sorting. Rejection sends articles and videos back
// to draft. Failures here are logged, not rolled back: the decision itself
// already stands.
func (s *Service) applyDecision(el Element, decision status.AuthorizationStatus, date int64) {
	var err error
	if decision == status.AuthorizationApproved {
		switch el.Type {
		case models.ElementArticle:
			err = db.PublishArticle(el.ID, date)
		case models.ElementVideo:
			err = db.PublishVideo(el.ID, date)
		case models.ElementShow:
			err = db.PublishShow(el.ID)
		}
	} else {
		switch el.Type {
		case models.ElementArticle:
			err = db.SetArticleStatus(el.ID, status.ContentDraft)
		case models.ElementVideo:
			err = db.SetVideoStatus(el.ID, status.ContentDraft)
		}
	}
	if err != nil {
		log.Printf("Error applying decision to %s %d: %v", el.Type, el.ID, err)
	}
}
