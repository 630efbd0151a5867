package db

import (
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

// authLockKey is the advisory lock base for authorization submissions. The
// per-element lock serializes concurrent submissions for the same element;
// the partial unique index in the schema backstops it.
const authLockKey = 727002

func ListAuthorizations() ([]models.Authorization, error) {
	var authorizations []models.Authorization
	err := DB.Select(&authorizations, "SELECT * FROM authorizations ORDER BY submit_date DESC, id DESC")
	if err != nil {
		log.Printf("Error getting authorizations: %v", err)
		return nil, err
	}
	return authorizations, nil
}

func GetAuthorization(id int) (models.Authorization, error) {
	authorization := models.Authorization{}
	err := DB.Get(&authorization, "SELECT * FROM authorizations WHERE id = $1", id)
	return authorization, err
}

// CreateAuthorization inserts a new authorization. The open-record check and
// the insert run in one transaction under a per-element advisory lock: at
// most one open authorization may exist per (elementType, elementId).
func CreateAuthorization(a models.Authorization) (int, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1, $2)", authLockKey, a.ElementID); err != nil {
		return 0, err
	}

	var open int
	err = tx.Get(&open, "SELECT COUNT(*) FROM authorizations WHERE element_type = $1 AND element_id = $2 AND status < 0",
		a.ElementType, a.ElementID)
	if err != nil {
		return 0, err
	}
	if open > 0 {
		return 0, apierr.Conflictf("authorization already exists")
	}

	var id int
	err = tx.Get(&id, `
		INSERT INTO authorizations (element_type, element_id, content, submit_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		a.ElementType, a.ElementID, a.Content, a.SubmitDate, a.Status)
	if err != nil {
		log.Printf("Error creating authorization: %v", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateSubmission rewrites a draft authorization before it reaches a
// manager.
func UpdateSubmission(a models.Authorization) error {
	_, err := DB.Exec(`
		UPDATE authorizations
		SET element_type = $1, element_id = $2, content = $3, submit_date = $4, status = $5
		WHERE id = $6`,
		a.ElementType, a.ElementID, a.Content, a.SubmitDate, a.Status, a.ID)
	if err != nil {
		log.Printf("Error updating authorization %d: %v", a.ID, err)
	}
	return err
}

// RespondAuthorization stamps the manager's decision. The status guard in
// the WHERE clause makes a second response lose: it reports false when the
// record was no longer open-submitted.
func RespondAuthorization(id int, decision status.AuthorizationStatus, manager, comments string, responseDate int64, signature string) (bool, error) {
	res, err := DB.Exec(`
		UPDATE authorizations
		SET status = $1, manager = $2, comments = $3, response_date = $4, signature = $5
		WHERE id = $6 AND status = $7`,
		decision, manager, comments, responseDate, signature, id, status.AuthorizationSubmitted)
	if err != nil {
		log.Printf("Error responding to authorization %d: %v", id, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func DeleteAuthorization(id int) error {
	_, err := DB.Exec("DELETE FROM authorizations WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting authorization %d: %v", id, err)
	}
	return err
}
