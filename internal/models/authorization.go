package models

import "github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"

// Element types an authorization can reference.
const (
	ElementShow    = "show"
	ElementVideo   = "video"
	ElementArticle = "article"
)

// ValidElementType reports whether t names one of the three content kinds.
func ValidElementType(t string) bool {
	return t == ElementShow || t == ElementVideo || t == ElementArticle
}

// Authorization is a request to publish a content item, pending or resolved
// by a manager. Content is a JSON blob describing what is being requested
// (estimated duration for a show, duration for a video). Manager, Comments,
// ResponseDate and Signature are set by the manager's response; Signature is
// the base64 RSA signature of the decision sentence.
type Authorization struct {
	ID           int                        `db:"id" json:"id"`
	ElementType  string                     `db:"element_type" json:"elementType"`
	ElementID    int                        `db:"element_id" json:"elementId"`
	Content      string                     `db:"content" json:"content"`
	Status       status.AuthorizationStatus `db:"status" json:"status"`
	SubmitDate   int64                      `db:"submit_date" json:"submitDate"`
	Manager      *string                    `db:"manager" json:"manager,omitempty"`
	Comments     *string                    `db:"comments" json:"comments,omitempty"`
	ResponseDate *int64                     `db:"response_date" json:"responseDate,omitempty"`
	Signature    *string                    `db:"signature" json:"signature,omitempty"`
}
