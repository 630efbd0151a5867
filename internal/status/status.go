// Package status defines the lifecycle status sets for each content type.
// The three sets are independent: the same numeric code carries different
// meanings for an article, a video, a webradio show or an authorization, so
// they must never be mixed.
package status

import "fmt"

// ContentStatus is the lifecycle status of an article or a video.
type ContentStatus int

const (
	ContentDraft     ContentStatus = -2
	ContentPending   ContentStatus = -1
	ContentPublished ContentStatus = 2
)

// Valid reports whether s is one of the enumerated article/video statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentDraft, ContentPending, ContentPublished:
		return true
	}
	return false
}

func (s ContentStatus) String() string {
	switch s {
	case ContentDraft:
		return "draft"
	case ContentPending:
		return "pending"
	case ContentPublished:
		return "published"
	}
	return fmt.Sprintf("ContentStatus(%d)", int(s))
}

// ParseContentStatus validates a raw numeric status from a request body.
func ParseContentStatus(code int) (ContentStatus, error) {
	s := ContentStatus(code)
	if !s.Valid() {
		return 0, fmt.Errorf("invalid content status %d", code)
	}
	return s, nil
}

// AuthorizationStatus is the lifecycle status of a publication authorization.
type AuthorizationStatus int

const (
	AuthorizationDraft     AuthorizationStatus = -2
	AuthorizationSubmitted AuthorizationStatus = -1
	AuthorizationRejected  AuthorizationStatus = 1
	AuthorizationApproved  AuthorizationStatus = 2
)

// Open reports whether the authorization is still unresolved. Open records
// block further submissions for the same element.
func (s AuthorizationStatus) Open() bool {
	return s < 0
}

// Resolved reports whether a manager already responded.
func (s AuthorizationStatus) Resolved() bool {
	return s == AuthorizationRejected || s == AuthorizationApproved
}

func (s AuthorizationStatus) Valid() bool {
	switch s {
	case AuthorizationDraft, AuthorizationSubmitted, AuthorizationRejected, AuthorizationApproved:
		return true
	}
	return false
}

func (s AuthorizationStatus) String() string {
	switch s {
	case AuthorizationDraft:
		return "draft"
	case AuthorizationSubmitted:
		return "submitted"
	case AuthorizationRejected:
		return "rejected"
	case AuthorizationApproved:
		return "approved"
	}
	return fmt.Sprintf("AuthorizationStatus(%d)", int(s))
}
