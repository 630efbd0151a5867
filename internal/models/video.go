package models

import "github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"

// VideoTypes lists the platforms a video can be hosted on.
var VideoTypes = []string{"youtube", "instagram"}

// ValidVideoType reports whether t is a known hosting platform.
func ValidVideoType(t string) bool {
	for _, vt := range VideoTypes {
		if t == vt {
			return true
		}
	}
	return false
}

// Video references a clip hosted on an external platform.
type Video struct {
	ID          int                  `db:"id" json:"id"`
	Title       string               `db:"title" json:"title"`
	Description string               `db:"description" json:"description"`
	Thumbnail   string               `db:"thumbnail" json:"thumbnail"`
	VideoID     string               `db:"video_id" json:"videoId"`
	Type        string               `db:"type" json:"type"`
	Category    string               `db:"category" json:"category"`
	Author      string               `db:"author" json:"author"`
	Date        int64                `db:"date" json:"date"`
	Status      status.ContentStatus `db:"status" json:"status"`
}
