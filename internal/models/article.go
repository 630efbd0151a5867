package models

import "github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"

// Categories is the closed set of editorial categories shared by articles
// and videos.
var Categories = []string{"news", "culture", "sport", "science", "tech", "laroche"}

// ValidCategory reports whether c is one of the editorial categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Article is a written piece. Date is a unix timestamp meaning creation time
// while the article is a draft and publication time once it is published.
type Article struct {
	ID           int                  `db:"id" json:"id"`
	Title        string               `db:"title" json:"title"`
	Article      string               `db:"article" json:"article"`
	Thumbnail    string               `db:"thumbnail" json:"thumbnail"`
	ThumbnailSrc string               `db:"thumbnail_src" json:"thumbnailSrc"`
	Category     string               `db:"category" json:"category"`
	Author       string               `db:"author" json:"author"`
	Date         int64                `db:"date" json:"date"`
	Status       status.ContentStatus `db:"status" json:"status"`
	Views        int                  `db:"views" json:"views"`
}
