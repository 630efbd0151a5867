package models

// Event is an entry of the public agenda.
type Event struct {
	ID        int    `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Content   string `db:"content" json:"content"`
	Date      int64  `db:"date" json:"date"`
	Color     string `db:"color" json:"color"`
	Thumbnail string `db:"thumbnail" json:"thumbnail"`
}
