package models

import "github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"

// WebradioShow is a live radio show. StreamId points at the live stream
// source and must be set before the show may go on air; PodcastId is filled
// once the recording is published as a podcast. Prompter holds the
// presenters' script and is stripped from unauthenticated responses.
type WebradioShow struct {
	ID          int               `db:"id" json:"id"`
	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description"`
	Thumbnail   string            `db:"thumbnail" json:"thumbnail"`
	StreamID    string            `db:"stream_id" json:"streamId"`
	PodcastID   string            `db:"podcast_id" json:"podcastId"`
	Date        int64             `db:"date" json:"date"`
	Status      status.ShowStatus `db:"status" json:"status"`
	Prompter    string            `db:"prompter" json:"prompter,omitempty"`
}

// WebradioQuestion is a question sent by a listener during a live show.
type WebradioQuestion struct {
	ID       int    `db:"id" json:"id"`
	ShowID   int    `db:"show_id" json:"showId"`
	Question string `db:"question" json:"question"`
	Date     int64  `db:"date" json:"date"`
}
