package db

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

// liveLockKey serializes transactions that move a show into or out of the
// broadcast slot (postgres advisory lock, transaction scoped).
const liveLockKey = 727001

func GetPublishedShows() ([]models.WebradioShow, error) {
	var shows []models.WebradioShow
	err := DB.Select(&shows, "SELECT * FROM webradio_shows WHERE status = 2 ORDER BY date DESC")
	if err != nil {
		log.Printf("Error getting published shows: %v", err)
		return nil, err
	}
	return shows, nil
}

// GetCurrentShow returns the show occupying the broadcast slot (waiting or
// live, stream or restream), if any.
func GetCurrentShow() (models.WebradioShow, error) {
	show := models.WebradioShow{}
	err := DB.Get(&show, "SELECT * FROM webradio_shows WHERE status IN (-1, -1.5, 0, 0.5) ORDER BY date DESC LIMIT 1")
	return show, err
}

// GetOnAirShow returns the show currently broadcasting on the primary
// stream, if any. Listener questions attach to it.
func GetOnAirShow() (models.WebradioShow, error) {
	show := models.WebradioShow{}
	err := DB.Get(&show, "SELECT * FROM webradio_shows WHERE status IN (-1, 0) ORDER BY date DESC LIMIT 1")
	return show, err
}

func GetAllShows() ([]models.WebradioShow, error) {
	var shows []models.WebradioShow
	err := DB.Select(&shows, "SELECT * FROM webradio_shows ORDER BY date DESC")
	if err != nil {
		log.Printf("Error getting shows: %v", err)
		return nil, err
	}
	return shows, nil
}

func GetShow(id int) (models.WebradioShow, error) {
	show := models.WebradioShow{}
	err := DB.Get(&show, "SELECT * FROM webradio_shows WHERE id = $1", id)
	return show, err
}

// GetMostRecentShow returns the latest created show, used when an
// authorization is submitted with elementId 0.
func GetMostRecentShow() (models.WebradioShow, error) {
	show := models.WebradioShow{}
	err := DB.Get(&show, "SELECT * FROM webradio_shows ORDER BY id DESC LIMIT 1")
	return show, err
}

// CreateShow inserts a show. When the show enters the broadcast slot the
// check and the insert run in one transaction under an advisory lock, so two
// concurrent go-live requests cannot both pass.
func CreateShow(s models.WebradioShow) (int, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if s.Status.LiveFamily() {
		if err := guardBroadcastSlot(tx, 0); err != nil {
			return 0, err
		}
	}

	var id int
	err = tx.Get(&id, `
		INSERT INTO webradio_shows (title, description, thumbnail, stream_id, podcast_id, date, status, prompter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		s.Title, s.Description, s.Thumbnail, s.StreamID, s.PodcastID, s.Date, s.Status, s.Prompter)
	if err != nil {
		log.Printf("Error creating show: %v", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateShow updates a show under the same broadcast-slot guard as
// CreateShow.
func UpdateShow(s models.WebradioShow) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if s.Status.LiveFamily() {
		if err := guardBroadcastSlot(tx, s.ID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		UPDATE webradio_shows
		SET title = $1, description = $2, thumbnail = $3, stream_id = $4, podcast_id = $5, date = $6, status = $7, prompter = $8
		WHERE id = $9`,
		s.Title, s.Description, s.Thumbnail, s.StreamID, s.PodcastID, s.Date, s.Status, s.Prompter, s.ID)
	if err != nil {
		log.Printf("Error updating show %d: %v", s.ID, err)
		return err
	}

	return tx.Commit()
}

// PublishShow marks the show published after an approved authorization. The
// broadcast date is kept as-is.
func PublishShow(id int) error {
	_, err := DB.Exec("UPDATE webradio_shows SET status = $1 WHERE id = $2", status.ShowPublished, id)
	if err != nil {
		log.Printf("Error publishing show %d: %v", id, err)
	}
	return err
}

// guardBroadcastSlot rejects the write when another show already holds a
// broadcast-slot status.
func guardBroadcastSlot(tx *sqlx.Tx, selfID int) error {
	if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", liveLockKey); err != nil {
		return err
	}
	var id int
	err := tx.Get(&id, "SELECT id FROM webradio_shows WHERE status IN (-1, -1.5, 0, 0.5) AND id <> $1 LIMIT 1", selfID)
	if err == nil {
		return apierr.Conflictf("a show is already live")
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func DeleteShow(id int) error {
	_, err := DB.Exec("DELETE FROM webradio_shows WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting show %d: %v", id, err)
		return err
	}
	_, err = DB.Exec("DELETE FROM authorizations WHERE element_type = $1 AND element_id = $2", models.ElementShow, id)
	if err != nil {
		log.Printf("Error deleting authorizations of show %d: %v", id, err)
	}
	return err
}

func GetQuestions(showID int) ([]models.WebradioQuestion, error) {
	var questions []models.WebradioQuestion
	err := DB.Select(&questions, "SELECT * FROM webradio_questions WHERE show_id = $1 ORDER BY date ASC", showID)
	if err != nil {
		log.Printf("Error getting questions of show %d: %v", showID, err)
		return nil, err
	}
	return questions, nil
}

func CreateQuestion(q models.WebradioQuestion) error {
	_, err := DB.Exec("INSERT INTO webradio_questions (show_id, question, date) VALUES ($1, $2, $3)", q.ShowID, q.Question, q.Date)
	if err != nil {
		log.Printf("Error creating question for show %d: %v", q.ShowID, err)
	}
	return err
}

func DeleteQuestion(id int) error {
	_, err := DB.Exec("DELETE FROM webradio_questions WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting question %d: %v", id, err)
	}
	return err
}
