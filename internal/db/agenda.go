package db

import (
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
)

func GetAgenda() ([]models.Event, error) {
	var agenda []models.Event
	err := DB.Select(&agenda, "SELECT * FROM agenda ORDER BY date DESC")
	if err != nil {
		log.Printf("Error getting agenda: %v", err)
		return nil, err
	}
	return agenda, nil
}

func GetEvent(id int) (models.Event, error) {
	event := models.Event{}
	err := DB.Get(&event, "SELECT * FROM agenda WHERE id = $1", id)
	return event, err
}

func CreateEvent(e models.Event) error {
	_, err := DB.Exec("INSERT INTO agenda (title, content, date, color, thumbnail) VALUES ($1, $2, $3, $4, $5)",
		e.Title, e.Content, e.Date, e.Color, e.Thumbnail)
	if err != nil {
		log.Printf("Error creating event: %v", err)
	}
	return err
}

func UpdateEvent(e models.Event) error {
	_, err := DB.Exec("UPDATE agenda SET title = $1, content = $2, date = $3, color = $4, thumbnail = $5 WHERE id = $6",
		e.Title, e.Content, e.Date, e.Color, e.Thumbnail, e.ID)
	if err != nil {
		log.Printf("Error updating event %d: %v", e.ID, err)
	}
	return err
}

func DeleteEvent(id int) error {
	_, err := DB.Exec("DELETE FROM agenda WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting event %d: %v", id, err)
	}
	return err
}
