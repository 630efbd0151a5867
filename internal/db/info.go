package db

import (
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
)

func GetEnabledInfo() ([]models.Info, error) {
	var info []models.Info
	err := DB.Select(&info, "SELECT * FROM info WHERE enabled ORDER BY id DESC")
	if err != nil {
		log.Printf("Error getting enabled info: %v", err)
		return nil, err
	}
	return info, nil
}

func GetAllInfo() ([]models.Info, error) {
	var info []models.Info
	err := DB.Select(&info, "SELECT * FROM info ORDER BY id DESC")
	if err != nil {
		log.Printf("Error getting info: %v", err)
		return nil, err
	}
	return info, nil
}

func GetInfo(id int) (models.Info, error) {
	info := models.Info{}
	err := DB.Get(&info, "SELECT * FROM info WHERE id = $1", id)
	return info, err
}

func CreateInfo(i models.Info) error {
	_, err := DB.Exec("INSERT INTO info (html, css, enabled) VALUES ($1, $2, false)", i.HTML, i.CSS)
	if err != nil {
		log.Printf("Error creating info: %v", err)
	}
	return err
}

// UpdateInfo saves the banner; enabling one disables all others in the same
// transaction.
func UpdateInfo(i models.Info) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if i.Enabled {
		if _, err := tx.Exec("UPDATE info SET enabled = false WHERE id <> $1", i.ID); err != nil {
			log.Printf("Error disabling other info banners: %v", err)
			return err
		}
	}

	if _, err := tx.Exec("UPDATE info SET html = $1, css = $2, enabled = $3 WHERE id = $4", i.HTML, i.CSS, i.Enabled, i.ID); err != nil {
		log.Printf("Error updating info %d: %v", i.ID, err)
		return err
	}

	return tx.Commit()
}

func DeleteInfo(id int) error {
	_, err := DB.Exec("DELETE FROM info WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting info %d: %v", id, err)
	}
	return err
}
