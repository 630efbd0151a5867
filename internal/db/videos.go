package db

import (
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

func GetPublishedVideos() ([]models.Video, error) {
	var videos []models.Video
	err := DB.Select(&videos, "SELECT * FROM videos WHERE status = $1 ORDER BY date DESC", status.ContentPublished)
	if err != nil {
		log.Printf("Error getting published videos: %v", err)
		return nil, err
	}
	return videos, nil
}

func GetAllVideos() ([]models.Video, error) {
	var videos []models.Video
	err := DB.Select(&videos, "SELECT * FROM videos ORDER BY date DESC")
	if err != nil {
		log.Printf("Error getting videos: %v", err)
		return nil, err
	}
	return videos, nil
}

func GetVideo(id int) (models.Video, error) {
	video := models.Video{}
	err := DB.Get(&video, "SELECT * FROM videos WHERE id = $1", id)
	return video, err
}

// GetMostRecentVideo returns the latest created video, used when an
// authorization is submitted with elementId 0.
func GetMostRecentVideo() (models.Video, error) {
	video := models.Video{}
	err := DB.Get(&video, "SELECT * FROM videos ORDER BY id DESC LIMIT 1")
	return video, err
}

func CreateVideo(v models.Video) (int, error) {
	var id int
	err := DB.Get(&id, `
		INSERT INTO videos (title, description, thumbnail, video_id, type, category, author, date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		v.Title, v.Description, v.Thumbnail, v.VideoID, v.Type, v.Category, v.Author, v.Date, v.Status)
	if err != nil {
		log.Printf("Error creating video: %v", err)
		return 0, err
	}
	return id, nil
}

func UpdateVideo(v models.Video) error {
	_, err := DB.Exec(`
		UPDATE videos
		SET title = $1, description = $2, thumbnail = $3, video_id = $4, type = $5, category = $6, author = $7, date = $8, status = $9
		WHERE id = $10`,
		v.Title, v.Description, v.Thumbnail, v.VideoID, v.Type, v.Category, v.Author, v.Date, v.Status, v.ID)
	if err != nil {
		log.Printf("Error updating video %d: %v", v.ID, err)
	}
	return err
}

// SetVideoStatus changes the lifecycle status without touching anything
// else, used while an authorization is outstanding.
func SetVideoStatus(id int, s status.ContentStatus) error {
	_, err := DB.Exec("UPDATE videos SET status = $1 WHERE id = $2", s, id)
	if err != nil {
		log.Printf("Error setting video %d status: %v", id, err)
	}
	return err
}

// PublishVideo marks the video published, restamping its date so that
// sort-by-date reflects publication order.
func PublishVideo(id int, date int64) error {
	_, err := DB.Exec("UPDATE videos SET status = $1, date = $2 WHERE id = $3", status.ContentPublished, date, id)
	if err != nil {
		log.Printf("Error publishing video %d: %v", id, err)
	}
	return err
}

func DeleteVideo(id int) error {
	_, err := DB.Exec("DELETE FROM videos WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting video %d: %v", id, err)
		return err
	}
	_, err = DB.Exec("DELETE FROM authorizations WHERE element_type = $1 AND element_id = $2", models.ElementVideo, id)
	if err != nil {
		log.Printf("Error deleting authorizations of video %d: %v", id, err)
	}
	return err
}
