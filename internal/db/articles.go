package db

import (
	"log"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

func GetPublishedArticles() ([]models.Article, error) {
	var articles []models.Article
	err := DB.Select(&articles, "SELECT * FROM articles WHERE status = $1 ORDER BY date DESC", status.ContentPublished)
	if err != nil {
		log.Printf("Error getting published articles: %v", err)
		return nil, err
	}
	return articles, nil
}

func GetAllArticles() ([]models.Article, error) {
	var articles []models.Article
	err := DB.Select(&articles, "SELECT * FROM articles ORDER BY date DESC")
	if err != nil {
		log.Printf("Error getting articles: %v", err)
		return nil, err
	}
	return articles, nil
}

func GetArticle(id int) (models.Article, error) {
	article := models.Article{}
	err := DB.Get(&article, "SELECT * FROM articles WHERE id = $1", id)
	return article, err
}

// GetMostRecentArticle returns the latest created article, used when an
// authorization is submitted with elementId 0.
func GetMostRecentArticle() (models.Article, error) {
	article := models.Article{}
	err := DB.Get(&article, "SELECT * FROM articles ORDER BY id DESC LIMIT 1")
	return article, err
}

func IncrementArticleViews(id int) error {
	_, err := DB.Exec("UPDATE articles SET views = views + 1 WHERE id = $1", id)
	return err
}

func CreateArticle(a models.Article) (int, error) {
	var id int
	err := DB.Get(&id, `
		INSERT INTO articles (title, article, thumbnail, thumbnail_src, category, author, date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		a.Title, a.Article, a.Thumbnail, a.ThumbnailSrc, a.Category, a.Author, a.Date, a.Status)
	if err != nil {
		log.Printf("Error creating article: %v", err)
		return 0, err
	}
	return id, nil
}

func UpdateArticle(a models.Article) error {
	_, err := DB.Exec(`
		UPDATE articles
		SET title = $1, article = $2, thumbnail = $3, thumbnail_src = $4, category = $5, author = $6, date = $7, status = $8
		WHERE id = $9`,
		a.Title, a.Article, a.Thumbnail, a.ThumbnailSrc, a.Category, a.Author, a.Date, a.Status, a.ID)
	if err != nil {
		log.Printf("Error updating article %d: %v", a.ID, err)
	}
	return err
}

// SetArticleStatus changes the lifecycle status without touching anything
// else, used while an authorization is outstanding.
func SetArticleStatus(id int, s status.ContentStatus) error {
	_, err := DB.Exec("UPDATE articles SET status = $1 WHERE id = $2", s, id)
	if err != nil {
		log.Printf("Error setting article %d status: %v", id, err)
	}
	return err
}

// PublishArticle marks the article published, restamping its date so that
// sort-by-date reflects publication order.
func PublishArticle(id int, date int64) error {
	_, err := DB.Exec("UPDATE articles SET status = $1, date = $2 WHERE id = $3", status.ContentPublished, date, id)
	if err != nil {
		log.Printf("Error publishing article %d: %v", id, err)
	}
	return err
}

func DeleteArticle(id int) error {
	_, err := DB.Exec("DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting article %d: %v", id, err)
		return err
	}
	_, err = DB.Exec("DELETE FROM authorizations WHERE element_type = $1 AND element_id = $2", models.ElementArticle, id)
	if err != nil {
		log.Printf("Error deleting authorizations of article %d: %v", id, err)
	}
	return err
}
