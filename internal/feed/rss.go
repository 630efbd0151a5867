// Package feed renders the public podcast feed of published webradio shows.
package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
)

// Config carries the feed identity and the URL bases the items point at.
type Config struct {
	Title       string
	Description string
	SiteURL     string
	APIURL      string
}

// GenerateRSS renders the podcast feed for the published shows, newest
// first.
func GenerateRSS(cfg Config, shows []models.WebradioShow) (string, error) {
	now := time.Now()
	p := podcast.New(cfg.Title, cfg.SiteURL+"/webradio", cfg.Description, &now, &now)
	p.AddImage(cfg.APIURL + "/public/images/webradio.png")
	p.Language = "fr"

	for _, show := range shows {
		pubDate := time.Unix(show.Date, 0)
		item := podcast.Item{
			Title:       show.Title,
			Description: show.Description,
			Link:        fmt.Sprintf("%s/webradio/%d", cfg.SiteURL, show.ID),
			PubDate:     &pubDate,
		}
		item.AddImage(fmt.Sprintf("%s/public/images/thumbnails/%s", cfg.APIURL, show.Thumbnail))
		if show.PodcastID != "" {
			item.AddEnclosure(fmt.Sprintf("%s/public/podcasts/%s.m4a", cfg.APIURL, show.PodcastID), podcast.M4A, 0)
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("add show %d to feed: %w", show.ID, err)
		}
	}

	return p.String(), nil
}
