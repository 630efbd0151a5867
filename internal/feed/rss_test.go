package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

func TestGenerateRSS(t *testing.T) {
	cfg := Config{
		Title:       "Le JDL - Webradio",
		Description: "Les émissions de la webradio du JDL",
		SiteURL:     "https://lejdl.example.org",
		APIURL:      "https://api.example.org",
	}

	shows := []models.WebradioShow{
		{
			ID:          3,
			Title:       "Émission de mars",
			Description: "Au programme ce mois-ci",
			Thumbnail:   "mars.webp",
			PodcastID:   "mars-2025",
			Date:        1741940000,
			Status:      status.ShowPublished,
		},
		{
			ID:          2,
			Title:       "Émission de février",
			Description: "Le direct de février",
			Thumbnail:   "fevrier.webp",
			Date:        1739000000,
			Status:      status.ShowPublished,
		},
	}

	out, err := GenerateRSS(cfg, shows)
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Le JDL - Webradio</title>")
	assert.Contains(t, out, "<language>fr</language>")
	assert.Contains(t, out, "Émission de mars")
	assert.Contains(t, out, "https://lejdl.example.org/webradio/3")
	assert.Contains(t, out, "https://api.example.org/public/podcasts/mars-2025.m4a")

	// A show without a recording still appears, without an enclosure.
	assert.Contains(t, out, "Émission de février")
	assert.Equal(t, 1, strings.Count(out, "<enclosure"))
}

func TestGenerateRSSEmpty(t *testing.T) {
	out, err := GenerateRSS(Config{Title: "Le JDL - Webradio", SiteURL: "https://lejdl.example.org"}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "<rss")
}
