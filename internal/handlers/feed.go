package handlers

import (
	"log"
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/feed"
)

// GetPodcastFeed serves the public RSS feed of published shows.
func (h *Handlers) GetPodcastFeed(w http.ResponseWriter, r *http.Request) {
	shows, err := db.GetPublishedShows()
	if err != nil {
		RespondError(w, apierr.Storage(err))
		return
	}

	rss, err := feed.GenerateRSS(h.feedCfg, shows)
	if err != nil {
		log.Printf("Error generating podcast feed: %v", err)
		RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}

// ServeWS hands the connection to the realtime hub.
func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
