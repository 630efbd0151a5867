package workflow

import (
	"time"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
)

// PublicationDate returns the date an article or video should carry after a
// status change. Crossing from pending-authorization into published restamps
// the date to now, so sort-by-date reflects publication order; every other
// transition keeps the stored date.
func PublicationDate(old, next status.ContentStatus, date int64, now time.Time) int64 {
	if old == status.ContentPending && next == status.ContentPublished {
		return now.Unix()
	}
	return date
}

// ValidateShowWrite rejects show states that must not be persisted: a show
// cannot go on air without a stream source, and a published show needs the
// stream reference its podcast page links to.
func ValidateShowWrite(show models.WebradioShow) error {
	if !show.Status.Valid() {
		return apierr.Validationf("invalid parameters")
	}
	if show.Status.OnAir() && show.StreamID == "" {
		return apierr.Validationf("missing stream id")
	}
	if show.Status.Stage == status.StagePublished && show.StreamID == "" {
		return apierr.Validationf("missing stream id")
	}
	return nil
}

// ShowCrossing reports the realtime events a show status change triggers:
// wentLive when the show starts broadcasting, stopped when it leaves the
// air.
func ShowCrossing(old, next status.ShowStatus) (wentLive, stopped bool) {
	wentLive = !old.OnAir() && next.OnAir()
	stopped = old.OnAir() && !next.OnAir()
	return wentLive, stopped
}
