package status

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Stage is the lifecycle stage of a webradio show.
type Stage int

const (
	StageDraft Stage = iota
	StageWaiting
	StageLive
	StageWaitingPodcast
	StagePublished
)

func (s Stage) String() string {
	switch s {
	case StageDraft:
		return "draft"
	case StageWaiting:
		return "waiting"
	case StageLive:
		return "live"
	case StageWaitingPodcast:
		return "waiting-podcast"
	case StagePublished:
		return "published"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ShowStatus is the status of a webradio show: a lifecycle stage plus the
// stream/restream variant. Restream only exists for the draft, waiting and
// live stages. The pair is stored and transmitted as the historical numeric
// code (-2, -2.5, -1, -1.5, 0, 0.5, 1, 2).
type ShowStatus struct {
	Stage    Stage
	Restream bool
}

var (
	ShowDraft           = ShowStatus{Stage: StageDraft}
	ShowDraftRestream   = ShowStatus{Stage: StageDraft, Restream: true}
	ShowWaiting         = ShowStatus{Stage: StageWaiting}
	ShowWaitingRestream = ShowStatus{Stage: StageWaiting, Restream: true}
	ShowLive            = ShowStatus{Stage: StageLive}
	ShowLiveRestream    = ShowStatus{Stage: StageLive, Restream: true}
	ShowWaitingPodcast  = ShowStatus{Stage: StageWaitingPodcast}
	ShowPublished       = ShowStatus{Stage: StagePublished}
)

var showCodes = map[ShowStatus]float64{
	ShowDraft:           -2,
	ShowDraftRestream:   -2.5,
	ShowWaiting:         -1,
	ShowWaitingRestream: -1.5,
	ShowLive:            0,
	ShowLiveRestream:    0.5,
	ShowWaitingPodcast:  1,
	ShowPublished:       2,
}

var showByCode = func() map[float64]ShowStatus {
	m := make(map[float64]ShowStatus, len(showCodes))
	for s, c := range showCodes {
		m[c] = s
	}
	return m
}()

// Code returns the numeric wire/storage code for the status.
func (s ShowStatus) Code() float64 {
	return showCodes[s]
}

// Valid reports whether the stage/variant pair is one of the eight
// enumerated show statuses.
func (s ShowStatus) Valid() bool {
	_, ok := showCodes[s]
	return ok
}

// LiveFamily reports whether the show occupies the broadcast slot: waiting
// for broadcast or on air, in either variant (codes -1, -1.5, 0, 0.5). At
// most one show may hold such a status at a time.
func (s ShowStatus) LiveFamily() bool {
	return s.Stage == StageWaiting || s.Stage == StageLive
}

// OnAir reports whether the show is actually broadcasting (codes 0 and 0.5).
func (s ShowStatus) OnAir() bool {
	return s.Stage == StageLive
}

// Public reports whether the show is visible without credentials.
func (s ShowStatus) Public() bool {
	if s.Restream {
		return false
	}
	return s.Stage == StageWaiting || s.Stage == StageLive || s.Stage == StagePublished
}

func (s ShowStatus) String() string {
	if s.Restream {
		return s.Stage.String() + "-restream"
	}
	return s.Stage.String()
}

// ParseShowStatus maps a numeric code to its status.
func ParseShowStatus(code float64) (ShowStatus, error) {
	s, ok := showByCode[code]
	if !ok {
		return ShowStatus{}, fmt.Errorf("invalid show status %v", code)
	}
	return s, nil
}

// MarshalJSON emits the numeric code so API clients keep seeing the
// historical representation.
func (s ShowStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid show status %+v", s)
	}
	return strconv.AppendFloat(nil, s.Code(), 'f', -1, 64), nil
}

func (s *ShowStatus) UnmarshalJSON(b []byte) error {
	code, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("show status must be a number: %w", err)
	}
	parsed, err := ParseShowStatus(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer; the status is stored as a numeric column.
func (s ShowStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid show status %+v", s)
	}
	return s.Code(), nil
}

// Scan implements sql.Scanner. lib/pq hands back float64 for double
// precision columns and []byte for numeric ones.
func (s *ShowStatus) Scan(src any) error {
	var code float64
	switch v := src.(type) {
	case float64:
		code = v
	case int64:
		code = float64(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("scan show status: %w", err)
		}
		code = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("scan show status: %w", err)
		}
		code = f
	default:
		return fmt.Errorf("scan show status: unsupported type %T", src)
	}
	parsed, err := ParseShowStatus(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
