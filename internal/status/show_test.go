package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowStatusCodes(t *testing.T) {
	cases := []struct {
		status ShowStatus
		code   float64
	}{
		{ShowDraft, -2},
		{ShowDraftRestream, -2.5},
		{ShowWaiting, -1},
		{ShowWaitingRestream, -1.5},
		{ShowLive, 0},
		{ShowLiveRestream, 0.5},
		{ShowWaitingPodcast, 1},
		{ShowPublished, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, c.status.Code(), c.status.String())
		parsed, err := ParseShowStatus(c.code)
		require.NoError(t, err)
		assert.Equal(t, c.status, parsed)
	}
}

func TestParseShowStatusRejectsUnknownCode(t *testing.T) {
	_, err := ParseShowStatus(3)
	assert.Error(t, err)

	_, err = ParseShowStatus(1.5)
	assert.Error(t, err)
}

func TestShowStatusValid(t *testing.T) {
	assert.True(t, ShowLiveRestream.Valid())
	// Restream does not exist past the live stage.
	assert.False(t, ShowStatus{Stage: StagePublished, Restream: true}.Valid())
	assert.False(t, ShowStatus{Stage: StageWaitingPodcast, Restream: true}.Valid())
}

func TestShowStatusLiveFamily(t *testing.T) {
	assert.True(t, ShowWaiting.LiveFamily())
	assert.True(t, ShowWaitingRestream.LiveFamily())
	assert.True(t, ShowLive.LiveFamily())
	assert.True(t, ShowLiveRestream.LiveFamily())

	assert.False(t, ShowDraft.LiveFamily())
	assert.False(t, ShowWaitingPodcast.LiveFamily())
	assert.False(t, ShowPublished.LiveFamily())
}

func TestShowStatusOnAir(t *testing.T) {
	assert.True(t, ShowLive.OnAir())
	assert.True(t, ShowLiveRestream.OnAir())
	assert.False(t, ShowWaiting.OnAir())
	assert.False(t, ShowPublished.OnAir())
}

func TestShowStatusPublic(t *testing.T) {
	assert.True(t, ShowWaiting.Public())
	assert.True(t, ShowLive.Public())
	assert.True(t, ShowPublished.Public())

	// Restream shows are staff-only until published.
	assert.False(t, ShowWaitingRestream.Public())
	assert.False(t, ShowLiveRestream.Public())
	assert.False(t, ShowDraft.Public())
	assert.False(t, ShowWaitingPodcast.Public())
}

func TestShowStatusJSON(t *testing.T) {
	b, err := json.Marshal(ShowLiveRestream)
	require.NoError(t, err)
	assert.Equal(t, "0.5", string(b))

	b, err = json.Marshal(ShowPublished)
	require.NoError(t, err)
	assert.Equal(t, "2", string(b))

	var s ShowStatus
	require.NoError(t, json.Unmarshal([]byte("-1.5"), &s))
	assert.Equal(t, ShowWaitingRestream, s)

	assert.Error(t, json.Unmarshal([]byte(`"live"`), &s))
	assert.Error(t, json.Unmarshal([]byte("42"), &s))
}

func TestShowStatusScan(t *testing.T) {
	var s ShowStatus
	require.NoError(t, s.Scan(float64(-2.5)))
	assert.Equal(t, ShowDraftRestream, s)

	require.NoError(t, s.Scan(int64(2)))
	assert.Equal(t, ShowPublished, s)

	require.NoError(t, s.Scan([]byte("0.5")))
	assert.Equal(t, ShowLiveRestream, s)

	assert.Error(t, s.Scan("not-a-number"))
	assert.Error(t, s.Scan(true))
}

func TestShowStatusValue(t *testing.T) {
	v, err := ShowWaitingPodcast.Value()
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)

	_, err = ShowStatus{Stage: StagePublished, Restream: true}.Value()
	assert.Error(t, err)
}
