package bmson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

const sampleDocument = `{
  "version": "1.0.0",
  "info": {
    "title": "Sample",
    "init_bpm": 120,
    "resolution": 240
  },
  "lines": [{"y": 0}, {"y": 960}, {"y": 1920}],
  "bpm_events": [{"y": 960, "bpm": 240}],
  "stop_events": [{"y": 0, "duration": 240}],
  "sound_channels": [
    {
      "name": "kick.wav",
      "notes": [
        {"x": 1, "y": 0, "l": 0, "c": false},
        {"x": 2, "y": 480, "l": 240, "c": false},
        {"x": 0, "y": 960, "l": 0, "c": false}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, "Sample", doc.Info.Title)
	assert.Equal(t, 240, doc.Info.Resolution)
	assert.Len(t, doc.SoundChannels, 1)
	assert.Len(t, doc.SoundChannels[0].Notes, 3)
}

func TestToModelBuildsNotesAndBgm(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	m, warnings, errs := ToModel(doc, prompt.PanicAndUseNewer{})
	require.Empty(t, errs)
	_ = warnings

	assert.Equal(t, bmstime.MustParseDecimal("120"), m.Arrangers.InitialBPM)
	assert.Len(t, m.Arrangers.BPMChanges, 1)

	lane1 := model.Lane{Side: model.Player1, Index: 1}
	lane2 := model.Lane{Side: model.Player1, Index: 2}
	track0 := m.Notes.Events[bmstime.NewObjTime(bmstime.Track(0), 0, 960)]
	require.Contains(t, track0, lane1)
	assert.Equal(t, model.NoteVisible, track0[lane1].Kind)

	require.Len(t, m.Notes.LongNotes[lane2], 1)
	span := m.Notes.LongNotes[lane2][0]
	assert.True(t, span.Start.Less(span.End))

	require.Len(t, m.Notes.BgmEvents, 1)
}

func TestToModelRecordsStopAtItsPulse(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	m, _, errs := ToModel(doc, prompt.PanicAndUseNewer{})
	require.Empty(t, errs)

	stopAt := bmstime.NewObjTime(bmstime.Track(0), 0, 960)
	require.Contains(t, m.Stops.Stops, stopAt)
	assert.True(t, m.Stops.Stops[stopAt].Duration.IsPositive())
}

func TestChannelIDNeverProducesNull(t *testing.T) {
	assert.False(t, channelID(0).IsNull())
}
