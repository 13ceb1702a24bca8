package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

func mustID(t *testing.T, s string) objid.ObjId {
	t.Helper()
	id, err := objid.Parse(s, false)
	require.NoError(t, err)
	return id
}

func TestBuildOrdersEventsByTime(t *testing.T) {
	m := model.New()
	m.Arrangers.InitialBPM = bmstime.MustParseDecimal("120")
	lane := model.Lane{Side: model.Player1, Index: 1}
	_, _ = m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(bmstime.Track(1), 0, 4), lane,
		model.NoteEvent{ID: mustID(t, "01"), Kind: model.NoteVisible})
	_, _ = m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(bmstime.Track(1), 2, 4), lane,
		model.NoteEvent{ID: mustID(t, "02"), Kind: model.NoteVisible})
	_, _ = m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(bmstime.Track(2), 0, 4), lane,
		model.NoteEvent{ID: mustID(t, "03"), Kind: model.NoteVisible})

	events := Build(m)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].TimeSeconds, events[i].TimeSeconds)
	}
	// at 120bpm, one full track (4 beats) takes 2 seconds; the halfway
	// note should land at 1 second, and track 2's note at 2 seconds.
	assert.InDelta(t, 0.0, events[0].TimeSeconds, 1e-9)
	assert.InDelta(t, 1.0, events[1].TimeSeconds, 1e-9)
	assert.InDelta(t, 2.0, events[2].TimeSeconds, 1e-9)
}

func TestBuildAppliesBPMChange(t *testing.T) {
	m := model.New()
	m.Arrangers.InitialBPM = bmstime.MustParseDecimal("120")
	lane := model.Lane{Side: model.Player1, Index: 1}
	// BPM doubles halfway through track 0; the note placed after the
	// change should reflect the faster tempo's shorter beat duration.
	m.Arrangers.BPMChanges[bmstime.NewObjTime(bmstime.Track(0), 2, 4)] = bmstime.MustParseDecimal("240")
	_, _ = m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(bmstime.Track(0), 3, 4), lane,
		model.NoteEvent{ID: mustID(t, "01"), Kind: model.NoteVisible})

	events := Build(m)
	require.Len(t, events, 2)
	// first 2 beats at 120bpm = 1s, next 1 beat at 240bpm = 0.25s.
	var noteTime float64
	for _, ev := range events {
		if ev.Kind == EventNoteVisible {
			noteTime = ev.TimeSeconds
		}
	}
	assert.InDelta(t, 1.25, noteTime, 1e-9)
}

func TestBuildAppliesStopWithoutAdvancingY(t *testing.T) {
	m := model.New()
	m.Arrangers.InitialBPM = bmstime.MustParseDecimal("120")
	stopAt := bmstime.NewObjTime(bmstime.Track(0), 0, 4)
	m.Stops.Stops[stopAt] = model.StopObj{Duration: bmstime.MustParseDecimal("4")}
	lane := model.Lane{Side: model.Player1, Index: 1}
	_, _ = m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(bmstime.Track(0), 1, 4), lane,
		model.NoteEvent{ID: mustID(t, "01"), Kind: model.NoteVisible})

	events := Build(m)
	var stopEvent, noteEvent ChartEvent
	for _, ev := range events {
		if ev.Kind == EventStop {
			stopEvent = ev
		}
		if ev.Kind == EventNoteVisible {
			noteEvent = ev
		}
	}
	// a 4-beat stop at 120bpm adds 2 seconds with no y movement; the note
	// one beat later (0.5s at 120bpm) picks up that 2-second offset.
	assert.InDelta(t, 0.0, stopEvent.YCoordinate, 1e-9)
	assert.InDelta(t, 2.5, noteEvent.TimeSeconds, 1e-9)
}

func TestVisibleWindowY(t *testing.T) {
	assert.InDelta(t, 0.6, VisibleWindowY(bmstime.MustParseDecimal("120")), 1e-9)
	assert.InDelta(t, 1.2, VisibleWindowY(bmstime.MustParseDecimal("240")), 1e-9)
}
