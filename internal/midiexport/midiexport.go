// Package midiexport renders a built chart's note stream to a Standard
// MIDI File, the way a player wanting to preview a chart on a synth
// rather than a sampler would consume it.
package midiexport

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/chart"
)

// ticksPerQuarter is the SMF resolution every exported file uses; it is
// independent of any chart's own pulse resolution (internal/chart already
// flattens tracks into absolute seconds before this package sees them).
const ticksPerQuarter = 960

// baseNote is the MIDI note number lane 0 maps to; each lane's Index
// shifts up chromatically from there so a chart's lanes never collide
// on a single note number regardless of the play style's key count.
const baseNote = 36

// Options configures how a chart's lanes and tempo map onto MIDI.
type Options struct {
	// Channel is the MIDI channel every note is written to (0-15).
	Channel uint8
	// Tempo is the fixed BPM used to convert the chart's absolute
	// TimeSeconds into SMF ticks. A chart's own mid-song BPM/stop
	// changes already collapsed into TimeSeconds by internal/chart, so
	// this is purely the wall-clock-to-ticks conversion factor, not a
	// second application of the chart's tempo map.
	Tempo bmstime.Decimal
}

// DefaultOptions returns Options seeded from the chart's initial tempo.
func DefaultOptions(initialBPM bmstime.Decimal) Options {
	return Options{Channel: 0, Tempo: initialBPM}
}

// Export writes events as a single-track Standard MIDI File to w.
func Export(w io.Writer, events []chart.ChartEvent, opts Options) error {
	if !opts.Tempo.IsPositive() {
		return fmt.Errorf("midiexport: tempo must be positive")
	}
	bpm := opts.Tempo.Float64()
	ticksPerSecond := ticksPerQuarter * bpm / 60

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))

	lastTick := int64(0)
	for _, ev := range events {
		note, ok := noteFor(ev)
		if !ok {
			continue
		}
		tick := int64(ev.TimeSeconds * ticksPerSecond)
		delta := tick - lastTick
		if delta < 0 {
			delta = 0
		}
		lastTick = tick

		switch ev.Kind {
		case chart.EventNoteVisible, chart.EventNoteInvisible, chart.EventNoteLNStart, chart.EventBGM:
			tr.Add(uint32(delta), midi.NoteOn(opts.Channel, note, 100))
		case chart.EventNoteLNEnd:
			tr.Add(uint32(delta), midi.NoteOff(opts.Channel, note))
		case chart.EventNoteMine:
			tr.Add(uint32(delta), midi.NoteOn(opts.Channel, note, 127))
			tr.Add(0, midi.NoteOff(opts.Channel, note))
		}
	}
	tr.Close(0)
	s.Add(tr)

	_, err := s.WriteTo(w)
	if err != nil {
		return fmt.Errorf("midiexport: write: %w", err)
	}
	return nil
}

// noteFor derives a MIDI note number for a playable event. BGA/option/
// judge/arranger events carry no lane and are skipped; BGM events have
// no lane either, so every BGM sample is folded onto baseNote itself.
func noteFor(ev chart.ChartEvent) (uint8, bool) {
	switch ev.Kind {
	case chart.EventNoteVisible, chart.EventNoteInvisible, chart.EventNoteLNStart, chart.EventNoteLNEnd, chart.EventNoteMine:
		n := baseNote + int(ev.Lane.Side)*16 + ev.Lane.Index
		if n < 0 {
			n = 0
		}
		if n > 127 {
			n = 127
		}
		return uint8(n), true
	case chart.EventBGM:
		return baseNote, true
	default:
		return 0, false
	}
}
