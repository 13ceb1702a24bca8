// Package chart converts a finished model.Model into a time-ordered
// event stream (spec.md §4.5 "Chart Builder"). The model is read-only by
// the time Build runs; nothing here mutates it.
package chart

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

// EventKind tags which model aggregate a ChartEvent came from.
type EventKind int

const (
	EventNoteVisible EventKind = iota
	EventNoteInvisible
	EventNoteLNStart
	EventNoteLNEnd
	EventNoteMine
	EventBGM
	EventBGABase
	EventBGALayer
	EventBGAPoor
	EventBPMChange
	EventStop
	EventStpStop
	EventScrollChange
	EventSpeedChange
	EventText
	EventOption
	EventJudgeChange
	EventSeek
)

// ChartEvent is a single timeline entry (spec.md §4.5 item 5). ID and
// Lane are populated only for the kinds that carry them; Value carries
// the BPM/scroll/speed/stop-duration payload for kinds that change a
// running parameter rather than placing a note.
type ChartEvent struct {
	TimeSeconds float64
	YCoordinate float64
	Kind        EventKind
	Track       bmstime.Track
	At          bmstime.ObjTime

	ID    objid.ObjId
	Lane  model.Lane
	Value bmstime.Decimal
}

// VisibleWindowY returns the y-unit size of the visible scroll window at
// the given BPM (spec.md §4.5 item 5: current_bpm / 120 * 0.6).
func VisibleWindowY(bpm bmstime.Decimal) float64 {
	return bpm.Float64() / 120 * 0.6
}
