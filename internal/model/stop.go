package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/objid"
)

// StopObj is a resolved #09 channel event: a pause of Duration beats
// at the full-speed tempo in effect when the stop is reached.
type StopObj struct {
	Duration bmstime.Decimal
}

// StopObjects holds #STOPxx definitions and their channel events, plus
// the bemaniDX #STP absolute-time stop extension (spec.md §4.3 item 6;
// field names per SPEC_FULL.md §C, grounded in
// original_source/src/bms/model/stop.rs's push_stop merge behavior).
type StopObjects struct {
	StopDefs map[objid.ObjId]bmstime.Decimal
	Stops    map[bmstime.ObjTime]StopObj

	// StopIdsUsed records every ObjId actually referenced by a #09
	// channel event, so an end-of-parse pass can warn about unused
	// #STOPxx definitions without a second scan of the token stream.
	StopIdsUsed map[objid.ObjId]bool

	// StpEvents is the #STP extension: an absolute-time stop (measured
	// in milliseconds, per bemaniDX) that is not tied to any ObjId.
	StpEvents map[bmstime.ObjTime]bmstime.Decimal
}

func newStopObjects() StopObjects {
	return StopObjects{
		StopDefs:    make(map[objid.ObjId]bmstime.Decimal),
		Stops:       make(map[bmstime.ObjTime]StopObj),
		StopIdsUsed: make(map[objid.ObjId]bool),
		StpEvents:   make(map[bmstime.ObjTime]bmstime.Decimal),
	}
}

// InsertStop merges a stop's duration into any stop already recorded at
// t, matching the original's and_modify-style accumulation rather than
// the Prompter-mediated replace-or-keep policy used elsewhere: two
// #09 events at the same instant are additive pauses, not competing
// definitions of the same slot.
func (s *StopObjects) InsertStop(t bmstime.ObjTime, id objid.ObjId, duration bmstime.Decimal) {
	s.StopIdsUsed[id] = true
	existing, ok := s.Stops[t]
	if !ok {
		s.Stops[t] = StopObj{Duration: duration}
		return
	}
	s.Stops[t] = StopObj{Duration: existing.Duration.Add(duration)}
}
