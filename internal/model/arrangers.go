package model

import (
	"fmt"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// Arrangers holds every time-varying playback parameter the chart
// builder consumes: BPM, scroll, speed, and the per-track section length
// override table (spec.md §3 "Arrangers").
type Arrangers struct {
	InitialBPM    bmstime.Decimal
	BPMDefs       map[objid.ObjId]bmstime.Decimal // #BPMxx extended BPM defs
	BPMChanges    map[bmstime.ObjTime]bmstime.Decimal
	ScrollDefs    map[objid.ObjId]bmstime.Decimal
	ScrollChanges map[bmstime.ObjTime]bmstime.Decimal
	SpeedDefs     map[objid.ObjId]bmstime.Decimal
	SpeedChanges  map[bmstime.ObjTime]bmstime.Decimal
	SectionLens   map[bmstime.Track]bmstime.SectionLen
}

func newArrangers() Arrangers {
	return Arrangers{
		InitialBPM:    bmstime.MustParseDecimal("130"),
		BPMDefs:       make(map[objid.ObjId]bmstime.Decimal),
		BPMChanges:    make(map[bmstime.ObjTime]bmstime.Decimal),
		ScrollDefs:    make(map[objid.ObjId]bmstime.Decimal),
		ScrollChanges: make(map[bmstime.ObjTime]bmstime.Decimal),
		SpeedDefs:     make(map[objid.ObjId]bmstime.Decimal),
		SpeedChanges:  make(map[bmstime.ObjTime]bmstime.Decimal),
		SectionLens:   make(map[bmstime.Track]bmstime.SectionLen),
	}
}

// InsertBPMChange reconciles a BPM-change event through p.
func (a *Arrangers) InsertBPMChange(p prompt.Prompter, t bmstime.ObjTime, v bmstime.Decimal) (warnings []diag.Warning, errs []diag.Error) {
	return insertDecimalEvent(a.BPMChanges, p, prompt.ChannelBPMChange, "bpm change", t, v)
}

// InsertScrollChange reconciles a SCROLL event through p.
func (a *Arrangers) InsertScrollChange(p prompt.Prompter, t bmstime.ObjTime, v bmstime.Decimal) (warnings []diag.Warning, errs []diag.Error) {
	return insertDecimalEvent(a.ScrollChanges, p, prompt.ChannelScroll, "scroll change", t, v)
}

// InsertSpeedChange reconciles a SPEED event through p.
func (a *Arrangers) InsertSpeedChange(p prompt.Prompter, t bmstime.ObjTime, v bmstime.Decimal) (warnings []diag.Warning, errs []diag.Error) {
	return insertDecimalEvent(a.SpeedChanges, p, prompt.ChannelSpeed, "speed change", t, v)
}

// InsertSectionLen sets track's section length, reconciling a repeat
// declaration through p. v must already be validated positive by the
// caller (bmstime.NewSectionLen enforces this).
func (a *Arrangers) InsertSectionLen(p prompt.Prompter, track bmstime.Track, v bmstime.SectionLen) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := a.SectionLens[track]
	if !collided {
		a.SectionLens[track] = v
		return nil, nil
	}
	res := p.HandleTrackDuplication(prompt.TrackSectionLen, track.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{},
			"duplicate section length for track %s (kept %v)", track, res))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{},
			"prompter rejected duplicate section length for track %s", track))
		return warnings, errs
	}
	if res.KeepsNewer() {
		a.SectionLens[track] = v
	} else {
		a.SectionLens[track] = existing
	}
	return warnings, errs
}

// insertDecimalEvent is the shared duplicate-reconciliation shape for
// the three ObjTime-keyed Decimal event tables Arrangers owns.
func insertDecimalEvent(table map[bmstime.ObjTime]bmstime.Decimal, p prompt.Prompter, kind prompt.ChannelKind, label string, t bmstime.ObjTime, v bmstime.Decimal) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := table[t]
	if !collided {
		table[t] = v
		return nil, nil
	}
	res := p.HandleChannelDuplication(kind, fmt.Sprint(t))
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{},
			"duplicate %s at %s (kept %v)", label, t, res))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{},
			"prompter rejected duplicate %s at %s", label, t))
		return warnings, errs
	}
	if res.KeepsNewer() {
		table[t] = v
	} else {
		table[t] = existing
	}
	return warnings, errs
}
