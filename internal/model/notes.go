package model

import (
	"fmt"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// NoteKind distinguishes the playable-object families a note channel can
// carry (spec.md §3 "Notes").
type NoteKind int

const (
	NoteVisible NoteKind = iota
	NoteInvisible
	NoteLNStart
	NoteLNEnd
	NoteMine
)

// PlayerSide distinguishes 1P/2P lanes for double-play charts.
type PlayerSide int

const (
	Player1 PlayerSide = iota
	Player2
)

// Lane is a logical key position after KeyLayoutMapper has resolved the
// channel's raw lane digit to a game-style-specific key index; Index is
// 0 for the turntable/scratch lane in styles that have one.
type Lane struct {
	Side  PlayerSide
	Index int
}

// NoteEvent is a single playable object at a given time and lane.
type NoteEvent struct {
	ID   objid.ObjId
	Kind NoteKind
}

// LNSpan is a paired long-note region: a NoteLNStart matched with the
// next NoteLNEnd in the same lane (spec.md §3 invariant 3, well-nesting).
type LNSpan struct {
	Start, End bmstime.ObjTime
	ID         objid.ObjId
}

// Notes holds every note-channel event, keyed by time then lane, plus
// the BGM channel (several ids may sound at the same instant, so it is a
// list rather than a single slot) and the long-note pairing state built
// up as NoteLNStart/NoteLNEnd events arrive.
type Notes struct {
	Events    map[bmstime.ObjTime]map[Lane]NoteEvent
	LongNotes map[Lane][]LNSpan
	BgmEvents map[bmstime.ObjTime][]objid.ObjId

	openLN map[Lane]bmstime.ObjTime
}

func newNotes() Notes {
	return Notes{
		Events:    make(map[bmstime.ObjTime]map[Lane]NoteEvent),
		LongNotes: make(map[Lane][]LNSpan),
		BgmEvents: make(map[bmstime.ObjTime][]objid.ObjId),
		openLN:    make(map[Lane]bmstime.ObjTime),
	}
}

// PushBgm appends an id to the BGM channel at t; BGM never collides
// since multiple simultaneous samples are the normal case.
func (n *Notes) PushBgm(t bmstime.ObjTime, id objid.ObjId) {
	n.BgmEvents[t] = append(n.BgmEvents[t], id)
}

// Insert places a note/invisible/mine/LN event at (t, lane), pairing
// NoteLNStart/NoteLNEnd and reconciling plain duplicates through p.
// NoteLNStart/NoteLNEnd never collide with the plain-event table; they
// are tracked separately via openLN.
func (n *Notes) Insert(p prompt.Prompter, t bmstime.ObjTime, lane Lane, ev NoteEvent) (warnings []diag.Warning, errs []diag.Error) {
	switch ev.Kind {
	case NoteLNStart:
		if _, open := n.openLN[lane]; open {
			errs = append(errs, diag.NewError(diag.InvariantViolation, diag.Range{},
				"long note started again in the same lane before the previous one ended at %s", t))
			return warnings, errs
		}
		n.openLN[lane] = t
		return nil, nil

	case NoteLNEnd:
		start, open := n.openLN[lane]
		if !open {
			errs = append(errs, diag.NewError(diag.InvariantViolation, diag.Range{},
				"long note ended at %s with no matching start in its lane", t))
			return warnings, errs
		}
		delete(n.openLN, lane)
		n.LongNotes[lane] = append(n.LongNotes[lane], LNSpan{Start: start, End: t, ID: ev.ID})
		return nil, nil
	}

	if n.Events[t] == nil {
		n.Events[t] = make(map[Lane]NoteEvent)
	}
	existing, collided := n.Events[t][lane]
	if !collided {
		n.Events[t][lane] = ev
		return nil, nil
	}

	res := p.HandleChannelDuplication(prompt.ChannelNote, fmt.Sprintf("%s/lane %d.%d", t, lane.Side, lane.Index))
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{},
			"duplicate note event at %s in lane %d.%d (kept %v)", t, lane.Side, lane.Index, res))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{},
			"prompter rejected duplicate note event at %s in lane %d.%d", t, lane.Side, lane.Index))
		return warnings, errs
	}
	if res.KeepsNewer() {
		n.Events[t][lane] = ev
	} else {
		n.Events[t][lane] = existing
	}
	return warnings, errs
}

// Finalize reports any long note left open at end-of-parse as an
// invariant violation (spec.md §3 invariant 3).
func (n *Notes) Finalize() []diag.Error {
	var errs []diag.Error
	for lane, start := range n.openLN {
		errs = append(errs, diag.NewError(diag.InvariantViolation, diag.Range{},
			"long note started at %s in lane %d.%d was never closed", start, lane.Side, lane.Index))
	}
	return errs
}
