// Package model holds the BMS chart model: the semantic aggregates the
// processor pipeline writes into and the chart builder later reads from
// (spec.md §3). The model is created empty and is mutated only by
// processors; once processing completes it is treated as read-only.
package model

import (
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// Model is the single shared mutable aggregate every processor writes
// into during a parse (spec.md §5: single exclusive mutable reference,
// no locking needed since only one processor runs at a time).
type Model struct {
	Header         Header
	MusicInfo      MusicInfo
	Representation Representation
	Wav            WavObjects
	Bmp            BmpObjects
	Notes          Notes
	Arrangers      Arrangers
	Resources      Resources
	Sprites        Sprites
	Video          Video
	Options        OptionObjects
	Texts          TextObjects
	Judge          JudgeObjects
	Stops          StopObjects
	Volume         Volume

	trackZeroCount int
	wavRawIDs      map[objid.ObjId]string
	bmpRawIDs      map[objid.ObjId]string
}

// New returns an empty model ready for the processor pipeline.
func New() *Model {
	return &Model{
		Wav:       newWavObjects(),
		Bmp:       newBmpObjects(),
		Notes:     newNotes(),
		Arrangers: newArrangers(),
		Video:     newVideo(),
		Options:   newOptionObjects(),
		Texts:     newTextObjects(),
		Judge:     newJudgeObjects(),
		Stops:     newStopObjects(),
		Volume:    newVolume(),
		wavRawIDs: make(map[objid.ObjId]string),
		bmpRawIDs: make(map[objid.ObjId]string),
	}
}

// NoteTrackZero records one occurrence of Track(0) in the source, to be
// folded into a single summary warning at Finalize (SPEC_FULL.md §E.3).
func (m *Model) NoteTrackZero() { m.trackZeroCount++ }

// InsertWav reconciles a #WAVxx/#EXWAVxx definition through p. raw is the
// identifier exactly as it appeared in the source (before case folding),
// kept so a late #BASE 62 can be resolved at Finalize.
func (m *Model) InsertWav(p prompt.Prompter, id objid.ObjId, raw, path string) (warnings []diag.Warning, errs []diag.Error) {
	if _, seen := m.wavRawIDs[id]; !seen {
		m.wavRawIDs[id] = raw
	}
	existing, collided := m.Wav.Defs[id]
	if !collided {
		m.Wav.Defs[id] = path
		return nil, nil
	}
	res := p.HandleDefDuplication(prompt.DefWav, id.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateDefinition, 0, 0, diag.Range{}, "duplicate WAV definition %s (kept %v)", id, res))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate WAV definition %s", id))
		return warnings, errs
	}
	if res.KeepsNewer() {
		m.Wav.Defs[id] = path
	} else {
		m.Wav.Defs[id] = existing
	}
	return warnings, errs
}

// InsertBmp reconciles a #BMPxx definition through p, mirroring InsertWav.
func (m *Model) InsertBmp(p prompt.Prompter, id objid.ObjId, raw, path string) (warnings []diag.Warning, errs []diag.Error) {
	if _, seen := m.bmpRawIDs[id]; !seen {
		m.bmpRawIDs[id] = raw
	}
	existing, collided := m.Bmp.Defs[id]
	if !collided {
		m.Bmp.Defs[id] = path
		return nil, nil
	}
	res := p.HandleDefDuplication(prompt.DefBmp, id.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateDefinition, 0, 0, diag.Range{}, "duplicate BMP definition %s (kept %v)", id, res))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate BMP definition %s", id))
		return warnings, errs
	}
	if res.KeepsNewer() {
		m.Bmp.Defs[id] = path
	} else {
		m.Bmp.Defs[id] = existing
	}
	return warnings, errs
}

// Finalize runs the end-of-parse passes that cannot happen incrementally:
// closing out the long-note invariant, re-keying WAV/BMP ids for a late
// #BASE 62 declaration, and folding every Track(0) occurrence into one
// warning (SPEC_FULL.md §E).
func (m *Model) Finalize() (warnings []diag.Warning, errs []diag.Error) {
	errs = append(errs, m.Notes.Finalize()...)

	if m.Representation.CaseSensitive {
		warnings = append(warnings, rekeyForBase62(&m.Wav.Defs, m.wavRawIDs)...)
		warnings = append(warnings, rekeyForBase62(&m.Bmp.Defs, m.bmpRawIDs)...)
	}

	if m.trackZeroCount > 0 {
		warnings = append(warnings, diag.New(diag.TrackZeroUsed, 0, 0, diag.Range{},
			"track 0 used %d time(s) in this chart", m.trackZeroCount))
	}
	return warnings, errs
}

// rekeyForBase62 re-resolves every definition whose raw source text was
// recorded in raw under case-sensitive rules, moving it to its new key
// when that differs from the case-insensitively folded key it was
// originally inserted under. A collision between a re-keyed entry and
// one already at the target key is reported as RekeyCollision and the
// existing entry wins.
func rekeyForBase62(defs *map[objid.ObjId]string, raw map[objid.ObjId]string) []diag.Warning {
	var warnings []diag.Warning
	type move struct {
		from, to objid.ObjId
		value    string
	}
	var moves []move
	for foldedID, rawText := range raw {
		sensitiveID, err := objid.Parse(rawText, true)
		if err != nil || sensitiveID == foldedID {
			continue
		}
		value, ok := (*defs)[foldedID]
		if !ok {
			continue
		}
		moves = append(moves, move{from: foldedID, to: sensitiveID, value: value})
	}
	for _, mv := range moves {
		if existing, collides := (*defs)[mv.to]; collides && existing != mv.value {
			warnings = append(warnings, diag.New(diag.RekeyCollision, 0, 0, diag.Range{},
				"re-keying %s to case-sensitive id %s collided with an existing definition", mv.from, mv.to))
			delete(*defs, mv.from)
			continue
		}
		delete(*defs, mv.from)
		(*defs)[mv.to] = mv.value
	}
	return warnings
}
