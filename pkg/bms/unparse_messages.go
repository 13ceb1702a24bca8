package bms

import (
	"sort"
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

// reverseLaneDigit inverts a Lane's key index back to its raw
// channel-code digit independently of which built-in KeyLayoutMapper
// produced it: every shipped layout (process.Beat7KLayout,
// process.Beat5KLayout, process.PopnLayout) agrees that index 0 is the
// turntable ('8') and index n>=1 is the digit '0'+n, so one reverse
// table covers all three without the model needing to remember which
// style parsed it.
func reverseLaneDigit(lane model.Lane) (byte, bool) {
	switch {
	case lane.Index == 0:
		return '8', true
	case lane.Index >= 1 && lane.Index <= 9:
		return byte('0' + lane.Index), true
	default:
		return 0, false
	}
}

// noteChannelCode returns the 2-character channel code for a note of
// the given kind/side/lane, the inverse of lex.ParseChannel's note
// branch.
func noteChannelCode(kind model.NoteKind, side model.PlayerSide, lane model.Lane) (string, bool) {
	digit, ok := reverseLaneDigit(lane)
	if !ok {
		return "", false
	}
	var class byte
	switch {
	case kind == model.NoteVisible && side == model.Player1:
		class = '1'
	case kind == model.NoteVisible && side == model.Player2:
		class = '2'
	case kind == model.NoteInvisible && side == model.Player1:
		class = '3'
	case kind == model.NoteInvisible && side == model.Player2:
		class = '6'
	case kind == model.NoteLNStart && side == model.Player1, kind == model.NoteLNEnd && side == model.Player1:
		class = '4'
	case kind == model.NoteLNStart && side == model.Player2, kind == model.NoteLNEnd && side == model.Player2:
		class = '5'
	case kind == model.NoteMine && side == model.Player1:
		class = 'D'
	case kind == model.NoteMine && side == model.Player2:
		class = 'E'
	default:
		return "", false
	}
	return string([]byte{class, digit}), true
}

// noteGroupKey buckets note events into the distinct channel codes they
// map back onto: one (lane, kind) pair per 1x/2x/3x/6x/Dx/Ex channel.
type noteGroupKey struct {
	lane model.Lane
	kind model.NoteKind
}

// resolvedRefs carries the id each Arrangers/Stops change event should
// reference, computed once up front so unparseHeaders (which must emit
// any synthesized def) and unparseMessages (which must emit the same
// id) agree with each other.
type resolvedRefs struct {
	bpm, scroll, speed, stop map[bmstime.ObjTime]objid.ObjId
	extraHeaders             []lex.Token
}

// resolveArrangerRefs matches every BPM/scroll/speed/stop change against
// its definition table by value, synthesizing a fresh id (and a def
// header to go with it) for any value with no matching definition. That
// gap is real: a BPM change can arrive via the raw hex channel (03)
// rather than an id reference (08), and the model keeps only the
// resolved value, so without this step such a change would silently
// vanish on Unparse instead of round-tripping.
func resolveArrangerRefs(m *model.Model) resolvedRefs {
	var r resolvedRefs
	var extra []lex.Token

	bpmRefs, bpmExtra := resolveDecimalRefs("BPM", m.Arrangers.BPMChanges, m.Arrangers.BPMDefs, m.Representation.CaseSensitive)
	r.bpm = bpmRefs
	extra = append(extra, bpmExtra...)

	scrollRefs, scrollExtra := resolveDecimalRefs("SCROLL", m.Arrangers.ScrollChanges, m.Arrangers.ScrollDefs, m.Representation.CaseSensitive)
	r.scroll = scrollRefs
	extra = append(extra, scrollExtra...)

	speedRefs, speedExtra := resolveDecimalRefs("SPEED", m.Arrangers.SpeedChanges, m.Arrangers.SpeedDefs, m.Representation.CaseSensitive)
	r.speed = speedRefs
	extra = append(extra, speedExtra...)

	stopDurations := make(map[bmstime.ObjTime]bmstime.Decimal, len(m.Stops.Stops))
	for t, obj := range m.Stops.Stops {
		stopDurations[t] = obj.Duration
	}
	stopRefs, stopExtra := resolveDecimalRefs("STOP", stopDurations, m.Stops.StopDefs, m.Representation.CaseSensitive)
	r.stop = stopRefs
	extra = append(extra, stopExtra...)

	r.extraHeaders = extra
	return r
}

// resolveDecimalRefs maps each event's value back onto a definition id,
// synthesizing one under keyword for any value defs doesn't already
// cover.
func resolveDecimalRefs(keyword string, events map[bmstime.ObjTime]bmstime.Decimal, defs map[objid.ObjId]bmstime.Decimal, caseSensitive bool) (map[bmstime.ObjTime]objid.ObjId, []lex.Token) {
	valueToID := make(map[string]objid.ObjId, len(defs))
	used := make(map[objid.ObjId]bool, len(defs))
	for id, d := range defs {
		valueToID[d.String()] = id
		used[id] = true
	}
	refs := make(map[bmstime.ObjTime]objid.ObjId, len(events))
	var extra []lex.Token
	for _, t := range sortedTimes(events) {
		v := events[t]
		key := v.String()
		id, ok := valueToID[key]
		if !ok {
			newID, allocated := nextFreeID(used, caseSensitive)
			if !allocated {
				continue
			}
			valueToID[key] = newID
			used[newID] = true
			id = newID
			extra = append(extra, headerID(keyword, id, key))
		}
		refs[t] = id
	}
	return refs, extra
}

// nextFreeID picks an unused id within the alphabet width the chart's
// case-sensitivity actually permits, so a synthesized id never renders
// as a lowercase letter a non-#BASE-62 chart couldn't parse back.
func nextFreeID(used map[objid.ObjId]bool, caseSensitive bool) (objid.ObjId, bool) {
	limit := 36
	if caseSensitive {
		limit = 62
	}
	for hi := 0; hi < limit; hi++ {
		for lo := 0; lo < limit; lo++ {
			id := objid.ObjId(hi*62 + lo)
			if id == objid.Null {
				continue
			}
			if !used[id] {
				return id, true
			}
		}
	}
	return 0, false
}

func unparseMessages(m *model.Model, refs resolvedRefs) []lex.Token {
	var toks []lex.Token

	grouped := make(map[noteGroupKey]map[bmstime.ObjTime]objid.ObjId)
	for t, byLane := range m.Notes.Events {
		for lane, ev := range byLane {
			key := noteGroupKey{lane, ev.Kind}
			if grouped[key] == nil {
				grouped[key] = make(map[bmstime.ObjTime]objid.ObjId)
			}
			grouped[key][t] = ev.ID
		}
	}
	for _, key := range sortedLaneKindKeys(grouped) {
		code, ok := noteChannelCode(key.kind, key.lane.Side, key.lane)
		if !ok {
			continue
		}
		toks = append(toks, buildRefMessages(code, grouped[key])...)
	}

	// Long notes: each LNSpan contributes a start and an end event on
	// the 4x/5x channel for its lane.
	lnEvents := make(map[bmstime.ObjTime]objid.ObjId)
	for lane, spans := range m.Notes.LongNotes {
		code, ok := noteChannelCode(model.NoteLNStart, lane.Side, lane)
		if !ok {
			continue
		}
		for _, span := range spans {
			lnEvents[span.Start] = span.ID
			lnEvents[span.End] = span.ID
		}
		toks = append(toks, buildRefMessages(code, lnEvents)...)
		for k := range lnEvents {
			delete(lnEvents, k)
		}
	}

	// BGM: possibly several simultaneous ids, so layer into as many
	// "01" message lines per track as the busiest instant needs.
	toks = append(toks, buildLayeredMessages("01", m.Notes.BgmEvents)...)

	// Arrangers.
	toks = append(toks, buildRefMessages("08", refs.bpm)...)
	toks = append(toks, buildRefMessages("SC", refs.scroll)...)
	toks = append(toks, buildRefMessages("SP", refs.speed)...)
	for _, track := range sortedTracksOf(m.Arrangers.SectionLens) {
		toks = append(toks, lex.Token{
			Kind:    lex.TokenMessage,
			Track:   track,
			Channel: mustChannel("02"),
			Message: m.Arrangers.SectionLens[track].String(),
		})
	}

	// Stops: reference StopDefs (or a synthesized def) by duration.
	toks = append(toks, buildRefMessages("09", refs.stop)...)

	// BGA layers.
	toks = append(toks, buildRefMessages("04", m.Bmp.BgaBaseEvents)...)
	toks = append(toks, buildRefMessages("07", m.Bmp.BgaLayerEvents)...)
	toks = append(toks, buildRefMessages("06", m.Bmp.PoorBgaEvents)...)

	// Seek / text / option / judge.
	toks = append(toks, buildRefMessages("05", seekIDs(m.Video.SeekEvents))...)
	toks = append(toks, buildRefMessages("99", textIDs(m.Texts.TextEvents))...)
	toks = append(toks, buildRefMessages("A6", optionIDs(m.Options.OptionEvents))...)
	toks = append(toks, buildRefMessages("A0", judgeIDs(m.Judge.JudgeEvents))...)

	// Volume: direct hex u8 values, no id indirection.
	toks = append(toks, buildHexMessages("97", m.Volume.BgmVolumeEvents)...)
	toks = append(toks, buildHexMessages("98", m.Volume.KeyVolumeEvents)...)

	return toks
}

func seekIDs(m map[bmstime.ObjTime]model.SeekObj) map[bmstime.ObjTime]objid.ObjId {
	out := make(map[bmstime.ObjTime]objid.ObjId, len(m))
	for t, v := range m {
		out[t] = v.ID
	}
	return out
}

func textIDs(m map[bmstime.ObjTime]model.TextObj) map[bmstime.ObjTime]objid.ObjId {
	out := make(map[bmstime.ObjTime]objid.ObjId, len(m))
	for t, v := range m {
		out[t] = v.ID
	}
	return out
}

func optionIDs(m map[bmstime.ObjTime]model.OptionObj) map[bmstime.ObjTime]objid.ObjId {
	out := make(map[bmstime.ObjTime]objid.ObjId, len(m))
	for t, v := range m {
		out[t] = v.ID
	}
	return out
}

func judgeIDs(m map[bmstime.ObjTime]model.JudgeObj) map[bmstime.ObjTime]objid.ObjId {
	out := make(map[bmstime.ObjTime]objid.ObjId, len(m))
	for t, v := range m {
		out[t] = v.ID
	}
	return out
}

func mustChannel(code string) lex.Channel {
	ch, _ := lex.ParseChannel(code)
	return ch
}

// buildRefMessages groups an ObjTime->ObjId map by track and emits one
// message line per track, at the coarsest resolution (LCM of the
// denominators actually used in that track) that can place every event
// exactly (spec.md §4.4 item 2's cell-position formula, inverted).
func buildRefMessages(code string, events map[bmstime.ObjTime]objid.ObjId) []lex.Token {
	byTrack := make(map[bmstime.Track]map[bmstime.ObjTime]string)
	for t, id := range events {
		if byTrack[t.Track] == nil {
			byTrack[t.Track] = make(map[bmstime.ObjTime]string)
		}
		byTrack[t.Track][t] = id.String()
	}
	return buildTrackMessages(code, byTrack)
}

// buildLayeredMessages handles channels (BGM) where several ids can
// legitimately land on the exact same instant: one message line per
// "layer", with layer 0 taking the first id at each instant, layer 1
// the second, and so on.
func buildLayeredMessages(code string, events map[bmstime.ObjTime][]objid.ObjId) []lex.Token {
	maxLayers := 0
	for _, ids := range events {
		if len(ids) > maxLayers {
			maxLayers = len(ids)
		}
	}
	var toks []lex.Token
	for layer := 0; layer < maxLayers; layer++ {
		layerEvents := make(map[bmstime.ObjTime]objid.ObjId)
		for t, ids := range events {
			if layer < len(ids) {
				layerEvents[t] = ids[layer]
			}
		}
		toks = append(toks, buildRefMessages(code, layerEvents)...)
	}
	return toks
}

func buildHexMessages(code string, events map[bmstime.ObjTime]uint8) []lex.Token {
	byTrack := make(map[bmstime.Track]map[bmstime.ObjTime]string)
	for t, v := range events {
		if byTrack[t.Track] == nil {
			byTrack[t.Track] = make(map[bmstime.ObjTime]string)
		}
		byTrack[t.Track][t] = hexByte(v)
	}
	return buildTrackMessages(code, byTrack)
}

func hexByte(v uint8) string {
	const hexDigits = "0123456789ABCDEF"
	return string([]byte{hexDigits[v>>4], hexDigits[v&0xF]})
}

func buildTrackMessages(code string, byTrack map[bmstime.Track]map[bmstime.ObjTime]string) []lex.Token {
	var toks []lex.Token
	ch := mustChannel(code)
	for _, track := range sortedTracksOf(byTrack) {
		cells := byTrack[track]
		resolution := uint32(1)
		for t := range cells {
			resolution = lcm(resolution, t.Denominator)
		}
		slots := make([]string, resolution)
		for i := range slots {
			slots[i] = "00"
		}
		for t, cell := range cells {
			idx := t.Numerator * (resolution / t.Denominator)
			slots[idx] = cell
		}
		toks = append(toks, lex.Token{
			Kind:    lex.TokenMessage,
			Track:   track,
			Channel: ch,
			Message: strings.Join(slots, ""),
		})
	}
	return toks
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	return a / gcd(a, b) * b
}

func sortedLaneKindKeys(m map[noteGroupKey]map[bmstime.ObjTime]objid.ObjId) []noteGroupKey {
	out := make([]noteGroupKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].lane.Side != out[j].lane.Side {
			return out[i].lane.Side < out[j].lane.Side
		}
		if out[i].lane.Index != out[j].lane.Index {
			return out[i].lane.Index < out[j].lane.Index
		}
		return out[i].kind < out[j].kind
	})
	return out
}

func sortedTracksOf[V any](m map[bmstime.Track]V) []bmstime.Track {
	out := make([]bmstime.Track, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
