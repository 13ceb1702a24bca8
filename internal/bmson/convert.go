package bmson

import (
	"fmt"
	"sort"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// ToModel converts a decoded BMSON document into the same chart model the
// BMS text pipeline builds, so both formats converge on one downstream
// representation (spec.md's chart model is format-agnostic by design).
// p resolves the rare duplicate BPM/scroll events and note collisions
// landing on the same pulse; stops sharing a pulse are summed by
// InsertStop without consulting p. BMSON's own arrays are otherwise pre-deduplicated by construction,
// unlike BMS source where two #channel lines can collide.
func ToModel(doc *Document, p prompt.Prompter) (*model.Model, []diag.Warning, []diag.Error) {
	var warnings []diag.Warning
	var errs []diag.Error

	m := model.New()
	m.MusicInfo.Title = doc.Info.Title
	m.MusicInfo.Subtitle = doc.Info.Subtitle
	m.MusicInfo.Artist = doc.Info.Artist
	m.MusicInfo.Genre = doc.Info.Genre
	m.Header.PlayLevel = doc.Info.Level
	m.Sprites.BackBmp = doc.Info.BackImage
	m.Sprites.Banner = doc.Info.BannerImage
	m.MusicInfo.PreviewMusic = doc.Info.PreviewMusic

	resolution := doc.Info.Resolution
	if resolution <= 0 {
		resolution = 240 // BMSON's documented default pulses-per-quarter-note.
	}

	conv := &converter{resolution: uint64(resolution), bars: sortedBars(doc.Lines)}

	m.Arrangers.InitialBPM = mustFloatDecimal(doc.Info.InitBPM)

	for _, ev := range doc.BpmEvents {
		t := conv.objTime(ev.Y)
		w, e := m.Arrangers.InsertBPMChange(p, t, mustFloatDecimal(ev.BPM))
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	for _, ev := range doc.StopEvents {
		// BMSON stop duration is itself expressed in pulses at the
		// tempo in effect, matching the BPM-relative #STOP channel
		// rather than the wall-clock #STP extension.
		t := conv.objTime(ev.Y)
		beats := float64(ev.Duration) / float64(resolution)
		m.Stops.InsertStop(t, objid.Null, mustFloatDecimal(beats))
	}
	for _, ev := range doc.ScrollEvents {
		t := conv.objTime(ev.Y)
		w, e := m.Arrangers.InsertScrollChange(p, t, mustFloatDecimal(ev.Rate))
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}

	for i, ch := range doc.SoundChannels {
		id := channelID(i)
		m.Wav.Defs[id] = ch.Name
		lnOpen := make(map[model.Lane]bool)
		for _, n := range ch.Notes {
			t := conv.objTime(n.Y)
			if n.X == 0 {
				m.Notes.PushBgm(t, id)
				continue
			}
			lane := model.Lane{Side: model.Player1, Index: int(n.X)}
			if n.L == 0 {
				w, e := m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteVisible})
				warnings = append(warnings, w...)
				errs = append(errs, e...)
				continue
			}
			// a long note: start now, end at Y+L. BMSON's c flag only
			// matters for re-synthesizing editable note pairs and has
			// no effect on the flattened start/end pair this model
			// stores, so it is not threaded further.
			endT := conv.objTime(n.Y + n.L)
			if !lnOpen[lane] {
				_, _ = m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteLNStart})
				lnOpen[lane] = true
			}
			w, e := m.Notes.Insert(p, endT, lane, model.NoteEvent{ID: id, Kind: model.NoteLNEnd})
			warnings = append(warnings, w...)
			errs = append(errs, e...)
			lnOpen[lane] = false
		}
	}

	bgaIDs := make(map[int64]objid.ObjId)
	for i, h := range doc.Bga.BgaHeader {
		id := channelID(i)
		m.Bmp.Defs[id] = h.Name
		bgaIDs[h.ID] = id
	}
	for _, ev := range doc.Bga.BgaEvents {
		if id, ok := bgaIDs[ev.ID]; ok {
			m.Bmp.BgaBaseEvents[conv.objTime(ev.Y)] = id
		}
	}
	for _, ev := range doc.Bga.LayerEvents {
		if id, ok := bgaIDs[ev.ID]; ok {
			m.Bmp.BgaLayerEvents[conv.objTime(ev.Y)] = id
		}
	}
	for _, ev := range doc.Bga.PoorEvents {
		if id, ok := bgaIDs[ev.ID]; ok {
			m.Bmp.PoorBgaEvents[conv.objTime(ev.Y)] = id
		}
	}

	fw, fe := m.Finalize()
	warnings = append(warnings, fw...)
	errs = append(errs, fe...)
	return m, warnings, errs
}

// channelID synthesizes a two-character object id from an array index,
// reusing the same base-62 hi*62+lo packing objid.ObjId already stores
// by, rather than inventing a parallel identifier representation for
// array-indexed BMSON resources.
func channelID(index int) objid.ObjId {
	return objid.ObjId(index + 1) // +1 keeps index 0 away from the Null sentinel.
}

func mustFloatDecimal(f float64) bmstime.Decimal {
	d, err := bmstime.ParseDecimal(fmt.Sprintf("%g", f))
	if err != nil {
		return bmstime.ZeroDecimal
	}
	return d
}

// converter maps a BMSON global pulse count onto a Track/ObjTime using
// the document's bar-line table, since BMSON has no notion of tracks.
type converter struct {
	resolution uint64
	bars       []int64 // sorted, strictly increasing bar-start pulses; bars[0] is conventionally 0.
}

func sortedBars(lines []BarLine) []int64 {
	ys := make([]int64, len(lines))
	for i, l := range lines {
		ys[i] = l.Y
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	if len(ys) == 0 || ys[0] != 0 {
		ys = append([]int64{0}, ys...)
	}
	return ys
}

// objTime finds which bar y falls in and expresses the offset within
// that bar as an unreduced fraction; bmstime.ObjTime.Compare
// cross-multiplies numerator/denominator pairs, so an unreduced fraction
// orders correctly without ever needing to share a denominator with
// sibling events in the same bar.
func (c *converter) objTime(y int64) bmstime.ObjTime {
	track := 0
	for track+1 < len(c.bars) && c.bars[track+1] <= y {
		track++
	}
	barStart := c.bars[track]
	var barEnd int64
	if track+1 < len(c.bars) {
		barEnd = c.bars[track+1]
	} else {
		// last bar: fall back to one measure's worth of pulses at the
		// document's base resolution so a trailing bar still has a
		// valid, nonzero span.
		barEnd = barStart + int64(c.resolution)*4
	}
	span := barEnd - barStart
	if span <= 0 {
		span = 1
	}
	offset := y - barStart
	if offset < 0 {
		offset = 0
	}
	if offset >= span {
		// falls exactly on (or past, from an oversized L) the next bar
		// boundary: treat as the start of that bar rather than letting
		// NewObjTime panic on numerator >= denominator.
		return bmstime.NewObjTime(bmstime.Track(track+1), 0, 1)
	}
	return bmstime.NewObjTime(bmstime.Track(track), uint32(offset), uint32(span))
}
