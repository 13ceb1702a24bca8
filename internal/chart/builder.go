package chart

import (
	"sort"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/model"
)

var sixty = bmstime.DecimalFromInt(60)
var four = bmstime.DecimalFromInt(4)
var thousand = bmstime.DecimalFromInt(1000)

// pulseEvent is one or more ChartEvents sharing a single ObjTime within a
// track, queued up before the track's resolution is known.
type pulseEvent struct {
	at     bmstime.ObjTime
	events []ChartEvent
}

// Build walks every aggregate in m and produces a chart event stream in
// strictly increasing time order (spec.md §4.5, §8 invariant 3).
func Build(m *model.Model) []ChartEvent {
	byTrack := collectByTrack(m)

	tracks := make([]bmstime.Track, 0, len(byTrack))
	for tr := range byTrack {
		tracks = append(tracks, tr)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i] < tracks[j] })

	currentBPM := m.Arrangers.InitialBPM
	currentTime := 0.0
	currentY := 0.0
	var out []ChartEvent

	for _, tr := range tracks {
		pulses := byTrack[tr]
		sort.Slice(pulses, func(i, j int) bool { return pulses[i].at.Less(pulses[j].at) })

		sectionLen := bmstime.DecimalFromInt(1)
		if sl, ok := m.Arrangers.SectionLens[tr]; ok {
			sectionLen = sl.Decimal
		}
		trackBeats := four.Mul(sectionLen)

		resolution := trackResolution(pulses)
		beatsPerPulse := trackBeats.Quo(bmstime.DecimalFromInt(int64(resolution)))

		lastPulse := uint64(0)
		for _, pe := range pulses {
			pulse := objTimePulse(pe.at, resolution)
			if pulse > lastPulse {
				delta := beatsPerPulse.Mul(bmstime.DecimalFromInt(int64(pulse - lastPulse)))
				currentTime += delta.Mul(sixty).Quo(currentBPM).Float64()
				currentY += delta.Float64()
				lastPulse = pulse
			}
			for _, ev := range pe.events {
				ev.TimeSeconds = currentTime
				ev.YCoordinate = currentY
				switch ev.Kind {
				case EventBPMChange:
					currentBPM = ev.Value
				case EventStop:
					currentTime += ev.Value.Mul(sixty).Quo(currentBPM).Float64()
				case EventStpStop:
					currentTime += ev.Value.Float64()
				}
				out = append(out, ev)
			}
		}
		if resolution > lastPulse {
			delta := beatsPerPulse.Mul(bmstime.DecimalFromInt(int64(resolution - lastPulse)))
			currentTime += delta.Mul(sixty).Quo(currentBPM).Float64()
			currentY += delta.Float64()
		}
	}

	return out
}

// trackResolution is the LCM of every event denominator seen in the
// track (spec.md §4.5 item 1), defaulting to 1 when the track carries no
// fractional-position events.
func trackResolution(pulses []pulseEvent) uint64 {
	res := uint64(1)
	for _, pe := range pulses {
		res = bmstime.LCM(res, uint64(pe.at.Denominator))
	}
	return res
}

func objTimePulse(t bmstime.ObjTime, resolution uint64) uint64 {
	return uint64(t.Numerator) * (resolution / uint64(t.Denominator))
}

// collectByTrack gathers every event-bearing aggregate into a per-track,
// per-ObjTime bucket ready for pulse resolution.
func collectByTrack(m *model.Model) map[bmstime.Track][]pulseEvent {
	byTrack := make(map[bmstime.Track]map[bmstime.ObjTime][]ChartEvent)

	add := func(t bmstime.ObjTime, ev ChartEvent) {
		ev.Track = t.Track
		ev.At = t
		if byTrack[t.Track] == nil {
			byTrack[t.Track] = make(map[bmstime.ObjTime][]ChartEvent)
		}
		byTrack[t.Track][t] = append(byTrack[t.Track][t], ev)
	}

	for t, lanes := range m.Notes.Events {
		for lane, note := range lanes {
			var kind EventKind
			switch note.Kind {
			case model.NoteVisible:
				kind = EventNoteVisible
			case model.NoteInvisible:
				kind = EventNoteInvisible
			case model.NoteMine:
				kind = EventNoteMine
			default:
				continue
			}
			add(t, ChartEvent{Kind: kind, Lane: lane, ID: note.ID})
		}
	}
	for lane, spans := range m.Notes.LongNotes {
		for _, span := range spans {
			add(span.Start, ChartEvent{Kind: EventNoteLNStart, Lane: lane, ID: span.ID})
			add(span.End, ChartEvent{Kind: EventNoteLNEnd, Lane: lane, ID: span.ID})
		}
	}
	for t, ids := range m.Notes.BgmEvents {
		for _, id := range ids {
			add(t, ChartEvent{Kind: EventBGM, ID: id})
		}
	}
	for t, id := range m.Bmp.BgaBaseEvents {
		add(t, ChartEvent{Kind: EventBGABase, ID: id})
	}
	for t, id := range m.Bmp.BgaLayerEvents {
		add(t, ChartEvent{Kind: EventBGALayer, ID: id})
	}
	for t, id := range m.Bmp.PoorBgaEvents {
		add(t, ChartEvent{Kind: EventBGAPoor, ID: id})
	}
	for t, v := range m.Arrangers.BPMChanges {
		add(t, ChartEvent{Kind: EventBPMChange, Value: v})
	}
	for t, v := range m.Arrangers.ScrollChanges {
		add(t, ChartEvent{Kind: EventScrollChange, Value: v})
	}
	for t, v := range m.Arrangers.SpeedChanges {
		add(t, ChartEvent{Kind: EventSpeedChange, Value: v})
	}
	for t, stop := range m.Stops.Stops {
		add(t, ChartEvent{Kind: EventStop, Value: stop.Duration})
	}
	for t, ms := range m.Stops.StpEvents {
		// #STP is wall-clock milliseconds, independent of BPM, so it adds
		// straight seconds rather than going through the beats*60/bpm
		// conversion the BPM-relative #STOP channel uses.
		add(t, ChartEvent{Kind: EventStpStop, Value: ms.Quo(thousand)})
	}
	for t, txt := range m.Texts.TextEvents {
		add(t, ChartEvent{Kind: EventText, ID: txt.ID})
	}
	for t, opt := range m.Options.OptionEvents {
		add(t, ChartEvent{Kind: EventOption, ID: opt.ID})
	}
	for t, j := range m.Judge.JudgeEvents {
		add(t, ChartEvent{Kind: EventJudgeChange, ID: j.ID})
	}
	for t, seek := range m.Video.SeekEvents {
		add(t, ChartEvent{Kind: EventSeek, ID: seek.ID})
	}

	out := make(map[bmstime.Track][]pulseEvent, len(byTrack))
	for tr, byTime := range byTrack {
		list := make([]pulseEvent, 0, len(byTime))
		for at, evs := range byTime {
			list = append(list, pulseEvent{at: at, events: evs})
		}
		out[tr] = list
	}
	return out
}
