package bms

import (
	"github.com/go-bms/bmscore/internal/chart"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

// ChartProcessor is a thin read-only view over a finished model, shaped
// for a caller that wants resource lookups and the flattened event
// timeline without reaching into internal/model and internal/chart
// directly (spec.md §6.2's ChartProcessor abstraction).
type ChartProcessor struct {
	m *model.Model
}

// NewChartProcessor wraps m. m is not copied; it must not be mutated
// concurrently with calls on the returned ChartProcessor.
func NewChartProcessor(m *model.Model) *ChartProcessor {
	return &ChartProcessor{m: m}
}

// AudioFiles returns every #WAVxx/#EXWAVxx id mapped to its source path.
func (c *ChartProcessor) AudioFiles() map[objid.ObjId]string {
	out := make(map[objid.ObjId]string, len(c.m.Wav.Defs)+len(c.m.Wav.ExDefs))
	for id, path := range c.m.Wav.Defs {
		out[id] = path
	}
	for id, def := range c.m.Wav.ExDefs {
		out[id] = def.Path
	}
	return out
}

// BmpFiles returns every #BMPxx id mapped to its source path.
func (c *ChartProcessor) BmpFiles() map[objid.ObjId]string {
	out := make(map[objid.ObjId]string, len(c.m.Bmp.Defs))
	for id, path := range c.m.Bmp.Defs {
		out[id] = path
	}
	return out
}

// Events returns the flattened, time-ordered chart timeline (spec.md
// §4.5). Building it is not cached: call once and keep the slice if it
// will be iterated more than once.
func (c *ChartProcessor) Events() []chart.ChartEvent {
	return chart.Build(c.m)
}

// EventIterator returns a function that yields successive chart events
// and reports false once exhausted, for callers that prefer a pull-
// style iterator over holding the whole slice.
func (c *ChartProcessor) EventIterator() func() (chart.ChartEvent, bool) {
	events := chart.Build(c.m)
	i := 0
	return func() (chart.ChartEvent, bool) {
		if i >= len(events) {
			return chart.ChartEvent{}, false
		}
		ev := events[i]
		i++
		return ev, true
	}
}
