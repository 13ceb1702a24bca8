// Package oscbridge streams a built chart's event timeline out over OSC,
// the same transport the teacher's playback engine uses to drive an
// external synth (model.go's sendOSCMessage/SendOSCSamplerMessage), so a
// chart built from this library's chart model can drive the identical
// sound engine a chart authored in the teacher's own tracker would.
package oscbridge

import (
	"context"
	"time"

	"github.com/hypebeast/go-osc/osc"

	"github.com/go-bms/bmscore/internal/chart"
)

// Broadcaster sends chart events to a single OSC endpoint.
type Broadcaster struct {
	client *osc.Client
}

// New dials host:port. No connection is established until the first
// Send, matching osc.Client's own lazy-UDP-socket behavior.
func New(host string, port int) *Broadcaster {
	return &Broadcaster{client: osc.NewClient(host, port)}
}

// addressFor picks the OSC address for an event kind, mirroring the
// teacher's one-address-per-message-type convention ("/instrument",
// "/sampler", "/stop") rather than a single generic address with a type
// tag argument.
func addressFor(kind chart.EventKind) string {
	switch kind {
	case chart.EventNoteVisible, chart.EventNoteInvisible, chart.EventNoteLNStart, chart.EventNoteLNEnd, chart.EventNoteMine:
		return "/chart/note"
	case chart.EventBGM:
		return "/chart/bgm"
	case chart.EventBGABase, chart.EventBGALayer, chart.EventBGAPoor:
		return "/chart/bga"
	case chart.EventBPMChange:
		return "/chart/bpm"
	case chart.EventStop, chart.EventStpStop:
		return "/chart/stop"
	case chart.EventScrollChange:
		return "/chart/scroll"
	case chart.EventSpeedChange:
		return "/chart/speed"
	default:
		return "/chart/event"
	}
}

// Send emits one chart event as an OSC message: [track, numerator,
// denominator, kind, lane_side, lane_index, value].
func (b *Broadcaster) Send(ev chart.ChartEvent) error {
	msg := osc.NewMessage(addressFor(ev.Kind))
	msg.Append(int32(ev.At.Track))
	msg.Append(int32(ev.At.Numerator))
	msg.Append(int32(ev.At.Denominator))
	msg.Append(int32(ev.Kind))
	msg.Append(int32(ev.Lane.Side))
	msg.Append(int32(ev.Lane.Index))
	msg.Append(float32(ev.Value.Float64()))
	return b.client.Send(msg)
}

// Stream sends events in order, sleeping in real time between them so a
// listener hears the chart at the tempo it was built for. events must
// already be sorted by TimeSeconds, as Build returns them. Cancelling ctx
// stops the stream before its next send.
func (b *Broadcaster) Stream(ctx context.Context, events []chart.ChartEvent) error {
	var last float64
	for _, ev := range events {
		wait := ev.TimeSeconds - last
		last = ev.TimeSeconds
		if wait > 0 {
			timer := time.NewTimer(time.Duration(wait * float64(time.Second)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := b.Send(ev); err != nil {
			return err
		}
	}
	return nil
}
