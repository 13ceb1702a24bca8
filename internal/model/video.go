package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// SeekObj is a single #SEEKxx event: jump the background video to the
// timestamp recorded in Video.SeekDefs[ID].
type SeekObj struct {
	ID objid.ObjId
}

// Video holds the #VIDEOFILE family plus the seek-event channel
// (spec.md §4.3 item 12, §6.1; field names per SPEC_FULL.md §C).
type Video struct {
	VideoFile      string
	VideoColors    *int
	VideoDelay     *bmstime.Decimal
	VideoFrameRate *bmstime.Decimal

	SeekDefs   map[objid.ObjId]bmstime.Decimal
	SeekEvents map[bmstime.ObjTime]SeekObj
}

func newVideo() Video {
	return Video{
		SeekDefs:   make(map[objid.ObjId]bmstime.Decimal),
		SeekEvents: make(map[bmstime.ObjTime]SeekObj),
	}
}

// InsertSeek reconciles a #SEEKxx event through p.
func (v *Video) InsertSeek(p prompt.Prompter, t bmstime.ObjTime, ev SeekObj) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := v.SeekEvents[t]
	if !collided {
		v.SeekEvents[t] = ev
		return nil, nil
	}
	res := p.HandleChannelDuplication(prompt.ChannelSeek, t.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{}, "duplicate seek event at %s", t))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate seek event at %s", t))
		return warnings, errs
	}
	if res.KeepsNewer() {
		v.SeekEvents[t] = ev
	} else {
		v.SeekEvents[t] = existing
	}
	return warnings, errs
}
