package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// TextObj is a single #99 channel event showing Texts[ID] on screen.
type TextObj struct {
	ID objid.ObjId
}

// TextObjects holds #TEXTxx/#SONGxx definitions and their events
// (spec.md §4.3 item 8).
type TextObjects struct {
	Texts      map[objid.ObjId]string
	TextEvents map[bmstime.ObjTime]TextObj
}

func newTextObjects() TextObjects {
	return TextObjects{
		Texts:      make(map[objid.ObjId]string),
		TextEvents: make(map[bmstime.ObjTime]TextObj),
	}
}

// InsertTextEvent reconciles a #99 channel event through p.
func (o *TextObjects) InsertTextEvent(p prompt.Prompter, t bmstime.ObjTime, ev TextObj) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := o.TextEvents[t]
	if !collided {
		o.TextEvents[t] = ev
		return nil, nil
	}
	res := p.HandleChannelDuplication(prompt.ChannelText, t.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{}, "duplicate text event at %s", t))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate text event at %s", t))
		return warnings, errs
	}
	if res.KeepsNewer() {
		o.TextEvents[t] = ev
	} else {
		o.TextEvents[t] = existing
	}
	return warnings, errs
}
