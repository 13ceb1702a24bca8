package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// OptionObj is a single #CHANGEOPTIONxx event: switch the active play
// option to ChangeOptions[ID].
type OptionObj struct {
	ID objid.ObjId
}

// OptionObjects holds the #OPTION header list plus the in-chart option
// switches (spec.md §4.3 item 9).
type OptionObjects struct {
	Options       []string
	ChangeOptions map[objid.ObjId]string
	OptionEvents  map[bmstime.ObjTime]OptionObj
}

func newOptionObjects() OptionObjects {
	return OptionObjects{
		ChangeOptions: make(map[objid.ObjId]string),
		OptionEvents:  make(map[bmstime.ObjTime]OptionObj),
	}
}

// InsertOptionEvent reconciles a #A6 channel event through p.
func (o *OptionObjects) InsertOptionEvent(p prompt.Prompter, t bmstime.ObjTime, ev OptionObj) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := o.OptionEvents[t]
	if !collided {
		o.OptionEvents[t] = ev
		return nil, nil
	}
	res := p.HandleChannelDuplication(prompt.ChannelOption, t.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{}, "duplicate option event at %s", t))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate option event at %s", t))
		return warnings, errs
	}
	if res.KeepsNewer() {
		o.OptionEvents[t] = ev
	} else {
		o.OptionEvents[t] = existing
	}
	return warnings, errs
}
