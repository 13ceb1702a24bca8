package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// JudgeObj is a single #A0 channel event switching the active judgement
// window (spec.md §4.3 item 10).
type JudgeObj struct {
	ID objid.ObjId
}

// JudgeObjects holds #RANK/#DEFEXRANK/#EXRANKxx/#TOTAL and the in-chart
// judge-change events.
type JudgeObjects struct {
	Rank        *JudgeLevel
	Total       *bmstime.Decimal
	ExRankDefs  map[objid.ObjId]JudgeLevel
	JudgeEvents map[bmstime.ObjTime]JudgeObj
}

func newJudgeObjects() JudgeObjects {
	return JudgeObjects{
		ExRankDefs:  make(map[objid.ObjId]JudgeLevel),
		JudgeEvents: make(map[bmstime.ObjTime]JudgeObj),
	}
}

// InsertJudgeEvent reconciles an #A0 channel event through p.
func (o *JudgeObjects) InsertJudgeEvent(p prompt.Prompter, t bmstime.ObjTime, ev JudgeObj) (warnings []diag.Warning, errs []diag.Error) {
	existing, collided := o.JudgeEvents[t]
	if !collided {
		o.JudgeEvents[t] = ev
		return nil, nil
	}
	res := p.HandleChannelDuplication(prompt.ChannelJudge, t.String())
	if res.Warns() {
		warnings = append(warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{}, "duplicate judge event at %s", t))
	}
	if res == prompt.Error {
		errs = append(errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate judge event at %s", t))
		return warnings, errs
	}
	if res.KeepsNewer() {
		o.JudgeEvents[t] = ev
	} else {
		o.JudgeEvents[t] = existing
	}
	return warnings, errs
}
