package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// JudgeProcessor handles #RANK/#DEFEXRANK/#EXRANKxx/#TOTAL and the #A0
// channel (spec.md §4.3 item 10).
type JudgeProcessor struct{}

func (*JudgeProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	switch {
	case matchKeyword(name, "RANK"):
		lvl, err := parseJudgeLevel(args)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed RANK %q: %v", args, err)}, nil
		}
		m.Judge.Rank = &lvl

	case matchKeyword(name, "DEFEXRANK"):
		d, err := bmstime.ParseDecimal(strings.TrimSpace(args))
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed DEFEXRANK %q: %v", args, err)}, nil
		}
		m.Judge.Total = &d

	case matchKeyword(name, "TOTAL"):
		d, err := bmstime.ParseDecimal(strings.TrimSpace(args))
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed TOTAL %q: %v", args, err)}, nil
		}
		m.Judge.Total = &d

	default:
		if id, ok := matchKeywordID(name, "EXRANK"); ok {
			lvl, err := parseJudgeLevel(args)
			if err != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed EXRANK%s %q: %v", id, args, err)}, nil
			}
			parsedID, perr := objid.Parse(id, m.Representation.CaseSensitive)
			if perr != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid EXRANK id %q: %v", id, perr)}, nil
			}
			m.Judge.ExRankDefs[parsedID] = lvl
		}
	}
	return nil, nil
}

func parseJudgeLevel(args string) (model.JudgeLevel, error) {
	v, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return 0, err
	}
	return model.JudgeLevel(v), nil
}

func (*JudgeProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	if tok.Channel.Kind != lex.ChannelJudge {
		return nil, nil
	}
	cells, warnings := splitCells(tok.Message)
	var errs []diag.Error
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		id, err := objid.Parse(cell, m.Representation.CaseSensitive)
		if err != nil {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid judge cell %q", cell))
			continue
		}
		if _, defined := m.Judge.ExRankDefs[id]; !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "judge event references undefined id %s", id))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := m.Judge.InsertJudgeEvent(p, t, model.JudgeObj{ID: id})
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}
