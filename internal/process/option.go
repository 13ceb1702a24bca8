package process

import (
	"strings"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// OptionProcessor handles #OPTION, #CHANGEOPTIONxx and the #A6 channel
// (spec.md §4.3 item 9).
type OptionProcessor struct{}

func (*OptionProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	if matchKeyword(name, "OPTION") {
		m.Options.Options = append(m.Options.Options, strings.TrimSpace(args))
		return nil, nil
	}
	id, ok := matchKeywordID(name, "CHANGEOPTION")
	if !ok {
		return nil, nil
	}
	parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid CHANGEOPTION id %q: %v", id, err)}, nil
	}
	m.Options.ChangeOptions[parsedID] = strings.TrimSpace(args)
	return nil, nil
}

func (*OptionProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	if tok.Channel.Kind != lex.ChannelOption {
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
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid option cell %q", cell))
			continue
		}
		if _, defined := m.Options.ChangeOptions[id]; !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "option event references undefined id %s", id))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := m.Options.InsertOptionEvent(p, t, model.OptionObj{ID: id})
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}
