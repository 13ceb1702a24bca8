package process

import (
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// TextProcessor handles #TEXTxx/#SONGxx and the #99 text channel
// (spec.md §4.3 item 8). SONGxx is an older alias for TEXTxx kept by
// several dialects; both feed the same table.
type TextProcessor struct{}

func (t *TextProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	id, ok := matchKeywordID(name, "TEXT")
	if !ok {
		id, ok = matchKeywordID(name, "SONG")
	}
	if !ok {
		return nil, nil
	}
	parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid TEXT id %q: %v", id, err)}, nil
	}
	m.Texts.Texts[parsedID] = args
	return nil, nil
}

func (t *TextProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	if tok.Channel.Kind != lex.ChannelText {
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
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid text cell %q", cell))
			continue
		}
		if _, defined := m.Texts.Texts[id]; !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "text event references undefined id %s", id))
			continue
		}
		tt := cellObjTime(tok.Track, i, len(cells))
		w, e := m.Texts.InsertTextEvent(p, tt, model.TextObj{ID: id})
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}
