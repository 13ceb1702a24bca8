package process

import (
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// BmpProcessor handles #BMPxx/#BGAxx/#SWBGA/#ARGB/#POORBGA headers and
// the BGA-layer message channels (spec.md §4.3 item 5).
type BmpProcessor struct{}

func (b *BmpProcessor) OnHeader(m *model.Model, p prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	if id, ok := matchKeywordID(name, "BMP"); ok {
		path := strings.TrimSpace(args)
		if path == "" {
			return []diag.Warning{diag.New(diag.ExpectedToken, 0, 0, diag.Range{}, "key image filename")}, nil
		}
		parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid BMP id %q: %v", id, err)}, nil
		}
		return m.InsertBmp(p, parsedID, id, path)
	}
	if id, ok := matchKeywordID(name, "BGA"); ok {
		parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid BGA id %q: %v", id, err)}, nil
		}
		m.Bmp.ExtBga[parsedID] = strings.TrimSpace(args)
		return nil, nil
	}
	if matchKeyword(name, "SWBGA") {
		return b.storeParamString(m, args, m.Bmp.SwBga)
	}
	if matchKeyword(name, "ARGB") {
		return b.storeParamString(m, args, m.Bmp.Argb)
	}
	if matchKeyword(name, "POORBGA") {
		// A global display-mode flag, not per-id; stored verbatim on
		// Representation alongside the other raw bookkeeping fields.
		m.Representation.RawCommandLines = append(m.Representation.RawCommandLines, "#POORBGA "+strings.TrimSpace(args))
	}
	return nil, nil
}

// storeParamString parses "xx params..." and records params under xx.
func (*BmpProcessor) storeParamString(m *model.Model, args string, table map[objid.ObjId]string) ([]diag.Warning, []diag.Error) {
	fields := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(fields) < 2 {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed id/parameter line %q", args)}, nil
	}
	id, err := objid.Parse(fields[0], m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid id %q: %v", fields[0], err)}, nil
	}
	table[id] = fields[1]
	return nil, nil
}

func (b *BmpProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	var kind lex.ChannelKind
	switch tok.Channel.Kind {
	case lex.ChannelBGABase, lex.ChannelBGALayer, lex.ChannelBGAPoor:
		kind = tok.Channel.Kind
	default:
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
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid BGA cell %q", cell))
			continue
		}
		if _, defined := m.Bmp.Defs[id]; !defined {
			if _, extDefined := m.Bmp.ExtBga[id]; !extDefined {
				warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "BGA references undefined bmp id %s", id))
				continue
			}
		}
		t := cellObjTime(tok.Track, i, len(cells))
		switch kind {
		case lex.ChannelBGABase:
			b.insertSimple(&m.Bmp.BgaBaseEvents, p, prompt.ChannelBGA, t, id, &warnings, &errs)
		case lex.ChannelBGALayer:
			b.insertSimple(&m.Bmp.BgaLayerEvents, p, prompt.ChannelBGA, t, id, &warnings, &errs)
		case lex.ChannelBGAPoor:
			b.insertSimple(&m.Bmp.PoorBgaEvents, p, prompt.ChannelBGA, t, id, &warnings, &errs)
		}
	}
	return warnings, errs
}

func (*BmpProcessor) insertSimple(table *map[bmstime.ObjTime]objid.ObjId, p prompt.Prompter, kind prompt.ChannelKind, t bmstime.ObjTime, id objid.ObjId, warnings *[]diag.Warning, errs *[]diag.Error) {
	existing, collided := (*table)[t]
	if !collided {
		(*table)[t] = id
		return
	}
	res := p.HandleChannelDuplication(kind, t.String())
	if res.Warns() {
		*warnings = append(*warnings, diag.New(diag.DuplicateEvent, 0, 0, diag.Range{}, "duplicate BGA event at %s (kept %v)", t, res))
	}
	if res == prompt.Error {
		*errs = append(*errs, diag.NewError(diag.PrompterError, diag.Range{}, "prompter rejected duplicate BGA event at %s", t))
		return
	}
	if res.KeepsNewer() {
		(*table)[t] = id
	} else {
		(*table)[t] = existing
	}
}
