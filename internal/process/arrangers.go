package process

import (
	"errors"
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// ArrangersProcessor handles every tempo/scroll/speed/section-length
// header and channel (spec.md §4.3 item 6).
type ArrangersProcessor struct{}

func (a *ArrangersProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	trimmed := strings.TrimSpace(args)
	switch {
	case matchKeyword(name, "BPM"), matchKeyword(name, "BASEBPM"):
		d, err := bmstime.ParseDecimal(trimmed)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed BPM %q: %v", trimmed, err)}, nil
		}
		m.Arrangers.InitialBPM = d

	default:
		if id, ok := matchKeywordID(name, "BPM"); ok {
			return a.insertDefinedDecimal(m, "BPM", id, trimmed, m.Arrangers.BPMDefs)
		}
		if id, ok := matchKeywordID(name, "STOP"); ok {
			parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
			if err != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid STOP id %q: %v", id, err)}, nil
			}
			d, err := bmstime.ParseDecimal(trimmed)
			if err != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed STOP%s value %q: %v", id, trimmed, err)}, nil
			}
			m.Stops.StopDefs[parsedID] = d
			return nil, nil
		}
		if id, ok := matchKeywordID(name, "SCROLL"); ok {
			return a.insertDefinedDecimal(m, "SCROLL", id, trimmed, m.Arrangers.ScrollDefs)
		}
		if id, ok := matchKeywordID(name, "SPEED"); ok {
			return a.insertDefinedDecimal(m, "SPEED", id, trimmed, m.Arrangers.SpeedDefs)
		}
		if matchKeyword(name, "STP") {
			return a.parseStp(m, trimmed)
		}
	}
	return nil, nil
}

func (*ArrangersProcessor) insertDefinedDecimal(m *model.Model, keyword, id, value string, table map[objid.ObjId]bmstime.Decimal) ([]diag.Warning, []diag.Error) {
	parsedID, err := objid.Parse(id, m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid %s id %q: %v", keyword, id, err)}, nil
	}
	d, err := bmstime.ParseDecimal(value)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed %s%s value %q: %v", keyword, id, value, err)}, nil
	}
	table[parsedID] = d
	return nil, nil
}

// parseStp handles the bemaniDX absolute-time stop extension: "#STP
// ttt.fff value" where ttt.fff is a track.thousandths position and value
// is a pause length in milliseconds, stored unchanged as a Decimal of
// milliseconds (this extension measures wall-clock time, not beats, so the
// chart builder treats StpEvents specially rather than through the
// BPM-relative Stops table).
func (*ArrangersProcessor) parseStp(m *model.Model, args string) ([]diag.Warning, []diag.Error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed #STP arguments %q", args)}, nil
	}
	posFields := strings.SplitN(fields[0], ".", 2)
	if len(posFields) != 2 {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed #STP position %q", fields[0])}, nil
	}
	track, err1 := parseUintField(posFields[0])
	thousandths, err2 := parseUintField(posFields[1])
	value, err3 := bmstime.ParseDecimal(fields[1])
	if err1 != nil || err2 != nil || err3 != nil || thousandths >= 1000 {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed #STP arguments %q", args)}, nil
	}
	t := bmstime.NewObjTime(bmstime.Track(track), thousandths, 1000)
	m.Stops.StpEvents[t] = value
	return nil, nil
}

func parseUintField(s string) (uint32, error) {
	var n uint64
	if s == "" {
		return 0, errNotADigit
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotADigit
		}
		n = n*10 + uint64(r-'0')
	}
	return uint32(n), nil
}

var errNotADigit = errors.New("not a digit")

func (a *ArrangersProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	switch tok.Channel.Kind {
	case lex.ChannelSectionLen:
		sl, err := parseSectionLen(tok.Message)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "%v", err)}, nil
		}
		return m.Arrangers.InsertSectionLen(p, tok.Track, sl)

	case lex.ChannelBPM:
		return a.insertHexBPM(m, p, tok)

	case lex.ChannelBPMChange:
		return a.insertRefEvent(m, p, tok, m.Arrangers.BPMDefs, m.Arrangers.InsertBPMChange)

	case lex.ChannelStop:
		return a.insertStopEvent(m, tok)

	case lex.ChannelScroll:
		return a.insertRefEvent(m, p, tok, m.Arrangers.ScrollDefs, m.Arrangers.InsertScrollChange)

	case lex.ChannelSpeed:
		return a.insertRefEvent(m, p, tok, m.Arrangers.SpeedDefs, m.Arrangers.InsertSpeedChange)
	}
	return nil, nil
}

func (*ArrangersProcessor) insertHexBPM(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	cells, warnings := splitCells(tok.Message)
	var errs []diag.Error
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		v, ok := decodeHexByte(cell)
		if !ok {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid hex BPM cell %q", cell))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := m.Arrangers.InsertBPMChange(p, t, bmstime.DecimalFromInt(int64(v)))
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}

// insertRefEvent is the shared shape for channels that reference a
// previously-defined id per cell (BPM-change-by-id, scroll, speed).
func (*ArrangersProcessor) insertRefEvent(
	m *model.Model, p prompt.Prompter, tok lex.Token,
	defs map[objid.ObjId]bmstime.Decimal,
	insert func(prompt.Prompter, bmstime.ObjTime, bmstime.Decimal) ([]diag.Warning, []diag.Error),
) ([]diag.Warning, []diag.Error) {
	cells, warnings := splitCells(tok.Message)
	var errs []diag.Error
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		id, err := objid.Parse(cell, m.Representation.CaseSensitive)
		if err != nil {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid id cell %q", cell))
			continue
		}
		v, defined := defs[id]
		if !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "reference to undefined id %s", id))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := insert(p, t, v)
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}

func (*ArrangersProcessor) insertStopEvent(m *model.Model, tok lex.Token) ([]diag.Warning, []diag.Error) {
	cells, warnings := splitCells(tok.Message)
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		id, err := objid.Parse(cell, m.Representation.CaseSensitive)
		if err != nil {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid stop cell %q", cell))
			continue
		}
		d, defined := m.Stops.StopDefs[id]
		if !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "reference to undefined stop id %s", id))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		m.Stops.InsertStop(t, id, d)
	}
	return warnings, nil
}
