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

// VideoProcessor handles #VIDEOFILE/#VIDEODLY/#VIDEOFPS/#VIDEOCOLORS,
// #SEEKxx and the #05 seek channel (spec.md §4.3 item 12).
type VideoProcessor struct{}

func (*VideoProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	trimmed := strings.TrimSpace(args)
	switch {
	case matchKeyword(name, "VIDEOFILE"):
		m.Video.VideoFile = trimmed

	case matchKeyword(name, "VIDEODLY"):
		d, err := bmstime.ParseDecimal(trimmed)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed VIDEODLY %q: %v", trimmed, err)}, nil
		}
		m.Video.VideoDelay = &d

	case matchKeyword(name, "VIDEOFPS"):
		d, err := bmstime.ParseDecimal(trimmed)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed VIDEOFPS %q: %v", trimmed, err)}, nil
		}
		m.Video.VideoFrameRate = &d

	case matchKeyword(name, "VIDEOCOLORS"):
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed VIDEOCOLORS %q: %v", trimmed, err)}, nil
		}
		m.Video.VideoColors = &v

	default:
		if id, ok := matchKeywordID(name, "SEEK"); ok {
			d, err := bmstime.ParseDecimal(trimmed)
			if err != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed SEEK%s %q: %v", id, trimmed, err)}, nil
			}
			parsedID, perr := objid.Parse(id, m.Representation.CaseSensitive)
			if perr != nil {
				return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid SEEK id %q: %v", id, perr)}, nil
			}
			m.Video.SeekDefs[parsedID] = d
		}
	}
	return nil, nil
}

func (*VideoProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	if tok.Channel.Kind != lex.ChannelSeek {
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
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid seek cell %q", cell))
			continue
		}
		if _, defined := m.Video.SeekDefs[id]; !defined {
			warnings = append(warnings, diag.New(diag.UndefinedObject, 0, 0, diag.Range{}, "seek event references undefined id %s", id))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := m.Video.InsertSeek(p, t, model.SeekObj{ID: id})
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}
