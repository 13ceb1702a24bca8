package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

// VolumeProcessor handles #VOLWAV and the #97/#98 volume channels
// (spec.md §4.3 item 11).
type VolumeProcessor struct{}

func (*VolumeProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	if !matchKeyword(name, "VOLWAV") {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed VOLWAV %q: %v", args, err)}, nil
	}
	m.Volume.DefaultVolWav = &v
	return nil, nil
}

func (*VolumeProcessor) OnMessage(m *model.Model, _ prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	switch tok.Channel.Kind {
	case lex.ChannelBGMVolume:
		return insertVolumeCells(m.Volume.BgmVolumeEvents, tok)
	case lex.ChannelKeyVolume:
		return insertVolumeCells(m.Volume.KeyVolumeEvents, tok)
	}
	return nil, nil
}

// insertVolumeCells decodes each hex cell as a u8 percentage and writes
// it directly into table; later events at the same instant overwrite
// earlier ones without prompter involvement (model.Volume's doc comment).
func insertVolumeCells(table map[bmstime.ObjTime]uint8, tok lex.Token) ([]diag.Warning, []diag.Error) {
	cells, warnings := splitCells(tok.Message)
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		v, ok := decodeHexByte(cell)
		if !ok {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid volume cell %q", cell))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		table[t] = v
	}
	return warnings, nil
}
