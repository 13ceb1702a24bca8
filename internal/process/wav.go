package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// WavProcessor handles #WAVxx/#EXWAVxx/#WAVCMD (spec.md §4.3 item 4).
// The BGM channel that plays these samples is handled by NotesProcessor,
// since spec.md groups BGM under the Notes aggregate.
type WavProcessor struct{}

func (w *WavProcessor) OnHeader(m *model.Model, p prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	if id, ok := matchKeywordID(name, "WAV"); ok {
		return w.insertWav(m, p, id, args)
	}
	if id, ok := matchKeywordID(name, "EXWAV"); ok {
		return w.insertExWav(m, p, id, args)
	}
	if matchKeyword(name, "WAVCMD") {
		return w.parseWavCmd(m, args)
	}
	return nil, nil
}

func (*WavProcessor) insertWav(m *model.Model, p prompt.Prompter, raw, args string) ([]diag.Warning, []diag.Error) {
	path := strings.TrimSpace(args)
	if path == "" {
		return []diag.Warning{diag.New(diag.ExpectedToken, 0, 0, diag.Range{}, "key audio filename")}, nil
	}
	id, err := objid.Parse(raw, m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid WAV id %q: %v", raw, err)}, nil
	}
	return m.InsertWav(p, id, raw, path)
}

func (*WavProcessor) insertExWav(m *model.Model, _ prompt.Prompter, raw, args string) ([]diag.Warning, []diag.Error) {
	id, err := objid.Parse(raw, m.Representation.CaseSensitive)
	if err != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "invalid EXWAV id %q: %v", raw, err)}, nil
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return []diag.Warning{diag.New(diag.ExpectedToken, 0, 0, diag.Range{}, "key audio filename")}, nil
	}
	path := fields[len(fields)-1]
	params := strings.TrimSpace(strings.TrimSuffix(args, path))
	m.Wav.ExDefs[id] = model.WavExDef{Path: path, Params: params}
	return nil, nil
}

func (*WavProcessor) parseWavCmd(m *model.Model, args string) ([]diag.Warning, []diag.Error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "#WAVCMD expects 3 arguments, got %q", args)}, nil
	}
	paramVal, err1 := strconv.ParseUint(fields[0], 10, 32)
	id, err2 := objid.Parse(fields[1], m.Representation.CaseSensitive)
	value, err3 := strconv.ParseUint(fields[2], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return []diag.Warning{diag.New(diag.SyntaxError, 0, 0, diag.Range{}, "malformed #WAVCMD arguments %q", args)}, nil
	}
	m.Wav.WavCmd = append(m.Wav.WavCmd, model.WavCmdEntry{Param: uint32(paramVal), ID: id, Value: uint32(value)})
	return nil, nil
}

func (*WavProcessor) OnMessage(*model.Model, prompt.Prompter, lex.Token) ([]diag.Warning, []diag.Error) {
	return nil, nil
}
