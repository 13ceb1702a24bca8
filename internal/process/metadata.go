package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

// MetadataProcessor handles the play-mode headers (spec.md §4.3 item 1)
// plus the Resources/Sprites companion-file headers (SPEC_FULL.md §C):
// neither aggregate gets its own processor slot in spec.md's 12-item
// list, and both are header-only with no message channel, so they live
// alongside the other miscellaneous single-value headers here.
// CHARSET is a recognized no-op: the spec assumes input already decoded
// to Unicode (spec.md §1 non-goals).
type MetadataProcessor struct{}

func (*MetadataProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	trimmed := strings.TrimSpace(args)
	switch {
	case matchKeyword(name, "PLAYER"):
		if v, err := strconv.Atoi(trimmed); err == nil {
			m.Header.Player = v
		}
	case matchKeyword(name, "DIFFICULTY"):
		if v, err := strconv.Atoi(trimmed); err == nil {
			m.Header.Difficulty = v
		}
	case matchKeyword(name, "PLAYLEVEL"):
		if v, err := strconv.Atoi(trimmed); err == nil {
			m.Header.PlayLevel = v
		}
	case matchKeyword(name, "EMAIL"):
		m.Header.Email = trimmed
	case matchKeyword(name, "URL"):
		m.Header.URL = trimmed
	case matchKeyword(name, "PATH_WAV"):
		m.Header.PathWav = trimmed
	case matchKeyword(name, "DIVIDEPROP"):
		m.Header.DivideProp = trimmed
	case matchKeyword(name, "CHARSET"):
		// no-op: input is assumed already decoded to Unicode.

	case matchKeyword(name, "MIDIFILE"):
		m.Resources.MidiFile = trimmed
	case matchKeyword(name, "CDDA"):
		if v, err := strconv.Atoi(trimmed); err == nil {
			m.Resources.CDDA = append(m.Resources.CDDA, v)
		}
	case matchKeyword(name, "MATERIALSWAV"):
		m.Resources.MaterialsWav = append(m.Resources.MaterialsWav, trimmed)
	case matchKeyword(name, "MATERIALSBMP"):
		m.Resources.MaterialsBmp = append(m.Resources.MaterialsBmp, trimmed)
	case matchKeyword(name, "MATERIALS"):
		m.Resources.MaterialsPath = trimmed

	case matchKeyword(name, "BACKBMP"):
		m.Sprites.BackBmp = trimmed
	case matchKeyword(name, "STAGEFILE"):
		m.Sprites.StageFile = trimmed
	case matchKeyword(name, "BANNER"):
		m.Sprites.Banner = trimmed
	case matchKeyword(name, "CHARFILE"):
		m.Sprites.CharFile = trimmed
	case matchKeyword(name, "EXTCHR"):
		m.Sprites.ExtCharEvents = append(m.Sprites.ExtCharEvents, trimmed)
	}
	return nil, nil
}

func (*MetadataProcessor) OnMessage(*model.Model, prompt.Prompter, lex.Token) ([]diag.Warning, []diag.Error) {
	return nil, nil
}
