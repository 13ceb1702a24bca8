package process

import (
	"strings"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

// MusicInfoProcessor handles the descriptive, non-gameplay headers
// (spec.md §4.3 item 2). TITLE and ARTIST are mirrored into Header's
// short fields as well, since spec.md §3 lists both aggregates as
// carrying title/artist and this is the only processor that reads them
// off the token stream.
type MusicInfoProcessor struct{}

func (*MusicInfoProcessor) OnHeader(m *model.Model, _ prompt.Prompter, name, args string) ([]diag.Warning, []diag.Error) {
	trimmed := strings.TrimSpace(args)
	switch {
	case matchKeyword(name, "GENRE"):
		m.MusicInfo.Genre = trimmed
	case matchKeyword(name, "TITLE"):
		m.MusicInfo.Title = trimmed
		m.Header.Title = trimmed
	case matchKeyword(name, "SUBTITLE"):
		m.MusicInfo.Subtitle = trimmed
	case matchKeyword(name, "ARTIST"):
		m.MusicInfo.Artist = trimmed
		m.Header.Artist = trimmed
	case matchKeyword(name, "SUBARTIST"):
		m.MusicInfo.SubArtist = trimmed
	case matchKeyword(name, "COMMENT"):
		m.MusicInfo.Comments = append(m.MusicInfo.Comments, trimmed)
	case matchKeyword(name, "MAKER"):
		m.MusicInfo.Maker = trimmed
	case matchKeyword(name, "PREVIEW"):
		m.MusicInfo.PreviewMusic = trimmed
	}
	return nil, nil
}

func (*MusicInfoProcessor) OnMessage(*model.Model, prompt.Prompter, lex.Token) ([]diag.Warning, []diag.Error) {
	return nil, nil
}
