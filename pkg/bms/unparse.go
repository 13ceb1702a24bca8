package bms

import (
	"fmt"
	"sort"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

// Unparse reconstructs a token stream for m whose own re-parse produces
// an equal model (spec.md §8 invariant 1, the round-trip law). The law
// binds the model, not the text: header order and section-length
// comments are not preserved, only the semantic content every aggregate
// carries.
func Unparse(m *model.Model) []lex.Token {
	refs := resolveArrangerRefs(m)
	var toks []lex.Token
	toks = append(toks, unparseHeaders(m, refs)...)
	toks = append(toks, unparseMessages(m, refs)...)
	toks = append(toks, unparseRaw(m)...)
	return toks
}

func header(name, args string) lex.Token {
	return lex.Token{Kind: lex.TokenHeader, HeaderName: name, HeaderArgs: args}
}

func headerID(name string, id objid.ObjId, args string) lex.Token {
	return header(name+id.String(), args)
}

func unparseHeaders(m *model.Model, refs resolvedRefs) []lex.Token {
	var toks []lex.Token

	// MusicInfo / Header (MusicInfo.Title/Artist are authoritative;
	// Header.Title/Artist are mirrors MusicInfoProcessor keeps in sync).
	if m.MusicInfo.Genre != "" {
		toks = append(toks, header("GENRE", m.MusicInfo.Genre))
	}
	if m.MusicInfo.Title != "" {
		toks = append(toks, header("TITLE", m.MusicInfo.Title))
	}
	if m.MusicInfo.Subtitle != "" {
		toks = append(toks, header("SUBTITLE", m.MusicInfo.Subtitle))
	}
	if m.MusicInfo.Artist != "" {
		toks = append(toks, header("ARTIST", m.MusicInfo.Artist))
	}
	if m.MusicInfo.SubArtist != "" {
		toks = append(toks, header("SUBARTIST", m.MusicInfo.SubArtist))
	}
	for _, c := range m.MusicInfo.Comments {
		toks = append(toks, header("COMMENT", c))
	}
	if m.MusicInfo.Maker != "" {
		toks = append(toks, header("MAKER", m.MusicInfo.Maker))
	}
	if m.MusicInfo.PreviewMusic != "" {
		toks = append(toks, header("PREVIEW", m.MusicInfo.PreviewMusic))
	}

	if m.Header.Player != 0 {
		toks = append(toks, header("PLAYER", fmt.Sprint(m.Header.Player)))
	}
	if m.Header.Difficulty != 0 {
		toks = append(toks, header("DIFFICULTY", fmt.Sprint(m.Header.Difficulty)))
	}
	if m.Header.PlayLevel != 0 {
		toks = append(toks, header("PLAYLEVEL", fmt.Sprint(m.Header.PlayLevel)))
	}
	if m.Header.Email != "" {
		toks = append(toks, header("EMAIL", m.Header.Email))
	}
	if m.Header.URL != "" {
		toks = append(toks, header("URL", m.Header.URL))
	}
	if m.Header.PathWav != "" {
		toks = append(toks, header("PATH_WAV", m.Header.PathWav))
	}
	if m.Header.DivideProp != "" {
		toks = append(toks, header("DIVIDEPROP", m.Header.DivideProp))
	}

	if m.Resources.MidiFile != "" {
		toks = append(toks, header("MIDIFILE", m.Resources.MidiFile))
	}
	for _, v := range m.Resources.CDDA {
		toks = append(toks, header("CDDA", fmt.Sprint(v)))
	}
	for _, v := range m.Resources.MaterialsWav {
		toks = append(toks, header("MATERIALSWAV", v))
	}
	for _, v := range m.Resources.MaterialsBmp {
		toks = append(toks, header("MATERIALSBMP", v))
	}
	if m.Resources.MaterialsPath != "" {
		toks = append(toks, header("MATERIALS", m.Resources.MaterialsPath))
	}

	if m.Sprites.BackBmp != "" {
		toks = append(toks, header("BACKBMP", m.Sprites.BackBmp))
	}
	if m.Sprites.StageFile != "" {
		toks = append(toks, header("STAGEFILE", m.Sprites.StageFile))
	}
	if m.Sprites.Banner != "" {
		toks = append(toks, header("BANNER", m.Sprites.Banner))
	}
	if m.Sprites.CharFile != "" {
		toks = append(toks, header("CHARFILE", m.Sprites.CharFile))
	}
	for _, v := range m.Sprites.ExtCharEvents {
		toks = append(toks, header("EXTCHR", v))
	}

	// Representation bookkeeping.
	if m.Representation.CaseSensitive {
		toks = append(toks, header("BASE", "62"))
	}
	switch m.Representation.LNMode {
	case model.LNModeCN:
		toks = append(toks, header("LNMODE", "2"))
	case model.LNModeHCN:
		toks = append(toks, header("LNMODE", "3"))
	}
	if m.Representation.LNType != 0 {
		toks = append(toks, header("LNTYPE", fmt.Sprint(m.Representation.LNType)))
	}

	// Wav / Bmp definitions.
	for _, id := range sortedIDs(m.Wav.Defs) {
		toks = append(toks, headerID("WAV", id, m.Wav.Defs[id]))
	}
	for _, id := range sortedIDs(m.Wav.ExDefs) {
		def := m.Wav.ExDefs[id]
		toks = append(toks, headerID("EXWAV", id, joinNonEmpty(def.Params, def.Path)))
	}
	for _, cmd := range m.Wav.WavCmd {
		toks = append(toks, header("WAVCMD", fmt.Sprintf("%d %s %d", cmd.Param, cmd.ID, cmd.Value)))
	}
	for _, id := range sortedIDs(m.Bmp.Defs) {
		toks = append(toks, headerID("BMP", id, m.Bmp.Defs[id]))
	}
	for _, id := range sortedIDs(m.Bmp.ExtBga) {
		toks = append(toks, header("BGA"+id.String(), m.Bmp.ExtBga[id]))
	}
	for _, id := range sortedIDs(m.Bmp.SwBga) {
		toks = append(toks, header("SWBGA", id.String()+" "+m.Bmp.SwBga[id]))
	}
	for _, id := range sortedIDs(m.Bmp.Argb) {
		toks = append(toks, header("ARGB", id.String()+" "+m.Bmp.Argb[id]))
	}

	// Arrangers.
	toks = append(toks, header("BPM", m.Arrangers.InitialBPM.String()))
	for _, id := range sortedDecimalIDs(m.Arrangers.BPMDefs) {
		toks = append(toks, headerID("BPM", id, m.Arrangers.BPMDefs[id].String()))
	}
	for _, id := range sortedDecimalIDs(m.Arrangers.ScrollDefs) {
		toks = append(toks, headerID("SCROLL", id, m.Arrangers.ScrollDefs[id].String()))
	}
	for _, id := range sortedDecimalIDs(m.Arrangers.SpeedDefs) {
		toks = append(toks, headerID("SPEED", id, m.Arrangers.SpeedDefs[id].String()))
	}

	// Stops.
	for _, id := range sortedDecimalIDs(m.Stops.StopDefs) {
		toks = append(toks, headerID("STOP", id, m.Stops.StopDefs[id].String()))
	}
	// Values used by a change/event but missing from their def table (e.g.
	// ones that arrived through a direct-value channel rather than an id
	// reference) get a synthesized def here so the reference channels
	// below still have something to point at.
	toks = append(toks, refs.extraHeaders...)
	for _, t := range sortedTimes(m.Stops.StpEvents) {
		toks = append(toks, header("STP", fmt.Sprintf("%s.%03d %s", t.Track, t.Numerator*1000/t.Denominator, m.Stops.StpEvents[t].String())))
	}

	// Option / Judge / Video / Volume / Text definitions.
	for _, o := range m.Options.Options {
		toks = append(toks, header("OPTION", o))
	}
	for _, id := range sortedStringIDs(m.Options.ChangeOptions) {
		toks = append(toks, headerID("CHANGEOPTION", id, m.Options.ChangeOptions[id]))
	}
	if m.Judge.Rank != nil {
		toks = append(toks, header("RANK", fmt.Sprint(int(*m.Judge.Rank))))
	}
	if m.Judge.Total != nil {
		toks = append(toks, header("TOTAL", m.Judge.Total.String()))
	}
	for _, id := range sortedJudgeIDs(m.Judge.ExRankDefs) {
		toks = append(toks, headerID("EXRANK", id, fmt.Sprint(int(m.Judge.ExRankDefs[id]))))
	}
	if m.Video.VideoFile != "" {
		toks = append(toks, header("VIDEOFILE", m.Video.VideoFile))
	}
	if m.Video.VideoDelay != nil {
		toks = append(toks, header("VIDEODLY", m.Video.VideoDelay.String()))
	}
	if m.Video.VideoFrameRate != nil {
		toks = append(toks, header("VIDEOFPS", m.Video.VideoFrameRate.String()))
	}
	if m.Video.VideoColors != nil {
		toks = append(toks, header("VIDEOCOLORS", fmt.Sprint(*m.Video.VideoColors)))
	}
	for _, id := range sortedDecimalIDs(m.Video.SeekDefs) {
		toks = append(toks, headerID("SEEK", id, m.Video.SeekDefs[id].String()))
	}
	if m.Volume.DefaultVolWav != nil {
		toks = append(toks, header("VOLWAV", fmt.Sprint(*m.Volume.DefaultVolWav)))
	}
	for _, id := range sortedStringIDs(m.Texts.Texts) {
		toks = append(toks, headerID("TEXT", id, m.Texts.Texts[id]))
	}

	return toks
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

// unparseRaw emits the handful of lines the processor pipeline never
// turns into a canonical field (e.g. #POORBGA, a display-mode flag
// rather than an id-keyed definition) verbatim, so a second parse still
// sees them.
func unparseRaw(m *model.Model) []lex.Token {
	var toks []lex.Token
	for _, line := range m.Representation.RawCommandLines {
		name, args := splitCommandLine(line)
		toks = append(toks, header(name, args))
	}
	for _, line := range m.Representation.RawTrivia {
		toks = append(toks, lex.Token{Kind: lex.TokenNotACommand, Text: line})
	}
	return toks
}

func splitCommandLine(line string) (name, args string) {
	line = trimLeadingHash(line)
	for i, r := range line {
		if r == ' ' {
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}

func trimLeadingHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func sortedTimes[V any](m map[bmstime.ObjTime]V) []bmstime.ObjTime {
	out := make([]bmstime.ObjTime, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func sortedIDs[V any](m map[objid.ObjId]V) []objid.ObjId {
	out := make([]objid.ObjId, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedDecimalIDs(m map[objid.ObjId]bmstime.Decimal) []objid.ObjId { return sortedIDs(m) }

func sortedStringIDs(m map[objid.ObjId]string) []objid.ObjId { return sortedIDs(m) }

func sortedJudgeIDs(m map[objid.ObjId]model.JudgeLevel) []objid.ObjId { return sortedIDs(m) }
