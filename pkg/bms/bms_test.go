package bms

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

const sampleSource = `#TITLE Sample Chart
#ARTIST Someone
#BPM 150
#PLAYLEVEL 5
#WAV01 sound01.wav
#WAV02 sound02.wav
#BPM03 160
#00111:0102
#00208:0303
`

func mustID(s string) objid.ObjId {
	id, err := objid.Parse(s, false)
	if err != nil {
		panic(err)
	}
	return id
}

func TestParseBMSBasic(t *testing.T) {
	res := ParseBMS(sampleSource, ParseConfig{})
	require.Empty(t, res.ParseErrors)

	assert.Equal(t, "Sample Chart", res.Model.MusicInfo.Title)
	assert.Equal(t, "Someone", res.Model.MusicInfo.Artist)
	assert.Equal(t, 5, res.Model.Header.PlayLevel)
	assert.Equal(t, "150", res.Model.Arrangers.InitialBPM.String())
	assert.Equal(t, "sound01.wav", res.Model.Wav.Defs[mustID("01")])
	assert.Equal(t, "sound02.wav", res.Model.Wav.Defs[mustID("02")])
	assert.NotEmpty(t, res.Model.Notes.Events)
}

func TestParseBMSDefaultPrompterWarnsOnDuplicate(t *testing.T) {
	src := "#WAV01 a.wav\n#WAV01 b.wav\n"
	res := ParseBMS(src, ParseConfig{})
	assert.NotEmpty(t, res.ParseWarnings)
	assert.Equal(t, "b.wav", res.Model.Wav.Defs[mustID("01")])
}

// renderTokens turns Unparse's token slice back into BMS source text, the
// way a caller driving the round-trip law (spec.md §8 invariant 1) would:
// Unparse never claims to reproduce byte-identical source, only a model
// equal after a second parse.
func renderTokens(t *testing.T, toks []lex.Token) string {
	t.Helper()
	var b strings.Builder
	for _, tok := range toks {
		switch tok.Kind {
		case lex.TokenHeader:
			fmt.Fprintf(&b, "#%s %s\n", tok.HeaderName, tok.HeaderArgs)
		case lex.TokenMessage:
			fmt.Fprintf(&b, "#%s%s:%s\n", tok.Track, tok.Channel.Code, tok.Message)
		case lex.TokenNotACommand:
			fmt.Fprintf(&b, "%s\n", tok.Text)
		}
	}
	return b.String()
}

func reparse(t *testing.T, m *model.Model) *model.Model {
	t.Helper()
	src := renderTokens(t, Unparse(m))
	res := ParseBMS(src, ParseConfig{})
	require.Empty(t, res.ParseErrors, "reparse produced errors for:\n%s", src)
	return res.Model
}

func TestUnparseThenReparsePreservesHeaderFields(t *testing.T) {
	res := ParseBMS(sampleSource, ParseConfig{})
	require.Empty(t, res.ParseErrors)

	rebuilt := reparse(t, res.Model)

	assert.Equal(t, res.Model.MusicInfo.Title, rebuilt.MusicInfo.Title)
	assert.Equal(t, res.Model.MusicInfo.Artist, rebuilt.MusicInfo.Artist)
	assert.Equal(t, res.Model.Header.PlayLevel, rebuilt.Header.PlayLevel)
	assert.Equal(t, res.Model.Arrangers.InitialBPM.String(), rebuilt.Arrangers.InitialBPM.String())
	assert.Equal(t, res.Model.Wav.Defs, rebuilt.Wav.Defs)
}

func TestUnparseReconstructsNoteEvents(t *testing.T) {
	res := ParseBMS(sampleSource, ParseConfig{})
	require.Empty(t, res.ParseErrors)

	rebuilt := reparse(t, res.Model)

	assert.Equal(t, len(res.Model.Notes.Events), len(rebuilt.Notes.Events))
	for at, byLane := range res.Model.Notes.Events {
		rebuiltLanes, ok := rebuilt.Notes.Events[at]
		if assert.True(t, ok, "missing track entry for %s", at) {
			assert.Equal(t, byLane, rebuiltLanes)
		}
	}
}

func TestUnparseRoundTripsLongNotes(t *testing.T) {
	src := "#LNTYPE 1\n#WAV01 a.wav\n#00141:0101\n"
	res := ParseBMS(src, ParseConfig{})
	require.Empty(t, res.ParseErrors)
	require.NotEmpty(t, res.Model.Notes.LongNotes)

	rebuilt := reparse(t, res.Model)
	assert.Equal(t, res.Model.Notes.LongNotes, rebuilt.Notes.LongNotes)
}

func TestChartProcessorExposesResources(t *testing.T) {
	res := ParseBMS(sampleSource, ParseConfig{})
	require.Empty(t, res.ParseErrors)

	cp := NewChartProcessor(res.Model)
	audio := cp.AudioFiles()
	assert.Equal(t, "sound01.wav", audio[mustID("01")])
	assert.NotEmpty(t, cp.Events())
}
