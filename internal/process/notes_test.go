package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

func noteToken(code string, track uint32, message string) lex.Token {
	ch, ok := lex.ParseChannel(code)
	if !ok {
		panic("bad test channel code " + code)
	}
	return lex.Token{Kind: lex.TokenMessage, Track: bmstime.Track(track), Channel: ch, Message: message}
}

func TestNotesProcessorVisibleNote(t *testing.T) {
	m := model.New()
	proc := &NotesProcessor{Layout: Beat7KLayout{}}
	warnings, errs := proc.OnMessage(m, prompt.PanicAndUseNewer{}, noteToken("11", 1, "01"))
	assert.Empty(t, warnings)
	assert.Empty(t, errs)
	lane := model.Lane{Side: model.Player1, Index: 1}
	ev, ok := m.Notes.Events[bmstime.NewObjTime(bmstime.Track(1), 0, 1)][lane]
	require.True(t, ok)
	assert.Equal(t, model.NoteVisible, ev.Kind)
}

func TestNotesProcessorUnknownKeyWarns(t *testing.T) {
	m := model.New()
	proc := &NotesProcessor{Layout: Beat5KLayout{}}
	// channel "17" is player-1 key 7, out of range for a 5-key layout.
	warnings, _ := proc.OnMessage(m, prompt.PanicAndUseNewer{}, noteToken("17", 1, "01"))
	assert.Len(t, warnings, 1)
}

func TestNotesProcessorLongNoteAlternates(t *testing.T) {
	m := model.New()
	proc := &NotesProcessor{Layout: Beat7KLayout{}}
	// channel "41" is player-1 long-note lane 1; two cells toggle start then end.
	_, errs := proc.OnMessage(m, prompt.PanicAndUseNewer{}, noteToken("41", 1, "0102"))
	require.Empty(t, errs)
	lane := model.Lane{Side: model.Player1, Index: 1}
	require.Len(t, m.Notes.LongNotes[lane], 1)
	span := m.Notes.LongNotes[lane][0]
	assert.Equal(t, bmstime.NewObjTime(bmstime.Track(1), 0, 2), span.Start)
	assert.Equal(t, bmstime.NewObjTime(bmstime.Track(1), 1, 2), span.End)
}

func TestNotesProcessorBgmAllowsMultipleSamples(t *testing.T) {
	m := model.New()
	proc := &NotesProcessor{Layout: Beat7KLayout{}}
	_, _ = proc.OnMessage(m, prompt.PanicAndUseNewer{}, noteToken("01", 1, "0102"))
	t0 := bmstime.NewObjTime(bmstime.Track(1), 0, 2)
	t1 := bmstime.NewObjTime(bmstime.Track(1), 1, 2)
	assert.Len(t, m.Notes.BgmEvents[t0], 1)
	assert.Len(t, m.Notes.BgmEvents[t1], 1)
}

func TestNotesProcessorTrackZeroCounted(t *testing.T) {
	m := model.New()
	proc := &NotesProcessor{Layout: Beat7KLayout{}}
	_, _ = proc.OnMessage(m, prompt.PanicAndUseNewer{}, noteToken("11", 0, "01"))
	warnings, _ := m.Finalize()
	assert.NotEmpty(t, warnings)
}
