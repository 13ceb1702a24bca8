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

func TestArrangersInitialBPM(t *testing.T) {
	m := model.New()
	proc := &ArrangersProcessor{}
	warnings, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "BPM", "180")
	assert.Empty(t, warnings)
	assert.Empty(t, errs)
	assert.Equal(t, bmstime.MustParseDecimal("180"), m.Arrangers.InitialBPM)
}

func TestArrangersDefinedBPMChange(t *testing.T) {
	m := model.New()
	proc := &ArrangersProcessor{}
	_, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "BPM01", "240")
	require.Empty(t, errs)
	id := mustID(t, "01")
	assert.Equal(t, bmstime.MustParseDecimal("240"), m.Arrangers.BPMDefs[id])

	tok := lex.Token{Kind: lex.TokenMessage, Track: bmstime.Track(1), Channel: mustChannel(t, "08"), Message: "01"}
	w, e := proc.OnMessage(m, prompt.PanicAndUseNewer{}, tok)
	assert.Empty(t, w)
	assert.Empty(t, e)
	bpm, ok := m.Arrangers.BPMChanges[bmstime.NewObjTime(bmstime.Track(1), 0, 1)]
	require.True(t, ok)
	assert.Equal(t, bmstime.MustParseDecimal("240"), bpm)
}

func TestArrangersHexBPMChannel(t *testing.T) {
	m := model.New()
	proc := &ArrangersProcessor{}
	tok := lex.Token{Kind: lex.TokenMessage, Track: bmstime.Track(2), Channel: mustChannel(t, "03"), Message: "FF"}
	_, errs := proc.OnMessage(m, prompt.PanicAndUseNewer{}, tok)
	assert.Empty(t, errs)
	bpm, ok := m.Arrangers.BPMChanges[bmstime.NewObjTime(bmstime.Track(2), 0, 1)]
	require.True(t, ok)
	assert.Equal(t, bmstime.DecimalFromInt(255), bpm)
}

func TestArrangersStpEvent(t *testing.T) {
	m := model.New()
	proc := &ArrangersProcessor{}
	_, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "STP", "001.500 5000")
	require.Empty(t, errs)
	v, ok := m.Stops.StpEvents[bmstime.NewObjTime(bmstime.Track(1), 500, 1000)]
	require.True(t, ok)
	assert.Equal(t, bmstime.MustParseDecimal("5000"), v)
}

func TestArrangersUndefinedStopReferenceWarns(t *testing.T) {
	m := model.New()
	proc := &ArrangersProcessor{}
	tok := lex.Token{Kind: lex.TokenMessage, Track: bmstime.Track(1), Channel: mustChannel(t, "09"), Message: "01"}
	warnings, _ := proc.OnMessage(m, prompt.PanicAndUseNewer{}, tok)
	assert.Len(t, warnings, 1)
}

func mustChannel(t *testing.T, code string) lex.Channel {
	t.Helper()
	ch, ok := lex.ParseChannel(code)
	require.True(t, ok)
	return ch
}
