package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

func mustID(t *testing.T, s string) objid.ObjId {
	t.Helper()
	id, err := objid.Parse(s, false)
	require.NoError(t, err)
	return id
}

func TestInsertWavNoCollision(t *testing.T) {
	m := New()
	id := mustID(t, "01")
	warnings, errs := m.InsertWav(prompt.PanicAndUseNewer{}, id, "01", "hoge.wav")
	assert.Empty(t, warnings)
	assert.Empty(t, errs)
	assert.Equal(t, "hoge.wav", m.Wav.Defs[id])
}

func TestInsertWavDuplicateWarnAndUseOlder(t *testing.T) {
	m := New()
	id := mustID(t, "01")
	_, _ = m.InsertWav(prompt.AlwaysWarnAndUseOlder{}, id, "01", "hoge.wav")
	warnings, errs := m.InsertWav(prompt.AlwaysWarnAndUseOlder{}, id, "01", "fuga.wav")
	require.Len(t, warnings, 1)
	assert.Empty(t, errs)
	assert.Equal(t, "hoge.wav", m.Wav.Defs[id])
}

// TestBase62CaseFolding reproduces scenario S1 in spec.md §8: without
// #BASE 62, #WAVaa and #WAVAA collide into a single slot.
func TestBase62CaseFolding(t *testing.T) {
	idLower, err := objid.Parse("aa", false)
	require.NoError(t, err)
	idUpper, err := objid.Parse("AA", false)
	require.NoError(t, err)
	assert.Equal(t, idUpper, idLower)
}

// TestInsertWavDuplicateDefaultPrompterNewerWins completes scenario S1:
// the colliding #WAVaa/#WAVAA slot resolves to the later definition
// under the package's default prompter (prompt.AlwaysWarnAndUseNewer).
func TestInsertWavDuplicateDefaultPrompterNewerWins(t *testing.T) {
	m := New()
	id := mustID(t, "aa")
	_, _ = m.InsertWav(prompt.AlwaysWarnAndUseNewer{}, id, "aa", "hoge.wav")
	warnings, errs := m.InsertWav(prompt.AlwaysWarnAndUseNewer{}, id, "AA", "fuga.wav")
	require.Len(t, warnings, 1)
	assert.Empty(t, errs)
	assert.Equal(t, "fuga.wav", m.Wav.Defs[id])
}

func TestInsertBmpDuplicateNewerWins(t *testing.T) {
	m := New()
	id := mustID(t, "02")
	_, _ = m.InsertBmp(prompt.AlwaysUseNewer{}, id, "02", "first.bmp")
	_, _ = m.InsertBmp(prompt.AlwaysUseNewer{}, id, "02", "second.bmp")
	assert.Equal(t, "second.bmp", m.Bmp.Defs[id])
}

func TestNotesLongNotePairing(t *testing.T) {
	m := New()
	lane := Lane{Side: Player1, Index: 1}
	start := bmstime.NewObjTime(1, 0, 4)
	end := bmstime.NewObjTime(1, 2, 4)
	id := mustID(t, "01")

	_, errs := m.Notes.Insert(prompt.PanicAndUseNewer{}, start, lane, NoteEvent{ID: id, Kind: NoteLNStart})
	require.Empty(t, errs)
	_, errs = m.Notes.Insert(prompt.PanicAndUseNewer{}, end, lane, NoteEvent{ID: id, Kind: NoteLNEnd})
	require.Empty(t, errs)

	require.Len(t, m.Notes.LongNotes[lane], 1)
	assert.Equal(t, start, m.Notes.LongNotes[lane][0].Start)
	assert.Equal(t, end, m.Notes.LongNotes[lane][0].End)
	assert.Empty(t, m.Notes.Finalize())
}

func TestNotesUnterminatedLongNoteIsInvariantViolation(t *testing.T) {
	m := New()
	lane := Lane{Side: Player1, Index: 1}
	id := mustID(t, "01")
	_, errs := m.Notes.Insert(prompt.PanicAndUseNewer{}, bmstime.NewObjTime(1, 0, 4), lane, NoteEvent{ID: id, Kind: NoteLNStart})
	require.Empty(t, errs)

	finalErrs := m.Notes.Finalize()
	require.Len(t, finalErrs, 1)
}

func TestStopObjectsMergeDurationsAtSameTime(t *testing.T) {
	s := newStopObjects()
	t1 := bmstime.NewObjTime(1, 0, 4)
	s.InsertStop(t1, mustID(t, "01"), bmstime.DecimalFromInt(4))
	s.InsertStop(t1, mustID(t, "02"), bmstime.DecimalFromInt(8))
	assert.Equal(t, bmstime.DecimalFromInt(12).String(), s.Stops[t1].Duration.String())
}

// TestTrackZeroSummaryWarning reproduces the SPEC_FULL.md §E.3 decision:
// Track(0) usage collapses to one warning per parse, not one per line.
func TestTrackZeroSummaryWarning(t *testing.T) {
	m := New()
	m.NoteTrackZero()
	m.NoteTrackZero()
	m.NoteTrackZero()
	warnings, errs := m.Finalize()
	assert.Empty(t, errs)
	require.Len(t, warnings, 1)
}

// TestRekeyForLateBase62 reproduces the SPEC_FULL.md §E.2 decision: a
// #BASE 62 that appears after an ambiguous id was already folded
// case-insensitively is resolved once at Finalize.
func TestRekeyForLateBase62(t *testing.T) {
	m := New()
	foldedID, err := objid.Parse("aa", false) // folds to "AA" while #BASE 62 hasn't been seen yet
	require.NoError(t, err)
	_, _ = m.InsertWav(prompt.PanicAndUseNewer{}, foldedID, "aa", "hoge.wav")

	m.Representation.CaseSensitive = true // #BASE 62 declared later in the source
	warnings, errs := m.Finalize()
	assert.Empty(t, errs)
	assert.Empty(t, warnings)

	sensitiveID, err := objid.Parse("aa", true)
	require.NoError(t, err)
	assert.Equal(t, "hoge.wav", m.Wav.Defs[sensitiveID])
	_, stillAtFolded := m.Wav.Defs[foldedID]
	assert.False(t, stillAtFolded)
}
