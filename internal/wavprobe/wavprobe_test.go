package wavprobe

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

// writeMinimalPCMWav builds a tiny mono 16-bit PCM WAV file by hand (no
// encoder dependency needed just to exercise the decode-and-measure path).
func writeMinimalPCMWav(t *testing.T, path string, sampleRate uint32, frames int) {
	t.Helper()
	dataSize := uint32(frames * 2) // 16-bit mono: 2 bytes per frame

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, sampleRate*2) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))    // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))   // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLengthMeasuresPCMDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kick.wav")
	writeMinimalPCMWav(t, path, 8000, 4000) // 4000 frames at 8kHz = 0.5s

	seconds, rate, err := Length(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, seconds, 1e-9)
	assert.Equal(t, int64(8000), rate)
}

func TestLengthRejectsMissingFile(t *testing.T) {
	_, _, err := Length(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestLengthRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))
	_, _, err := Length(path)
	assert.Error(t, err)
}

func TestProbeReportsPerDefinitionResults(t *testing.T) {
	dir := t.TempDir()
	writeMinimalPCMWav(t, filepath.Join(dir, "kick.wav"), 8000, 800)

	wavs := model.WavObjects{Defs: map[objid.ObjId]string{
		mustID(t, "01"): "kick.wav",
		mustID(t, "02"): "missing.wav",
	}}
	results := Probe(wavs, dir)
	require.Len(t, results, 2)

	byPath := make(map[string]Result, len(results))
	for _, r := range results {
		byPath[r.Path] = r
	}
	assert.NoError(t, byPath["kick.wav"].Err)
	assert.InDelta(t, 0.1, byPath["kick.wav"].Seconds, 1e-9)
	assert.Error(t, byPath["missing.wav"].Err)
}

func mustID(t *testing.T, s string) objid.ObjId {
	t.Helper()
	id, err := objid.Parse(s, false)
	require.NoError(t, err)
	return id
}
