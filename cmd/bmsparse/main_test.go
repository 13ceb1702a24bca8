package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `#TITLE Sample
#ARTIST Someone
#BPM 150
#WAV01 a.wav
#00111:0101
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bms")
	require.NoError(t, os.WriteFile(path, []byte(sampleChart), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmdPrintsSummary(t *testing.T) {
	path := writeSample(t)
	out, err := runCmd(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "title:      Sample")
	assert.Contains(t, out, "artist:     Someone")
	assert.Contains(t, out, "bpm:        150")
}

func TestUnparseCmdWritesRenderedSource(t *testing.T) {
	path := writeSample(t)
	out, err := runCmd(t, "unparse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "#TITLE Sample")
	assert.Contains(t, out, "#WAV01 a.wav")
}

func TestUnparseCmdWritesToFile(t *testing.T) {
	path := writeSample(t)
	outPath := filepath.Join(filepath.Dir(path), "out.bms")
	_, err := runCmd(t, "unparse", path, "-o", outPath)
	require.NoError(t, err)
	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "#TITLE Sample")
}

func TestDiagnoseCmdPrintsPlainText(t *testing.T) {
	path := writeSample(t)
	out, err := runCmd(t, "diagnose", path)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestWavCheckCmdReportsMissingFile(t *testing.T) {
	path := writeSample(t)
	out, err := runCmd(t, "wav-check", path, "--base-dir", filepath.Dir(path))
	require.Error(t, err)
	assert.Contains(t, out, "FAILED")
}

func TestMidiExportCmdWritesFile(t *testing.T) {
	path := writeSample(t)
	outPath := filepath.Join(filepath.Dir(path), "out.mid")
	_, err := runCmd(t, "midi-export", path, "-o", outPath)
	require.NoError(t, err)
	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestParseCmdAcceptsBmsonInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bmson")
	doc := `{"version":"1.0.0","info":{"title":"Json Chart","artist":"Someone","init_bpm":130,"resolution":240}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := runCmd(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "title:      Json Chart")
	assert.Contains(t, out, "bpm:        130")
}

func TestStrictFlagWarnsOnRelaxedForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relaxed.bms")
	require.NoError(t, os.WriteFile(path, []byte("#RANDOM2\n#IF1\n#TITLE A\n#ENDIF\n#ENDRANDOM\n"), 0o644))

	lenient, err := runCmd(t, "parse", path)
	require.NoError(t, err)
	strict, err := runCmd(t, "--strict", "parse", path)
	require.NoError(t, err)

	assert.Contains(t, lenient, "lex warnings:   0")
	assert.NotContains(t, strict, "lex warnings:   0")
}
