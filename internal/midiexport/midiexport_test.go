package midiexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/chart"
	"github.com/go-bms/bmscore/internal/model"
)

func TestExportWritesNonEmptyFile(t *testing.T) {
	events := []chart.ChartEvent{
		{TimeSeconds: 0, Kind: chart.EventNoteVisible, Lane: model.Lane{Side: model.Player1, Index: 1}},
		{TimeSeconds: 0.5, Kind: chart.EventNoteLNStart, Lane: model.Lane{Side: model.Player1, Index: 2}},
		{TimeSeconds: 1.0, Kind: chart.EventNoteLNEnd, Lane: model.Lane{Side: model.Player1, Index: 2}},
		{TimeSeconds: 1.5, Kind: chart.EventBPMChange, Value: bmstime.MustParseDecimal("180")},
	}

	var buf bytes.Buffer
	err := Export(&buf, events, DefaultOptions(bmstime.MustParseDecimal("120")))
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
	assert.Equal(t, "MThd", string(buf.Bytes()[:4]))
}

func TestExportRejectsNonPositiveTempo(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, nil, Options{Tempo: bmstime.ZeroDecimal})
	assert.Error(t, err)
}
