package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/prompt"
)

func TestRepresentationBase62Accepted(t *testing.T) {
	m := model.New()
	proc := &RepresentationProcessor{}
	warnings, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "BASE", "62")
	assert.Empty(t, warnings)
	assert.Empty(t, errs)
	assert.True(t, m.Representation.CaseSensitive)
}

func TestRepresentationOtherBaseRejected(t *testing.T) {
	m := model.New()
	proc := &RepresentationProcessor{}
	warnings, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "BASE", "36")
	require.Len(t, errs, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.OutOfBase62, warnings[0].Kind)
	assert.False(t, m.Representation.CaseSensitive)
}

func TestRepresentationLNMode(t *testing.T) {
	m := model.New()
	proc := &RepresentationProcessor{}
	_, errs := proc.OnHeader(m, prompt.PanicAndUseNewer{}, "LNMODE", "2")
	require.Empty(t, errs)
	assert.Equal(t, model.LNModeCN, m.Representation.LNMode)
}
