package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-bms/bmscore/internal/diag"
)

func TestRenderNoDiagnostics(t *testing.T) {
	out := Render(Report{Filename: "song.bms"})
	assert.Contains(t, out, "song.bms")
	assert.Contains(t, out, "no diagnostics")
}

func TestRenderIncludesMessageAndSnippet(t *testing.T) {
	source := "#PLAYER 1\n#BAD_HEADER oops\n"
	badOffset := strings.Index(source, "#BAD_HEADER")
	r := Report{
		Filename: "song.bms",
		Source:   source,
		Warnings: []diag.Warning{
			diag.New(diag.UnknownHeader, 2, 1, diag.Range{Start: badOffset, End: badOffset + 11}, "unrecognized header %q", "BAD_HEADER"),
		},
	}
	out := Render(r)
	assert.Contains(t, out, "unrecognized header")
	assert.Contains(t, out, "2:1")
	assert.Contains(t, out, "#BAD_HEADER oops")
}

func TestRenderIncludesErrors(t *testing.T) {
	r := Report{
		Filename: "song.bms",
		Errors: []diag.Error{
			diag.NewError(diag.InvariantViolation, diag.Range{Start: -1}, "long note never closed"),
		},
	}
	out := Render(r)
	assert.Contains(t, out, "long note never closed")
}

func TestExtractSnippetOutOfRange(t *testing.T) {
	assert.Equal(t, "", extractSnippet("abc", diag.Range{Start: 50}))
}

func TestSeverityGradientClampsToEndpoints(t *testing.T) {
	below := severityGradient(-1)
	warn := severityGradient(0)
	assert.Equal(t, warn, below)

	above := severityGradient(2)
	errColor := severityGradient(1)
	assert.Equal(t, errColor, above)
}
