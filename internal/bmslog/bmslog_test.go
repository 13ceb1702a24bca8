package bmslog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.std.SetFlags(0) // drop timestamps for a deterministic assertion
	l.Debugf("x=%d", 1)
	l.Warnf("y=%d", 2)
	l.Errorf("z=%d", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "[debug] x=1", lines[0])
	assert.Equal(t, "[warn] y=2", lines[1])
	assert.Equal(t, "[error] z=3", lines[2])
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	l, f, err := Open("")
	assert.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, Discard, l)
}
