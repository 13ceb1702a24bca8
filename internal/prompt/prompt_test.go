package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionPredicates(t *testing.T) {
	assert.True(t, WarnAndUseOlder.Warns())
	assert.True(t, WarnAndUseNewer.Warns())
	assert.False(t, UseOlder.Warns())
	assert.False(t, UseNewer.Warns())

	assert.True(t, UseNewer.KeepsNewer())
	assert.True(t, WarnAndUseNewer.KeepsNewer())
	assert.False(t, UseOlder.KeepsNewer())
	assert.False(t, WarnAndUseOlder.KeepsNewer())
}

func TestAlwaysWarnAndUseOlder(t *testing.T) {
	p := AlwaysWarnAndUseOlder{}
	assert.Equal(t, WarnAndUseOlder, p.HandleDefDuplication(DefWav, "01"))
	assert.Equal(t, WarnAndUseOlder, p.HandleChannelDuplication(ChannelNote, "1:1/4"))
	assert.Equal(t, WarnAndUseOlder, p.HandleTrackDuplication(TrackSectionLen, "3"))
}

func TestAlwaysWarnAndUseNewer(t *testing.T) {
	p := AlwaysWarnAndUseNewer{}
	assert.Equal(t, WarnAndUseNewer, p.HandleDefDuplication(DefWav, "01"))
	assert.Equal(t, WarnAndUseNewer, p.HandleChannelDuplication(ChannelNote, "1:1/4"))
	assert.Equal(t, WarnAndUseNewer, p.HandleTrackDuplication(TrackSectionLen, "3"))
}

func TestSilentKeepsOlderWithoutWarning(t *testing.T) {
	p := Silent{}
	r := p.HandleDefDuplication(DefBmp, "0Z")
	assert.Equal(t, UseOlder, r)
	assert.False(t, r.Warns())
}

func TestPanicAndUseNewerPanics(t *testing.T) {
	p := PanicAndUseNewer{}
	assert.Panics(t, func() { p.HandleDefDuplication(DefWav, "01") })
	assert.Panics(t, func() { p.HandleChannelDuplication(ChannelNote, "1:0/1") })
	assert.Panics(t, func() { p.HandleTrackDuplication(TrackSectionLen, "0") })
}
