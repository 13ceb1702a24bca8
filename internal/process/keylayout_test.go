package process

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-bms/bmscore/internal/model"
)

func TestBeat7KLayoutRoundTrips(t *testing.T) {
	layout := Beat7KLayout{}
	for raw := byte('1'); raw <= '8'; raw++ {
		lane, ok := layout.MapLane(model.Player1, raw)
		assert.True(t, ok)
		back, ok := layout.ReverseLane(lane)
		assert.True(t, ok)
		assert.Equal(t, raw, back)
	}
}

func TestBeat5KLayoutRoundTrips(t *testing.T) {
	layout := Beat5KLayout{}
	for raw := byte('1'); raw <= '6'; raw++ {
		lane, ok := layout.MapLane(model.Player1, raw)
		assert.True(t, ok)
		back, ok := layout.ReverseLane(lane)
		assert.True(t, ok)
		assert.Equal(t, raw, back)
	}
}

func TestPopnLayoutRoundTrips(t *testing.T) {
	layout := PopnLayout{}
	for raw := byte('1'); raw <= '9'; raw++ {
		lane, ok := layout.MapLane(model.Player1, raw)
		assert.True(t, ok)
		back, ok := layout.ReverseLane(lane)
		assert.True(t, ok)
		assert.Equal(t, raw, back)
	}
}

func TestPopnLayoutRejectsScratch(t *testing.T) {
	_, ok := PopnLayout{}.MapLane(model.Player1, '0')
	assert.False(t, ok)
}
