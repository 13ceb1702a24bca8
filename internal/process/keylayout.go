package process

import "github.com/go-bms/bmscore/internal/model"

// KeyLayoutMapper decides which logical lane a note channel's raw lane
// digit belongs to for a given game style (spec.md §4.3 item 7). A
// mapper returns ok == false for a digit its style doesn't use, which
// drops the note with an UnknownChannel-style warning upstream.
type KeyLayoutMapper interface {
	MapLane(side model.PlayerSide, rawKey byte) (lane model.Lane, ok bool)
}

// ReverseKeyLayoutMapper is the optional inverse of KeyLayoutMapper: it
// recovers the raw channel-code digit a lane was originally decoded
// from. All three built-in layouts implement it. bms.Unparse does not
// call it; it rebuilds note channel codes from its own fixed lane-digit
// table.
type ReverseKeyLayoutMapper interface {
	KeyLayoutMapper
	ReverseLane(lane model.Lane) (rawKey byte, ok bool)
}

// Beat7KLayout is the 7-key-plus-turntable layout (IIDX-style). Index 0
// is reserved for the turntable/scratch lane.
type Beat7KLayout struct{}

func (Beat7KLayout) MapLane(side model.PlayerSide, rawKey byte) (model.Lane, bool) {
	switch {
	case rawKey >= '1' && rawKey <= '7':
		return model.Lane{Side: side, Index: int(rawKey - '0')}, true
	case rawKey == '8':
		return model.Lane{Side: side, Index: 0}, true // scratch
	default:
		return model.Lane{}, false
	}
}

func (Beat7KLayout) ReverseLane(lane model.Lane) (byte, bool) {
	switch {
	case lane.Index == 0:
		return '8', true
	case lane.Index >= 1 && lane.Index <= 7:
		return byte('0' + lane.Index), true
	default:
		return 0, false
	}
}

// Beat5KLayout is the 5-key-plus-turntable layout.
type Beat5KLayout struct{}

func (Beat5KLayout) MapLane(side model.PlayerSide, rawKey byte) (model.Lane, bool) {
	switch {
	case rawKey >= '1' && rawKey <= '5':
		return model.Lane{Side: side, Index: int(rawKey - '0')}, true
	case rawKey == '6':
		return model.Lane{Side: side, Index: 0}, true // scratch
	default:
		return model.Lane{}, false
	}
}

func (Beat5KLayout) ReverseLane(lane model.Lane) (byte, bool) {
	switch {
	case lane.Index == 0:
		return '6', true
	case lane.Index >= 1 && lane.Index <= 5:
		return byte('0' + lane.Index), true
	default:
		return 0, false
	}
}

// PopnLayout is the 9-key no-scratch layout (pop'n music style).
type PopnLayout struct{}

func (PopnLayout) MapLane(side model.PlayerSide, rawKey byte) (model.Lane, bool) {
	if rawKey >= '1' && rawKey <= '9' {
		return model.Lane{Side: side, Index: int(rawKey - '0')}, true
	}
	return model.Lane{}, false
}

func (PopnLayout) ReverseLane(lane model.Lane) (byte, bool) {
	if lane.Index >= 1 && lane.Index <= 9 {
		return byte('0' + lane.Index), true
	}
	return 0, false
}

// Double-play styles need no distinct mapper: the channel code already
// carries Player1/Player2 via its first digit (spec.md §6.1's 1x/2x
// channel ranges), so Beat5KLayout/Beat7KLayout already produce correct
// per-side lanes for DP charts.
