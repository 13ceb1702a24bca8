// Package bmstime defines the rational time primitives BMS charts are
// measured in: tracks (measures), object times within a track, and the
// section-length multiplier that stretches or shrinks a track.
package bmstime

import "fmt"

// Track identifies a measure. Track(0) is legal but conventionally warned
// about by callers, since most BMS sources reserve it for header-only data.
type Track uint32

func (t Track) String() string {
	return fmt.Sprintf("%03d", uint32(t))
}
