package bmstime

import "fmt"

// ObjTime is a rational position (track, numerator/denominator) on the
// score. Two ObjTimes with the same rational value compare equal
// regardless of how the fraction is reduced.
type ObjTime struct {
	Track       Track
	Numerator   uint32
	Denominator uint32
}

// NewObjTime builds an ObjTime, panicking on an invalid fraction. Track(0)
// is accepted here; counting it is the caller's job (see model.Model.NoteTrackZero).
func NewObjTime(track Track, numerator, denominator uint32) ObjTime {
	if denominator == 0 {
		panic("bmstime: denominator must be greater than zero")
	}
	if numerator >= denominator {
		panic("bmstime: numerator must be less than denominator")
	}
	return ObjTime{Track: track, Numerator: numerator, Denominator: denominator}
}

// Compare orders ObjTime primarily by Track, then by cross-multiplied
// fraction so that denominators never need to match.
func (t ObjTime) Compare(other ObjTime) int {
	if t.Track != other.Track {
		if t.Track < other.Track {
			return -1
		}
		return 1
	}
	left := uint64(t.Numerator) * uint64(other.Denominator)
	right := uint64(other.Numerator) * uint64(t.Denominator)
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Less reports whether t sorts before other.
func (t ObjTime) Less(other ObjTime) bool { return t.Compare(other) < 0 }

// Equal reports whether t and other denote the same rational position.
func (t ObjTime) Equal(other ObjTime) bool { return t.Compare(other) == 0 }

func (t ObjTime) String() string {
	return fmt.Sprintf("%s.%d/%d", t.Track, t.Numerator, t.Denominator)
}
