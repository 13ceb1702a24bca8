package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
)

// Volume holds #VOLWAV and the per-event bgm/key volume channels
// (spec.md §4.3 item 11). Volume percentages are stored as plain u8s;
// duplicates are last-write-wins without prompter involvement, since a
// volume channel event is a direct override rather than a competing
// definition.
type Volume struct {
	DefaultVolWav   *int
	BgmVolumeEvents map[bmstime.ObjTime]uint8
	KeyVolumeEvents map[bmstime.ObjTime]uint8
}

func newVolume() Volume {
	return Volume{
		BgmVolumeEvents: make(map[bmstime.ObjTime]uint8),
		KeyVolumeEvents: make(map[bmstime.ObjTime]uint8),
	}
}
