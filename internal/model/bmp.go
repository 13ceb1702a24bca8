package model

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/objid"
)

// BmpObjects holds #BMPxx definitions and the BGA layer events that
// reference them (spec.md §3 "BmpObjects").
type BmpObjects struct {
	Defs          map[objid.ObjId]string
	BgaBaseEvents map[bmstime.ObjTime]objid.ObjId
	BgaLayerEvents map[bmstime.ObjTime]objid.ObjId
	PoorBgaEvents map[bmstime.ObjTime]objid.ObjId

	// SwBga/Argb hold the #SWBGA/#ARGB extended-BGA parameter strings,
	// keyed by the id they modify. The grammar for these is player-
	// specific and is preserved verbatim rather than parsed further.
	SwBga map[objid.ObjId]string
	Argb  map[objid.ObjId]string

	// ExtBga holds #BGAxx extended-BGA definitions: a new id cropped out
	// of an existing one, kept as the raw parameter string (source id,
	// crop rect, draw offset) since that grammar is player-specific.
	ExtBga map[objid.ObjId]string
}

func newBmpObjects() BmpObjects {
	return BmpObjects{
		Defs:           make(map[objid.ObjId]string),
		BgaBaseEvents:  make(map[bmstime.ObjTime]objid.ObjId),
		BgaLayerEvents: make(map[bmstime.ObjTime]objid.ObjId),
		PoorBgaEvents:  make(map[bmstime.ObjTime]objid.ObjId),
		SwBga:          make(map[objid.ObjId]string),
		Argb:           make(map[objid.ObjId]string),
		ExtBga:         make(map[objid.ObjId]string),
	}
}
