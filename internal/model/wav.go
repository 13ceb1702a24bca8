package model

import "github.com/go-bms/bmscore/internal/objid"

// WavObjects holds the #WAVxx/#EXWAVxx definitions and #WAVCMD overrides
// (spec.md §3 "WavObjects"). The note events that reference these ids
// live in Notes, not here.
type WavObjects struct {
	Defs   map[objid.ObjId]string
	ExDefs map[objid.ObjId]WavExDef
	WavCmd []WavCmdEntry
}

// WavExDef is an #EXWAVxx definition: the same id-to-path mapping as
// #WAVxx plus the optional pan/volume/frequency parameter string that
// follows the path, kept verbatim since the parameter grammar is
// implementation-defined per player.
type WavExDef struct {
	Path   string
	Params string
}

// WavCmdEntry is a single #WAVCMD line: an in-place pitch/volume/time
// override applied to one wav id.
type WavCmdEntry struct {
	Param uint32
	ID    objid.ObjId
	Value uint32
}

func newWavObjects() WavObjects {
	return WavObjects{
		Defs:   make(map[objid.ObjId]string),
		ExDefs: make(map[objid.ObjId]WavExDef),
	}
}
