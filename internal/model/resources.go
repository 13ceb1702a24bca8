package model

// Resources holds companion-file references that are not WAV/BMP
// definitions (spec.md §3 "Resources", supplemented per SPEC_FULL.md §C
// from original_source/src/bms/model/resource.rs).
type Resources struct {
	MidiFile      string
	CDDA          []int
	MaterialsWav  []string
	MaterialsBmp  []string
	MaterialsPath string
}

// Sprites holds the still-image companion resources (SPEC_FULL.md §C).
type Sprites struct {
	BackBmp       string
	StageFile     string
	Banner        string
	CharFile      string
	ExtCharEvents []string
}
