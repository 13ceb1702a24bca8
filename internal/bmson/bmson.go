// Package bmson decodes the BMSON JSON chart format (spec.md's "external
// collaborator" sibling to the line-oriented BMS source) into the same
// model.Model the BMS text pipeline produces, so both formats feed one
// downstream chart builder.
package bmson

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the root BMSON object. Field names mirror the BMSON v1.0.0
// grammar verbatim (snake_case via json tags) rather than translating to
// Go naming, since this is the wire format's own vocabulary.
type Document struct {
	Version       string        `json:"version"`
	Info          Info          `json:"info"`
	Lines         []BarLine     `json:"lines"`
	BpmEvents     []BPMEvent    `json:"bpm_events"`
	StopEvents    []StopEvent   `json:"stop_events"`
	SoundChannels []SoundChan   `json:"sound_channels"`
	Bga           BgaSection    `json:"bga"`
	ScrollEvents  []ScrollEvent `json:"scroll_events"`
}

// Info is the BMSON header block, analogous to BMS's Header+MusicInfo.
type Info struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Artist       string `json:"artist"`
	Genre        string `json:"genre"`
	ModeHint     string `json:"mode_hint"`
	ChartName    string `json:"chart_name"`
	Level        int    `json:"level"`
	InitBPM      float64 `json:"init_bpm"`
	JudgeRank    float64 `json:"judge_rank"`
	Total        float64 `json:"total"`
	BackImage    string `json:"back_image"`
	EyecatchImage string `json:"eyecatch_image"`
	BannerImage  string `json:"banner_image"`
	PreviewMusic string `json:"preview_music"`
	Resolution   int    `json:"resolution"`
}

// BarLine marks a measure boundary at pulse Y (BMSON's analogue of a BMS
// track boundary).
type BarLine struct {
	Y int64 `json:"y"`
}

// BPMEvent changes the tempo at pulse Y.
type BPMEvent struct {
	Y   int64   `json:"y"`
	BPM float64 `json:"bpm"`
}

// StopEvent pauses the timeline for Duration pulses at pulse Y.
type StopEvent struct {
	Y        int64 `json:"y"`
	Duration int64 `json:"duration"`
}

// ScrollEvent changes the scroll-speed multiplier at pulse Y.
type ScrollEvent struct {
	Y    int64   `json:"y"`
	Rate float64 `json:"rate"`
}

// SoundChan is one playable sample and every note event that triggers it.
type SoundChan struct {
	Name  string `json:"name"`
	Notes []Note `json:"notes"`
}

// Note is a single BMSON note event. X is the 1-based lane number, or 0
// for a BGM-channel note with no lane. L is the note's length in pulses;
// zero means a plain tap, nonzero marks a long note spanning L pulses.
// C marks this note as a continuation of a long note already open in its
// lane rather than a new one (BMSON's explicit alternative to BMS's
// implicit start/end channel-pair toggling).
type Note struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
	L int64 `json:"l"`
	C bool  `json:"c"`
}

// BgaSection holds the BGA picture definitions and their event tracks.
type BgaSection struct {
	BgaHeader   []BgaHeader `json:"bga_header"`
	BgaEvents   []BgaEvent  `json:"bga_events"`
	LayerEvents []BgaEvent  `json:"layer_events"`
	PoorEvents  []BgaEvent  `json:"poor_events"`
}

// BgaHeader names a picture resource by a small integer ID.
type BgaHeader struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BgaEvent shows BgaHeader ID's picture at pulse Y.
type BgaEvent struct {
	Y  int64 `json:"y"`
	ID int64 `json:"id"`
}

// Decode reads a BMSON document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("bmson: decode: %w", err)
	}
	return &doc, nil
}
