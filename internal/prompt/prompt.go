// Package prompt models the caller-supplied duplication policy: what to
// do when a processor tries to insert a second value at a key (ObjId,
// ObjTime, or Track) that already has one.
package prompt

// Resolution is what the prompter decided to do about a collision.
type Resolution int

const (
	UseOlder Resolution = iota
	UseNewer
	WarnAndUseOlder
	WarnAndUseNewer
	Error
)

// Warns reports whether applying this resolution should also emit a
// DuplicateDefinition/DuplicateEvent warning.
func (r Resolution) Warns() bool {
	return r == WarnAndUseOlder || r == WarnAndUseNewer
}

// KeepsNewer reports whether the newer value should replace the older one.
func (r Resolution) KeepsNewer() bool {
	return r == UseNewer || r == WarnAndUseNewer
}

// DefKind identifies which definition table a collision happened in, for
// def-table duplications (ObjId -> T).
type DefKind int

const (
	DefWav DefKind = iota
	DefBmp
	DefStop
	DefScroll
	DefSpeed
	DefText
	DefOption
	DefExRank
	DefSeek
)

// ChannelKind identifies which time-indexed event table a collision
// happened in (ObjTime -> T).
type ChannelKind int

const (
	ChannelNote ChannelKind = iota
	ChannelBPMChange
	ChannelStop
	ChannelScroll
	ChannelSpeed
	ChannelBGA
	ChannelText
	ChannelOption
	ChannelJudge
	ChannelSeek
	ChannelBGMVolume
	ChannelKeyVolume
)

// TrackKind identifies which track-indexed table a collision happened in
// (Track -> T). Section length is the only one in this spec.
type TrackKind int

const (
	TrackSectionLen TrackKind = iota
)

// Prompter is the policy object every processor's duplicate-insert path
// delegates to. Each method receives an identifier for the collision
// location alongside the colliding kind, so a logging prompter can render
// a useful message without this package needing to know each processor's
// value types.
type Prompter interface {
	HandleDefDuplication(kind DefKind, id string) Resolution
	HandleChannelDuplication(kind ChannelKind, time string) Resolution
	HandleTrackDuplication(kind TrackKind, track string) Resolution
}
