package prompt

import "fmt"

// AlwaysWarnAndUseOlder keeps the first definition/event/track value seen
// and reports every collision as a warning. Useful for callers that treat
// the first write as authoritative and later redefinitions as noise.
type AlwaysWarnAndUseOlder struct{}

func (AlwaysWarnAndUseOlder) HandleDefDuplication(DefKind, string) Resolution         { return WarnAndUseOlder }
func (AlwaysWarnAndUseOlder) HandleChannelDuplication(ChannelKind, string) Resolution { return WarnAndUseOlder }
func (AlwaysWarnAndUseOlder) HandleTrackDuplication(TrackKind, string) Resolution     { return WarnAndUseOlder }

// AlwaysWarnAndUseNewer replaces the older value with whichever was read
// last, the same as AlwaysUseNewer, but also reports every collision as a
// warning. This is the default policy: a chart with accidental
// duplicates should still parse to completion with a visible warning
// trail, and later lines win, matching how other BMS players resolve a
// redefinition.
type AlwaysWarnAndUseNewer struct{}

func (AlwaysWarnAndUseNewer) HandleDefDuplication(DefKind, string) Resolution         { return WarnAndUseNewer }
func (AlwaysWarnAndUseNewer) HandleChannelDuplication(ChannelKind, string) Resolution { return WarnAndUseNewer }
func (AlwaysWarnAndUseNewer) HandleTrackDuplication(TrackKind, string) Resolution     { return WarnAndUseNewer }

// AlwaysUseNewer silently replaces the older value with whichever was
// read last, treating later lines as corrections to earlier ones.
type AlwaysUseNewer struct{}

func (AlwaysUseNewer) HandleDefDuplication(DefKind, string) Resolution        { return UseNewer }
func (AlwaysUseNewer) HandleChannelDuplication(ChannelKind, string) Resolution { return UseNewer }
func (AlwaysUseNewer) HandleTrackDuplication(TrackKind, string) Resolution    { return UseNewer }

// Silent keeps the older value without ever reporting a warning. Useful
// for formats known to redefine keys as a matter of course (some chart
// generators emit a placeholder WAV definition followed by the real one).
type Silent struct{}

func (Silent) HandleDefDuplication(DefKind, string) Resolution        { return UseOlder }
func (Silent) HandleChannelDuplication(ChannelKind, string) Resolution { return UseOlder }
func (Silent) HandleTrackDuplication(TrackKind, string) Resolution    { return UseOlder }

// PanicAndUseNewer is a test-only prompter that panics the instant a
// collision occurs, useful for asserting a given fixture has no
// duplicate definitions at all.
type PanicAndUseNewer struct{}

func (PanicAndUseNewer) HandleDefDuplication(kind DefKind, id string) Resolution {
	panic(fmt.Sprintf("unexpected def duplication: kind=%d id=%s", kind, id))
}
func (PanicAndUseNewer) HandleChannelDuplication(kind ChannelKind, time string) Resolution {
	panic(fmt.Sprintf("unexpected channel duplication: kind=%d time=%s", kind, time))
}
func (PanicAndUseNewer) HandleTrackDuplication(kind TrackKind, track string) Resolution {
	panic(fmt.Sprintf("unexpected track duplication: kind=%d track=%s", kind, track))
}
