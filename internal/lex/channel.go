package lex

import "strings"

// ChannelKind is the semantic role of a message line, per spec.md §4.1/§6.1.
type ChannelKind int

const (
	ChannelUnknown ChannelKind = iota
	ChannelBGM
	ChannelSectionLen
	ChannelBPM        // hex u8 BPM, channel 03
	ChannelBPMChange  // BPM change via ObjId, channel 08
	ChannelStop       // channel 09
	ChannelBGABase    // channel 04
	ChannelBGAPoor    // channel 06
	ChannelBGALayer   // channel 07
	ChannelScroll     // SC
	ChannelSpeed      // SP
	ChannelText       // 99
	ChannelJudge      // A0
	ChannelOption     // A6
	ChannelSeek       // 05
	ChannelBGMVolume  // 97
	ChannelKeyVolume  // 98
	ChannelNote       // parameterized: see NoteKind/PlayerSide/Key below
)

// NoteKind distinguishes the playable-object families carried by note
// channels.
type NoteKind int

const (
	NoteVisible NoteKind = iota
	NoteInvisible
	NoteLong
	NoteMine
)

// PlayerSide distinguishes 1P/2P note lanes (for double-play charts).
type PlayerSide int

const (
	Player1 PlayerSide = iota
	Player2
)

// Channel is the closed sum described in spec.md §4.1: either one of the
// non-parameterized kinds, or ChannelNote carrying a NoteKind × PlayerSide
// × Key.
type Channel struct {
	Kind ChannelKind
	Note NoteChannel
	Code string // the raw 2-character code, preserved for diagnostics
}

// NoteChannel is the note-lane payload of a Channel with Kind ==
// ChannelNote. Key is the raw lane digit from the source (1-9, A-Z in
// base-36); mapping it to a physical game key is the Notes processor's
// job via a KeyLayoutMapper (spec.md §4.3 item 7), not the lexer's.
type NoteChannel struct {
	NoteKind NoteKind
	Side     PlayerSide
	Key      byte // raw second character of the channel code
}

func laneDigit(c byte) (byte, bool) {
	switch {
	case c >= '1' && c <= '9':
		return c, true
	case c >= 'A' && c <= 'Z':
		return c, true
	default:
		return 0, false
	}
}

// ParseChannel decodes a 2-character channel code into its semantic
// Channel. Unrecognized codes produce ChannelUnknown with ok == false so
// the caller can emit a diag.UnknownChannel warning.
func ParseChannel(code string) (Channel, bool) {
	if len(code) != 2 {
		return Channel{Kind: ChannelUnknown, Code: code}, false
	}
	upper := strings.ToUpper(code)
	switch upper {
	case "01":
		return Channel{Kind: ChannelBGM, Code: upper}, true
	case "02":
		return Channel{Kind: ChannelSectionLen, Code: upper}, true
	case "03":
		return Channel{Kind: ChannelBPM, Code: upper}, true
	case "04":
		return Channel{Kind: ChannelBGABase, Code: upper}, true
	case "05":
		return Channel{Kind: ChannelSeek, Code: upper}, true
	case "06":
		return Channel{Kind: ChannelBGAPoor, Code: upper}, true
	case "07":
		return Channel{Kind: ChannelBGALayer, Code: upper}, true
	case "08":
		return Channel{Kind: ChannelBPMChange, Code: upper}, true
	case "09":
		return Channel{Kind: ChannelStop, Code: upper}, true
	case "SC":
		return Channel{Kind: ChannelScroll, Code: upper}, true
	case "SP":
		return Channel{Kind: ChannelSpeed, Code: upper}, true
	case "99":
		return Channel{Kind: ChannelText, Code: upper}, true
	case "A0":
		return Channel{Kind: ChannelJudge, Code: upper}, true
	case "A6":
		return Channel{Kind: ChannelOption, Code: upper}, true
	case "97":
		return Channel{Kind: ChannelBGMVolume, Code: upper}, true
	case "98":
		return Channel{Kind: ChannelKeyVolume, Code: upper}, true
	}

	key, ok := laneDigit(upper[1])
	if !ok {
		return Channel{Kind: ChannelUnknown, Code: upper}, false
	}
	switch upper[0] {
	case '1':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteVisible, Side: Player1, Key: key}}, true
	case '2':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteVisible, Side: Player2, Key: key}}, true
	case '3':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteInvisible, Side: Player1, Key: key}}, true
	case '6':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteInvisible, Side: Player2, Key: key}}, true
	case '4':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteLong, Side: Player1, Key: key}}, true
	case '5':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteLong, Side: Player2, Key: key}}, true
	case 'D':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteMine, Side: Player1, Key: key}}, true
	case 'E':
		return Channel{Kind: ChannelNote, Code: upper, Note: NoteChannel{NoteKind: NoteMine, Side: Player2, Key: key}}, true
	}
	return Channel{Kind: ChannelUnknown, Code: upper}, false
}
