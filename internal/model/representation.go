package model

// LNMode selects how a long-note's release is judged.
type LNMode int

const (
	LNModeLN LNMode = iota
	LNModeCN
	LNModeHCN
)

func (m LNMode) String() string {
	switch m {
	case LNModeLN:
		return "LN"
	case LNModeCN:
		return "CN"
	case LNModeHCN:
		return "HCN"
	default:
		return "LN"
	}
}

// Representation tracks the parse's own bookkeeping: the chosen LN
// notation, whether #BASE 62 was declared, and the raw source retained
// for round-trip support (spec.md §3 "Representation").
type Representation struct {
	LNType         int // 1 = long-note channel pairs, 2 = explicit end markers (rare dialects)
	LNMode         LNMode
	OriginalEncode string
	CaseSensitive  bool // true once #BASE 62 is seen

	// RawCommandLines preserves every "#"-prefixed source line in
	// original order; RawTrivia preserves every other non-blank line.
	// Unparse emits RawCommandLines verbatim for anything the processor
	// pipeline doesn't own a canonical re-encoding for.
	RawCommandLines []string
	RawTrivia       []string
}
