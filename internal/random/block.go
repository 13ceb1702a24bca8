package random

// Block is a single #RANDOM/#SWITCH frame. Grounded on
// original_source/src/parse/random/block.rs, adapted from BTreeSet+bool
// fields to idiomatic Go with the same two-tier (Tier 1 primitive / Tier
// 2 composite) method split the Rust source uses.
type Block struct {
	// RandomValue is the outcome of the containing #RANDOM/#SWITCH, or
	// nil if the frame is nested inside an already-dead parent (in which
	// case no branch will ever match).
	RandomValue *uint32
	ifValues    map[uint32]struct{}
	pass        bool
	hasPassed   bool
	isInElse    bool
	isSwitch    bool
	skipped     bool // #SKIP seen in a #SWITCH frame
}

// NewBlock creates a frame with the given draw outcome (nil if dead).
func NewBlock(randomValue *uint32, isSwitch bool) *Block {
	return &Block{RandomValue: randomValue, ifValues: make(map[uint32]struct{}), isSwitch: isSwitch}
}

// Pass reports whether a token encountered while this frame is the
// current branch target should be forwarded downstream.
func (b *Block) Pass() bool {
	if b.skipped {
		return false
	}
	return b.pass || (b.isInElse && !b.hasPassed)
}

/*
 * Tier 1: primitive operations directly on fields.
 */

// addIfValue records v as seen and updates pass/hasPassed if it matches
// the frame's random draw. Returns true if v had not been seen before at
// this level (used for duplicate-#IF detection).
func (b *Block) addIfValue(v uint32) bool {
	if b.RandomValue != nil && v == *b.RandomValue {
		b.pass = true
		b.hasPassed = true
	}
	_, seen := b.ifValues[v]
	b.ifValues[v] = struct{}{}
	return !seen
}

func (b *Block) clearIfValues() {
	b.pass = false
	b.isInElse = false
	b.ifValues = make(map[uint32]struct{})
}

func (b *Block) isIfValueEmpty() bool { return len(b.ifValues) == 0 }

/*
 * Tier 2: composite operations built from Tier 1, one per control token.
 */

// OpenIf handles #IF v. Returns true if a prior #IF at this level was
// still open (no #ENDIF or #ELSE has cleared it) — a caller-reported error,
// per spec.md §4.2's "if frame was already inside an open #IF ... that
// is an error".
func (b *Block) OpenIf(v uint32) (wasAlreadyOpen bool) {
	wasAlreadyOpen = !b.isIfValueEmpty()
	b.clearIfValues()
	b.addIfValue(v)
	return wasAlreadyOpen
}

// OpenElseIf handles #ELSEIF v. Returns false (reject) if v was already
// seen at this level.
func (b *Block) OpenElseIf(v uint32) (accepted bool) {
	if _, dup := b.ifValues[v]; dup {
		return false
	}
	b.ifValues[v] = struct{}{}
	b.pass = !b.hasPassed && b.RandomValue != nil && v == *b.RandomValue
	b.hasPassed = b.hasPassed || b.pass
	return true
}

// OpenElse handles #ELSE. Returns false (reject, a DuplicateElse warning
// per SPEC_FULL.md §E.1) if an #ELSE was already opened at this level
// without an intervening #ENDIF.
func (b *Block) OpenElse() (accepted bool) {
	if b.isInElse {
		return false
	}
	b.clearIfValues()
	b.isInElse = true
	b.pass = !b.hasPassed
	return true
}

// ResetIf handles #ENDIF: branch state resets but RandomValue survives,
// so a later #IF at the same #RANDOM level still compares against the
// original draw.
func (b *Block) ResetIf() {
	b.pass = false
	b.isInElse = false
	b.ifValues = make(map[uint32]struct{})
	b.hasPassed = false
}

// OpenCase handles #CASE v inside a #SWITCH frame; it behaves like a
// sequential matcher rather than #IF's duplicate-rejecting one, since
// #SWITCH/#CASE bodies fall through to the next #CASE by design.
func (b *Block) OpenCase(v uint32) {
	if b.RandomValue != nil && v == *b.RandomValue {
		b.pass = true
		b.hasPassed = true
	} else if !b.hasPassed {
		b.pass = false
	}
}

// Skip handles #SKIP: ends fallthrough for the remainder of the #SWITCH.
func (b *Block) Skip() {
	b.skipped = true
	b.pass = false
}
