package bmstime

import "fmt"

// SectionLen is the positive rational multiplier applied to a track's
// default length. The zero value is invalid; use DefaultSectionLen.
type SectionLen struct {
	Decimal
}

// DefaultSectionLen is the multiplier a track has until a #SECLEN message
// overrides it.
var DefaultSectionLen = SectionLen{Decimal: DecimalFromInt(1)}

// NewSectionLen validates and wraps a Decimal as a SectionLen. Zero and
// negative multipliers are rejected per spec.md invariant 5.
func NewSectionLen(d Decimal) (SectionLen, error) {
	if !d.IsPositive() {
		return SectionLen{}, fmt.Errorf("section length must be greater than zero")
	}
	return SectionLen{Decimal: d}, nil
}
