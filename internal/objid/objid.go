// Package objid implements the two-character BMS object identifier: a
// base-36 (digits + A-Z) value by default, widening to base-62 (adding
// a-z) once a chart declares #BASE 62.
package objid

import (
	"fmt"
	"strings"
)

// Null is the "no object" sentinel ("00").
const Null = ObjId(0)

// ObjId is a two-character identifier packed into a small integer so it
// can be used directly as a map key. Each character is stored as its
// base-62 digit; Parse folds lowercase to uppercase for a chart without
// #BASE 62, and Fold maps a case-sensitive id onto that folded form.
type ObjId uint16

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 36, true
	default:
		return 0, false
	}
}

// Parse reads a two-character identifier. caseSensitive selects whether
// the chart has #BASE 62 in effect; when false, lowercase letters are
// folded to uppercase before being stored, so "aa" and "AA" produce the
// same ObjId.
func Parse(s string, caseSensitive bool) (ObjId, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("objid: identifier must be exactly 2 characters, got %q", s)
	}
	work := s
	if !caseSensitive {
		work = strings.ToUpper(s)
	}
	hi, ok := digitValue(work[0])
	if !ok {
		return 0, fmt.Errorf("objid: invalid character %q in %q", work[0], s)
	}
	lo, ok := digitValue(work[1])
	if !ok {
		return 0, fmt.Errorf("objid: invalid character %q in %q", work[1], s)
	}
	if !caseSensitive && (hi >= 36 || lo >= 36) {
		return 0, fmt.Errorf("objid: lowercase letters require #BASE 62, got %q", s)
	}
	return ObjId(hi*62 + lo), nil
}

// IsNull reports whether this is the "00" sentinel.
func (id ObjId) IsNull() bool { return id == Null }

// String renders the identifier back to its two base-62 characters
// (digits and uppercase letters only for ids parsed without #BASE 62,
// whose stored form never uses the lowercase range).
func (id ObjId) String() string {
	hi := int(id) / 62
	lo := int(id) % 62
	if hi >= len(alphabet) || lo >= len(alphabet) {
		return "??"
	}
	return string([]byte{alphabet[hi], alphabet[lo]})
}

// Fold reduces id to its case-insensitive form, the way a #BASE 62 chart's
// ids must be re-keyed into if case-sensitivity turns out to not apply
// (see SPEC_FULL.md §E.2).
func Fold(id ObjId) ObjId {
	hi := int(id) / 62
	lo := int(id) % 62
	if hi >= 36 {
		hi -= 26
	}
	if lo >= 36 {
		lo -= 26
	}
	return ObjId(hi*62 + lo)
}
