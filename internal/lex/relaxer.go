package lex

import "strings"

// Config controls how tolerant the lexer is of misspelled or malformed
// command spellings. The transformations themselves always apply — BMS
// charts in the wild are full of them — the only difference strictness
// makes is whether applying one produces a diag.RelaxedForm warning.
type Config struct {
	// Strict, when true, emits a diag.RelaxedForm warning every time a relaxer
	// fires. When false (the default), relaxed forms are silently
	// accepted.
	Strict bool
}

// DefaultRelaxers returns the lenient configuration real-world charts are
// parsed with: silent acceptance of known misspellings, fullwidth hashes,
// and missing whitespace before a control value.
func DefaultRelaxers() Config { return Config{Strict: false} }

// StrictRelaxers returns a configuration that still normalizes malformed
// spellings (the lexer never hard-fails on them) but reports every
// correction as a warning.
func StrictRelaxers() Config { return Config{Strict: true} }

type controlKeyword struct {
	canonical TokenKind
	aliases   []string
	hasValue  bool
}

// Order matters: more specific keywords (ENDRANDOM, ELSEIF) are checked
// before the shorter keywords they could be confused with (RANDOM, ELSE,
// IF) would otherwise shadow.
var controlKeywords = []controlKeyword{
	{TokenEndRandom, []string{"ENDRANDOM", "ENDSW", "ENDSWITCH"}, false},
	{TokenEndIf, []string{"ENDIF", "IFEND"}, false},
	{TokenElseIf, []string{"ELSEIF"}, true},
	{TokenElse, []string{"ELSE"}, false},
	{TokenRandom, []string{"RANDOM", "RONDAM"}, true},
	{TokenSwitch, []string{"SWITCH"}, true},
	{TokenCase, []string{"CASE"}, true},
	{TokenSkip, []string{"SKIP"}, false},
	{TokenDef, []string{"DEF"}, false},
	{TokenIf, []string{"IF"}, true},
}

// matchControl attempts to recognize body (the text following '#') as a
// control keyword, tolerating missing whitespace before a numeric value
// and a small table of known misspellings. It returns the canonical
// keyword string (for diag.RelaxedForm messages), whether any relaxer
// fired, and the matched token kind plus numeric value.
func matchControl(body string) (kind TokenKind, value uint32, hasValue bool, canonical string, relaxed bool, ok bool) {
	compact := strings.ToUpper(removeSpaces(body))
	for _, kw := range controlKeywords {
		for _, alias := range kw.aliases {
			if !strings.HasPrefix(compact, alias) {
				continue
			}
			rest := compact[len(alias):]
			if kw.hasValue {
				if rest == "" {
					continue
				}
				n, digitsOK := parseUint32(rest)
				if !digitsOK {
					continue
				}
				canonicalAlias := kw.aliases[0]
				// A relaxer fired if the alias used was non-canonical, or
				// if there was no whitespace between the keyword and its
				// value in the source.
				noSpaceBeforeValue := !hasWhitespaceBetween(body)
				relaxedNow := alias != canonicalAlias || noSpaceBeforeValue
				return kw.canonical, n, true, canonicalAlias, relaxedNow, true
			}
			if rest != "" {
				continue
			}
			canonicalAlias := kw.aliases[0]
			relaxedNow := alias != canonicalAlias || removeSpaces(body) != body
			return kw.canonical, 0, false, canonicalAlias, relaxedNow, true
		}
	}
	return 0, 0, false, "", false, false
}

func removeSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// hasWhitespaceBetween reports whether there is whitespace between the
// keyword and the first digit of its value, distinguishing "#RANDOM5"
// (no space) from "#RANDOM 5" (space present).
func hasWhitespaceBetween(body string) bool {
	for _, r := range body {
		if r >= '0' && r <= '9' {
			return false
		}
		if r == ' ' || r == '\t' {
			return true
		}
	}
	return false
}

func parseUint32(s string) (uint32, bool) {
	var n uint64
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + uint64(r-'0')
		if n > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(n), true
}
