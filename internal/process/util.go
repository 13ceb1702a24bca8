package process

import "strings"

// matchKeyword reports whether name is keyword, case-insensitively (the
// lexer never folds header-name case, so every processor matches this
// way; spec.md §4.1 "the lexer does not interpret semantics").
func matchKeyword(name, keyword string) bool {
	return strings.EqualFold(name, keyword)
}

// matchKeywordID reports whether name is keyword followed by exactly a
// 2-character object id suffix (e.g. "WAVaa" against "WAV"), returning
// the id text with its original case preserved — case-folding it is the
// caller's job, via the chart's current #BASE 62 state.
func matchKeywordID(name, keyword string) (id string, ok bool) {
	if len(name) != len(keyword)+2 {
		return "", false
	}
	if !strings.EqualFold(name[:len(keyword)], keyword) {
		return "", false
	}
	return name[len(keyword):], true
}
