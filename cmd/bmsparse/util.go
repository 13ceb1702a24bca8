package main

import (
	"fmt"
	"strings"

	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
)

func totalLongNotes(m *model.Model) int {
	n := 0
	for _, spans := range m.Notes.LongNotes {
		n += len(spans)
	}
	return n
}

// renderTokens turns Unparse's token slice into BMS source text. The
// round-trip law (spec.md §8 invariant 1) only promises a second parse
// reaches an equal model, not a byte-exact source, so this is a plain
// rendering convenience rather than a claim of canonical output.
func renderTokens(toks []lex.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		switch tok.Kind {
		case lex.TokenHeader:
			if tok.HeaderArgs == "" {
				fmt.Fprintf(&b, "#%s\n", tok.HeaderName)
			} else {
				fmt.Fprintf(&b, "#%s %s\n", tok.HeaderName, tok.HeaderArgs)
			}
		case lex.TokenMessage:
			fmt.Fprintf(&b, "#%s%s:%s\n", tok.Track, tok.Channel.Code, tok.Message)
		case lex.TokenNotACommand:
			fmt.Fprintf(&b, "%s\n", tok.Text)
		}
	}
	return b.String()
}
