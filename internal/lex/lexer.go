package lex

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
)

const fullwidthHash = '＃'

// Result is everything the lexer produces for one source file: the
// ordered token stream with byte ranges, and any recoverable warnings.
type Result struct {
	Tokens   []TokenWithRange
	Warnings []diag.Warning
}

type lineSpan struct {
	start, end int // byte offsets of the line's content, terminator excluded
}

func splitLines(src string) []lineSpan {
	var spans []lineSpan
	start := 0
	i := 0
	for i < len(src) {
		c := src[i]
		if c == '\n' {
			spans = append(spans, lineSpan{start, i})
			i++
			start = i
			continue
		}
		if c == '\r' {
			spans = append(spans, lineSpan{start, i})
			i++
			if i < len(src) && src[i] == '\n' {
				i++
			}
			start = i
			continue
		}
		i++
	}
	spans = append(spans, lineSpan{start, len(src)})
	return spans
}

// Lex tokenizes src under the given relaxer configuration.
func Lex(src string, cfg Config) Result {
	var res Result
	lineNo := 0
	for _, span := range splitLines(src) {
		lineNo++
		line := src[span.start:span.end]
		res.lexLine(line, span.start, lineNo, cfg)
	}
	return res
}

func (res *Result) emit(tok Token, start, end int) {
	res.Tokens = append(res.Tokens, TokenWithRange{Token: tok, Range: Range{Start: start, End: end}})
}

func (res *Result) warn(w diag.Warning) {
	res.Warnings = append(res.Warnings, w)
}

func (res *Result) lexLine(line string, offset, lineNo int, cfg Config) {
	trimmedLeading := strings.TrimLeft(line, " \t")
	leadingWS := len(line) - len(trimmedLeading)

	if trimmedLeading == "" {
		return
	}

	if strings.HasPrefix(trimmedLeading, ";") {
		res.emit(Token{Kind: TokenComment, Text: trimmedLeading}, offset, offset+len(line))
		return
	}

	r, size := utf8.DecodeRuneInString(trimmedLeading)
	if r != '#' && r != fullwidthHash {
		res.emit(Token{Kind: TokenNotACommand, Text: line}, offset, offset+len(line))
		return
	}

	fullwidthUsed := r == fullwidthHash
	body := trimmedLeading[size:]
	bodyOffset := offset + leadingWS + size
	col := leadingWS + 1

	if kind, value, hasValue, canonical, relaxed, ok := matchControl(body); ok {
		if fullwidthUsed {
			relaxed = true
		}
		if relaxed && cfg.Strict {
			msg := canonical
			if hasValue {
				msg = canonical + " " + strconv.FormatUint(uint64(value), 10)
			}
			res.warn(relaxedForm(lineNo, col, Range{offset, offset + len(line)}, strings.TrimRight(line, "\r\n"), "#"+msg))
		}
		tok := Token{Kind: kind, Value: value}
		res.emit(tok, offset, offset+len(line))
		return
	}

	if track, channel, payload, matched := matchMessage(body); matched {
		res.lexMessage(track, channel, payload, body, offset, bodyOffset, lineNo, col, len(line))
		return
	}

	name, args := splitHeader(body)
	res.emit(Token{Kind: TokenHeader, HeaderName: name, HeaderArgs: args}, offset, offset+len(line))
}

// matchMessage recognizes "TTTCC:payload". Track is strictly 3 digits;
// charts that emit a 4-digit track (some nonstandard tools do) are
// tolerated, reported via diag.TrackOutOfRange, and clamped to 999.
func matchMessage(body string) (track bmstime.Track, channel string, payload string, ok bool) {
	digits := 0
	for digits < len(body) && digits < 4 && body[digits] >= '0' && body[digits] <= '9' {
		digits++
	}
	for _, d := range []int{3, 4} {
		if d > digits || len(body) < d+3 || body[d+2] != ':' {
			continue
		}
		chanCode := body[d : d+2]
		if !isAlnum(chanCode[0]) || !isAlnum(chanCode[1]) {
			continue
		}
		n, _ := strconv.ParseUint(body[:d], 10, 32)
		return bmstime.Track(n), chanCode, body[d+3:], true
	}
	return 0, "", "", false
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (res *Result) lexMessage(track bmstime.Track, code, payload, body string, lineStart, bodyOffset, lineNo, col, lineLen int) {
	lineEnd := lineStart + lineLen
	if uint32(track) > 999 {
		res.warn(trackOutOfRange(lineNo, col, Range{lineStart, lineEnd}, strconv.FormatUint(uint64(track), 10)))
		track = 999
	}
	ch, ok := ParseChannel(code)
	if !ok {
		res.warn(unknownChannel(lineNo, col, Range{lineStart, lineEnd}, code))
	}
	if len(payload)%2 != 0 && ch.Kind != ChannelSectionLen {
		res.warn(malformedPayload(lineNo, col, Range{lineStart, lineEnd}, "message payload has odd length, truncating"))
		payload = payload[:len(payload)-1]
	}
	res.emit(Token{Kind: TokenMessage, Track: track, Channel: ch, Message: payload}, lineStart, lineEnd)
}

func splitHeader(body string) (name, args string) {
	body = strings.TrimRight(body, "\r")
	i := strings.IndexAny(body, " \t")
	if i < 0 {
		return body, ""
	}
	return body[:i], strings.TrimLeft(body[i+1:], " \t")
}
