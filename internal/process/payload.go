// Package process hosts the token-processor pipeline: the fixed set of
// independent handlers that walk the live (post-random-filter) token
// stream and mutate a shared chart model (spec.md §4.3).
package process

import (
	"strconv"
	"strings"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
)

// splitCells splits an even-length message payload into 2-character
// cells (spec.md §4.4). An odd-length payload is truncated to its last
// complete cell and reported as a MalformedMessagePayload warning.
func splitCells(payload string) (cells []string, warnings []diag.Warning) {
	if len(payload)%2 != 0 {
		warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{},
			"message payload %q has odd length, truncating last cell", payload))
		payload = payload[:len(payload)-1]
	}
	for i := 0; i+2 <= len(payload); i += 2 {
		cells = append(cells, payload[i:i+2])
	}
	return cells, warnings
}

// cellObjTime computes the rational position of cell i of k within
// track, per spec.md §4.4 item 2: [i/k, (i+1)/k).
func cellObjTime(track bmstime.Track, i, k int) bmstime.ObjTime {
	return bmstime.NewObjTime(track, uint32(i), uint32(k))
}

// decodeHexByte parses a 2-character cell as a hexadecimal u8, for the
// volume and BPM-U8 channels (spec.md §4.4 item 3).
func decodeHexByte(cell string) (byte, bool) {
	v, err := strconv.ParseUint(cell, 16, 8)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}

// parseSectionLen parses a section-length message as a single fraction
// rather than a cell sequence (spec.md §4.4 item 4, §8 scenario S4).
func parseSectionLen(payload string) (bmstime.SectionLen, error) {
	d, err := bmstime.ParseDecimal(strings.TrimSpace(payload))
	if err != nil {
		return bmstime.SectionLen{}, err
	}
	return bmstime.NewSectionLen(d)
}
