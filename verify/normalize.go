package verify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeText lowercases text and collapses whitespace runs to single
// spaces, dropping leading and trailing whitespace.
func normalizeText(s string) string {
	norm, _, _ := normalizeWithOffsets(s)
	return norm
}

// normalizeWithOffsets normalizes like normalizeText and additionally maps
// every byte of the normalized string back to the original: starts[i] is
// the byte offset in the original where the source rune of normalized byte
// i begins, ends[i] the offset just past it. The maps let a match in
// normalized space be widened to sentence boundaries in the original text.
func normalizeWithOffsets(s string) (string, []int, []int) {
	var b strings.Builder
	var starts, ends []int

	pendingSpace := false
	spaceStart := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		if unicode.IsSpace(r) {
			if !pendingSpace {
				pendingSpace = true
				spaceStart = i
			}
			i += size
			continue
		}

		if pendingSpace {
			if b.Len() > 0 {
				b.WriteByte(' ')
				starts = append(starts, spaceStart)
				ends = append(ends, i)
			}
			pendingSpace = false
		}

		lower := unicode.ToLower(r)
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], lower)
		for j := 0; j < n; j++ {
			b.WriteByte(buf[j])
			starts = append(starts, i)
			ends = append(ends, i+size)
		}
		i += size
	}

	return b.String(), starts, ends
}
