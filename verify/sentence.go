package verify

import "strings"

// sentenceTerminators end a sentence. A newline also terminates, since
// interview transcripts often lack punctuation between turns.
func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?' || b == '\n'
}

// expandSentence widens the byte range [start, end) to full sentence
// boundaries within text and returns the trimmed sentence.
func expandSentence(text string, start, end int) string {
	s := start
	for s > 0 && !isTerminator(text[s-1]) {
		s--
	}

	e := end
	for e < len(text) && !isTerminator(text[e]) {
		e++
	}
	// Include the terminator run itself ("...", "?!").
	for e < len(text) && isTerminator(text[e]) && text[e] != '\n' {
		e++
	}

	return strings.TrimSpace(text[s:e])
}
