package verify

import "strings"

// Stop words to filter out when computing miss diagnostics
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// lexicalOverlap returns the fraction of a fragment's content words found
// in the document, in [0, 1]. It exists purely as a diagnostic for missed
// fragments; overlap never makes a fragment acceptable.
func lexicalOverlap(document, fragment string) float64 {
	fragWords := tokenizeAndFilter(fragment)
	if len(fragWords) == 0 {
		return 0
	}

	docWords := tokenizeAndFilter(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	found := 0
	for _, w := range fragWords {
		if docWordSet[w] {
			found++
		}
	}
	return float64(found) / float64(len(fragWords))
}
