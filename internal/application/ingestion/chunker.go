package ingestion

import "strings"

// Span one chunk of text and its rune offsets in the source.
type Span struct {
	Content string
	Start   int
	End     int
}

// sentenceEndings boundaries a chunk prefers to end on.
var sentenceEndings = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// maxBoundarySearch how far back from the hard limit a sentence boundary is searched for.
const maxBoundarySearch = 200

// Chunk splits text into overlapping chunks of at most about size runes.
// A chunk ends on the last sentence boundary found within the final 200 runes
// (but never in the first half of the chunk); the next chunk starts overlap runes earlier.
func Chunk(text string, size, overlap int) []Span {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	runes := []rune(text)
	n := len(runes)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if n <= size {
		return []Span{{Content: strings.TrimSpace(text), Start: 0, End: n}}
	}

	var spans []Span
	start := 0
	for start < n {
		end := start + size
		if end < n {
			end = sentenceBreak(runes, start, end, size)
		} else {
			end = n
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			spans = append(spans, Span{Content: chunk, Start: start, End: end})
		}
		if end >= n {
			break
		}
		start = max(start+1, end-overlap)
	}
	return spans
}

// sentenceBreak scans backwards from the last rune before end and returns the position
// just after the first sentence ending that fits entirely before end, or end when there
// is none in range. The result never exceeds end.
func sentenceBreak(runes []rune, start, end, size int) int {
	floor := max(start+size/2, end-maxBoundarySearch)
	for i := end - 1; i > floor; i-- {
		for _, ending := range sentenceEndings {
			if stop := i + len([]rune(ending)); stop <= end && hasPrefixAt(runes, i, ending) {
				return stop
			}
		}
	}
	return end
}

func hasPrefixAt(runes []rune, i int, s string) bool {
	for j, r := range []rune(s) {
		if i+j >= len(runes) || runes[i+j] != r {
			return false
		}
	}
	return true
}
