// Package chunker splits transcript text into overlapping passages sized for
// embedding and retrieval.
package chunker

const (
	// DefaultChunkSize balances context window economy and retrieval precision.
	DefaultChunkSize = 1000

	// DefaultOverlap keeps semantic continuity across chunk boundaries.
	DefaultOverlap = 200
)

// Splitter cuts text into chunks of at most chunkSize characters, each chunk
// starting overlap characters before the end of the previous one. Splitting
// prefers paragraph breaks, then sentence ends, then word boundaries before
// falling back to a hard character cut.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a splitter, applying defaults for non-positive sizes.
// The overlap is clamped below the chunk size so every step makes progress.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split is a pure function of its input: the same text always yields the
// same chunk sequence. An empty transcript yields no chunks; the final chunk
// may be shorter than the chunk size. Sizes are measured in runes, so a hard
// cut never lands inside a multi-byte character.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks
		}
		end = s.breakPoint(runes, start, end)
		chunks = append(chunks, string(runes[start:end]))
		start = end - s.overlap
	}
}

// breakPoint searches backwards from limit for a natural boundary: a
// paragraph break, a sentence end, then any whitespace. Boundaries in the
// first half of the chunk are ignored so chunks stay near the target size
// (and so the next start always advances past the previous one).
func (s *Splitter) breakPoint(runes []rune, start, limit int) int {
	floor := start + s.chunkSize/2
	if floor <= start+s.overlap {
		floor = start + s.overlap + 1
	}
	window := runes[floor:limit]

	if i := lastParagraphBreak(window); i >= 0 {
		return floor + i
	}
	if i := lastSentenceEnd(window); i >= 0 {
		return floor + i
	}
	if i := lastWhitespace(window); i >= 0 {
		return floor + i + 1
	}
	return limit
}

// lastParagraphBreak returns the index just past the last blank line, or -1.
func lastParagraphBreak(window []rune) int {
	for i := len(window) - 2; i >= 0; i-- {
		if window[i] == '\n' && window[i+1] == '\n' {
			return i + 2
		}
	}
	return -1
}

// lastSentenceEnd returns the index just past the last terminator that is
// followed by whitespace, or -1.
func lastSentenceEnd(window []rune) int {
	for i := len(window) - 2; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			if window[i+1] == ' ' || window[i+1] == '\n' {
				return i + 2
			}
		}
	}
	return -1
}

func lastWhitespace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case ' ', '\n', '\t':
			return i
		}
	}
	return -1
}
