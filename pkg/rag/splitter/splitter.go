package splitter

import (
	"strings"
)

// Default separators, ordered from strongest to weakest boundary.
var defaultSeparators = []string{"\n\n", "\n", ". ", " "}

// Large inputs are pre-cut into coarse windows before recursive splitting to
// keep recursion depth and allocation bounded.
const coarseWindowThreshold = 50000

type Splitter struct {
	ChunkSize  int // target max chunk length, in runes
	Overlap    int // max overlap carried between adjacent chunks, in runes
	separators []string
}

func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 510
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize:  chunkSize,
		Overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split cuts text into chunks of at most ChunkSize runes, preferring natural
// boundaries (paragraphs, then lines, then sentences, then words). A single
// token longer than ChunkSize with no internal boundary is kept intact rather
// than cut mid-token. Whitespace-only chunks are dropped.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var pieces []string
	if len([]rune(text)) > coarseWindowThreshold {
		for _, window := range s.coarseWindows(text) {
			pieces = append(pieces, s.splitRecursive(window, s.separators)...)
		}
	} else {
		pieces = s.splitRecursive(text, s.separators)
	}

	chunks := s.merge(pieces)

	var out []string
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}

// splitRecursive breaks text on the strongest separator present, then recurses
// into any fragment still over ChunkSize with the remaining weaker separators.
func (s *Splitter) splitRecursive(text string, separators []string) []string {
	if runeLen(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		// No boundary left to cut on. Keep the token whole.
		return []string{text}
	}

	sep := separators[0]
	rest := separators[1:]

	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return s.splitRecursive(text, rest)
	}

	var out []string
	for i, part := range parts {
		// Re-attach the separator so merged chunks read naturally.
		if i < len(parts)-1 {
			part += sep
		}
		if part == "" {
			continue
		}
		if runeLen(part) > s.ChunkSize {
			out = append(out, s.splitRecursive(part, rest)...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// merge greedily packs pieces into chunks of at most ChunkSize runes and
// carries up to Overlap runes of trailing pieces into the next chunk.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, ""))

		// Retain tail pieces totalling at most Overlap runes.
		var tail []string
		tailLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			pl := runeLen(current[i])
			if tailLen+pl > s.Overlap {
				break
			}
			tail = append([]string{current[i]}, tail...)
			tailLen += pl
		}
		current = tail
		currentLen = tailLen
	}

	for _, piece := range pieces {
		pl := runeLen(piece)
		if currentLen+pl > s.ChunkSize && currentLen > 0 {
			flush()
			// The overlap tail plus the new piece may still not fit.
			for currentLen+pl > s.ChunkSize && len(current) > 0 {
				currentLen -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		currentLen += pl
	}
	if currentLen > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}
	return chunks
}

// coarseWindows pre-cuts very large text at paragraph boundaries near a fixed
// stride, falling back to hard cuts when no boundary is nearby.
func (s *Splitter) coarseWindows(text string) []string {
	runes := []rune(text)
	stride := coarseWindowThreshold

	var windows []string
	start := 0
	for start < len(runes) {
		end := start + stride
		if end >= len(runes) {
			windows = append(windows, string(runes[start:]))
			break
		}

		cut := end
		// Search backwards for a paragraph break within the last 10% of the window.
		searchFrom := end - stride/10
		if idx := lastIndexOf(runes, start+1, end, "\n\n"); idx >= searchFrom {
			cut = idx + 2
		}
		windows = append(windows, string(runes[start:cut]))
		start = cut
	}
	return windows
}

func lastIndexOf(runes []rune, from, to int, sep string) int {
	sub := string(runes[from:to])
	idx := strings.LastIndex(sub, sep)
	if idx < 0 {
		return -1
	}
	return from + len([]rune(sub[:idx]))
}

func runeLen(s string) int {
	return len([]rune(s))
}
