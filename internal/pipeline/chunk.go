package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// wordSpan locates a word inside a line by byte offsets.
type wordSpan struct {
	start, end int
}

// ChunkLine splits a line into word groups bounded by cfg. Chunks keep the
// line's own spacing between their words; only whitespace at chunk
// boundaries is dropped. A word is never split or dropped, even when it
// alone exceeds the width budget. Blank lines yield no chunks.
func ChunkLine(line string, lineIndex int, cfg ChunkConfig) []Chunk {
	spans := wordSpans(line)
	if len(spans) == 0 {
		return nil
	}

	maxWords := cfg.MaxWords
	if maxWords < 1 {
		maxWords = 1
	}

	var sizes []int
	switch cfg.Strategy {
	case ChunkBalanced:
		sizes = balancedSizes(len(spans), maxWords)
	case ChunkWidth:
		sizes = widthSizes(line, spans, maxWords, cfg.MaxRunes)
	default:
		sizes = fixedSizes(len(spans), maxWords)
	}

	chunks := make([]Chunk, 0, len(sizes))
	next := 0
	for i, size := range sizes {
		first, last := spans[next], spans[next+size-1]
		chunks = append(chunks, Chunk{
			Line:  lineIndex,
			Index: i,
			Text:  line[first.start:last.end],
			Start: first.start,
			End:   last.end,
			Words: size,
		})
		next += size
	}
	return chunks
}

// JoinChunks rebuilds a line from its chunks, one space per boundary.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// fixedSizes cuts n words into groups of limit, the last one possibly shorter.
func fixedSizes(n, limit int) []int {
	sizes := make([]int, 0, (n+limit-1)/limit)
	for n > 0 {
		size := min(n, limit)
		sizes = append(sizes, size)
		n -= size
	}
	return sizes
}

// balancedSizes uses the fewest chunks fixed sizing would need but spreads
// the words so that sizes differ by at most one.
func balancedSizes(n, limit int) []int {
	count := (n + limit - 1) / limit
	base, extra := n/count, n%count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// widthSizes grows each chunk while its rune width stays within maxRunes
// and its word count within maxWords. A non-positive budget means words
// only.
func widthSizes(line string, spans []wordSpan, maxWords, maxRunes int) []int {
	var sizes []int
	for i := 0; i < len(spans); {
		size := 1
		for i+size < len(spans) && size < maxWords {
			width := utf8.RuneCountInString(line[spans[i].start:spans[i+size].end])
			if maxRunes > 0 && width > maxRunes {
				break
			}
			size++
		}
		sizes = append(sizes, size)
		i += size
	}
	return sizes
}

// wordSpans returns the maximal runs of non-space runes in line.
func wordSpans(line string) []wordSpan {
	var spans []wordSpan
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, wordSpan{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, wordSpan{start: start, end: len(line)})
	}
	return spans
}
