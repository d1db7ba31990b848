package pipeline

import (
	"strings"
	"testing"
)

func chunkTexts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func TestChunkLine_Strategies(t *testing.T) {
	t.Parallel()

	line := "one two three four five six seven"

	tests := []struct {
		name string
		cfg  ChunkConfig
		want []string
	}{
		{
			name: "fixed groups",
			cfg:  ChunkConfig{Strategy: ChunkFixed, MaxWords: 3},
			want: []string{"one two three", "four five six", "seven"},
		},
		{
			name: "balanced groups",
			cfg:  ChunkConfig{Strategy: ChunkBalanced, MaxWords: 3},
			want: []string{"one two three", "four five", "six seven"},
		},
		{
			name: "width budget",
			cfg:  ChunkConfig{Strategy: ChunkWidth, MaxWords: 10, MaxRunes: 10},
			want: []string{"one two", "three four", "five six", "seven"},
		},
		{
			name: "width bounded by words",
			cfg:  ChunkConfig{Strategy: ChunkWidth, MaxWords: 2, MaxRunes: 100},
			want: []string{"one two", "three four", "five six", "seven"},
		},
		{
			name: "empty strategy defaults to fixed",
			cfg:  ChunkConfig{MaxWords: 4},
			want: []string{"one two three four", "five six seven"},
		},
		{
			name: "all words in one chunk",
			cfg:  ChunkConfig{Strategy: ChunkFixed, MaxWords: 50},
			want: []string{line},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := chunkTexts(ChunkLine(line, 0, tt.cfg))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkLine_RoundTripAndBounds(t *testing.T) {
	t.Parallel()

	lines := []string{
		"a",
		"Hello world",
		"The quick brown fox jumps over the lazy dog near the riverbank",
		"    indented line with  double spaces ",
		"Supercalifragilisticexpialidocious",
	}
	strategies := []ChunkStrategy{ChunkFixed, ChunkBalanced, ChunkWidth}

	for _, line := range lines {
		for _, strategy := range strategies {
			for maxWords := 1; maxWords <= 6; maxWords++ {
				cfg := ChunkConfig{Strategy: strategy, MaxWords: maxWords, MaxRunes: 12}
				chunks := ChunkLine(line, 3, cfg)

				if got, want := JoinChunks(chunks), strings.Join(strings.Fields(line), " "); strings.Join(strings.Fields(got), " ") != want {
					t.Errorf("%s/%d: JoinChunks(%q) = %q", strategy, maxWords, line, got)
				}
				for i, c := range chunks {
					if c.Words > maxWords || len(strings.Fields(c.Text)) > maxWords {
						t.Errorf("%s/%d: chunk %q has %d words", strategy, maxWords, c.Text, c.Words)
					}
					if c.Text != line[c.Start:c.End] {
						t.Errorf("chunk text %q does not match offsets [%d:%d]", c.Text, c.Start, c.End)
					}
					if c.Index != i || c.Line != 3 {
						t.Errorf("chunk metadata = index %d line %d, want %d and 3", c.Index, c.Line, i)
					}
				}
			}
		}
	}
}

func TestChunkLine_KeepsInnerSpacing(t *testing.T) {
	t.Parallel()

	line := "a  b c"
	chunks := ChunkLine(line, 0, ChunkConfig{Strategy: ChunkFixed, MaxWords: 2})
	if len(chunks) != 2 || chunks[0].Text != "a  b" || chunks[1].Text != "c" {
		t.Errorf("got %q, want [\"a  b\" \"c\"]", chunkTexts(chunks))
	}
	if JoinChunks(chunks) != line {
		t.Errorf("JoinChunks = %q, want %q", JoinChunks(chunks), line)
	}
}

func TestChunkLine_LongWordStillEmitted(t *testing.T) {
	t.Parallel()

	word := strings.Repeat("x", 40)
	chunks := ChunkLine("hi "+word+" yo", 0, ChunkConfig{Strategy: ChunkWidth, MaxWords: 5, MaxRunes: 8})

	got := chunkTexts(chunks)
	want := []string{"hi", word, "yo"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestChunkLine_BlankLine(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   "} {
		if chunks := ChunkLine(line, 0, ChunkConfig{MaxWords: 3}); chunks != nil {
			t.Errorf("ChunkLine(%q) = %v, want nil", line, chunks)
		}
	}
}

func TestChunkLine_NonPositiveMaxWords(t *testing.T) {
	t.Parallel()

	chunks := ChunkLine("a b", 0, ChunkConfig{MaxWords: 0})
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want one per word", len(chunks))
	}
}
