package pipeline

import (
	"sort"
	"strings"
)

// defaultAlphabetChars is the character set of the reference handwriting
// model. It has no uppercase Q, X or Z and no digits-only glyph variants.
const defaultAlphabetChars = " !\"#'(),-.0123456789:;?" +
	"ABCDEFGHIJKLMNOPRSTUVWY" +
	"abcdefghijklmnopqrstuvwxyz"

// Alphabet is an immutable set of runes the stroke engine can draw.
// Space and newline are always members: space is the replacement rune and
// newline carries line structure through the sanitizer.
type Alphabet struct {
	runes map[rune]struct{}
}

// NewAlphabet builds an alphabet from the runes of chars.
func NewAlphabet(chars string) Alphabet {
	runes := make(map[rune]struct{}, len(chars)+2)
	for _, r := range chars {
		runes[r] = struct{}{}
	}
	runes[' '] = struct{}{}
	runes['\n'] = struct{}{}
	return Alphabet{runes: runes}
}

// DefaultAlphabet returns a fresh copy of the reference model alphabet.
func DefaultAlphabet() Alphabet {
	return NewAlphabet(defaultAlphabetChars)
}

// Contains reports whether r is permitted.
func (a Alphabet) Contains(r rune) bool {
	if r == ' ' || r == '\n' {
		return true
	}
	_, ok := a.runes[r]
	return ok
}

// Len returns the number of permitted runes, space and newline included.
func (a Alphabet) Len() int {
	if a.runes == nil {
		return 2
	}
	return len(a.runes)
}

// String returns the permitted runes in code point order, newline excluded.
func (a Alphabet) String() string {
	runes := make([]rune, 0, len(a.runes))
	for r := range a.runes {
		if r != '\n' {
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

// Sanitize replaces every rune outside the alphabet with a space, then
// collapses runs of spaces into one. Nothing is removed outright, so the
// visible length of a line changes as little as possible.
func Sanitize(text string, alphabet Alphabet) string {
	var b strings.Builder
	b.Grow(len(text))

	prevSpace := false
	for _, r := range text {
		if !alphabet.Contains(r) {
			r = ' '
		}
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
