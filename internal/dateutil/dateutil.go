// Package dateutil resolves the dateline written at the top of a page.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used by a bare "today".
const DefaultDateFormat = "MMMM D, YYYY"

// dateTokens maps format tokens to Go layout components.
// Longer tokens come first so matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"DDDD", "Monday"},
	{"MMM", "Jan"},
	{"DDD", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"letter":   "DDDD, D MMMM YYYY",
}

// ParseDateFormat converts a format string to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DDDD, DDD, DD, D.
// Bracketed text is literal: "[Week of] MMM D".
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(format[i:], &b)
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

// matchToken writes the layout of the token at the start of s and returns
// its length, or 0 if s does not start with a token.
func matchToken(s string, b *strings.Builder) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// Dateline resolves a dateline value at time t:
//   - "today" uses DefaultDateFormat
//   - "today:FORMAT" uses a format string or a preset name
//   - anything else is written verbatim
func Dateline(value string, t time.Time) (string, error) {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)

	if lower == "today" {
		return format(DefaultDateFormat, t)
	}
	if !strings.HasPrefix(lower, "today:") {
		return value, nil
	}

	spec := trimmed[len("today:"):]
	if spec == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"today:\"", ErrInvalidDateFormat)
	}
	if preset, ok := Presets[strings.ToLower(spec)]; ok {
		spec = preset
	}
	return format(spec, t)
}

func format(spec string, t time.Time) (string, error) {
	layout, err := ParseDateFormat(spec)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
