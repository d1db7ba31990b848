package pipeline

// Paginate groups lines into pages of at most LinesPerPage lines, in order.
// With AvoidOrphans set, page breaks may move earlier so that a paragraph's
// first line does not end a page and its last line does not open the next
// one alone. The pass only shortens pages and never leaves one empty.
func Paginate(lines []WrappedLine, cfg Config) []Page {
	if len(lines) == 0 {
		return nil
	}

	limit := cfg.LinesPerPage
	var pages []Page
	for start := 0; start < len(lines); {
		end := start + limit
		if end > len(lines) {
			end = len(lines)
		}
		if cfg.AvoidOrphans && end < len(lines) {
			end = adjustBreak(lines, start, end)
		}
		pages = append(pages, Page{
			Number: len(pages) + 1,
			Lines:  lines[start:end:end],
		})
		start = end
	}
	return pages
}

// adjustBreak returns a page end in (start, end] that avoids stranding a
// paragraph's first or last line, or end when no better break exists.
func adjustBreak(lines []WrappedLine, start, end int) int {
	candidate := end

	// Widow: the next page would open with a paragraph's last line while
	// the rest of the paragraph sits on this page. Carry one more line over.
	next := lines[candidate]
	if next.Last && !next.First && !next.IsBlank() {
		candidate--
	}
	if candidate <= start {
		return end
	}

	// Orphan: this page would end with a paragraph's first line whose
	// continuation moves to the next page. Push it over.
	last := lines[candidate-1]
	if last.First && !last.Last && !last.IsBlank() {
		candidate--
	}

	if candidate <= start {
		return end
	}
	return candidate
}
