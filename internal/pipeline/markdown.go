package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrMarkdownExtraction indicates Markdown could not be reduced to text.
var ErrMarkdownExtraction = errors.New("markdown text extraction failed")

// Compress runs of blank lines left behind by removed block markup.
var extraBlankLines = regexp.MustCompile(`\n{3,}`)

// TextExtractor reduces a marked-up document to plain text.
type TextExtractor interface {
	ToText(ctx context.Context, content string) (string, error)
}

// GoldmarkExtractor turns Markdown into plain text using goldmark (pure Go).
// Block elements become paragraphs separated by one blank line, list items
// keep a bullet or number, and inline markup is dropped.
type GoldmarkExtractor struct {
	md goldmark.Markdown
}

// NewGoldmarkExtractor creates a GoldmarkExtractor with GFM extensions.
func NewGoldmarkExtractor() *GoldmarkExtractor {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
	)
	return &GoldmarkExtractor{md: md}
}

// ToText extracts the readable text of a Markdown document.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (e *GoldmarkExtractor) ToText(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownExtraction, r)}
			}
		}()
		src := []byte(content)
		doc := e.md.Parser().Parse(text.NewReader(src))
		var buf bytes.Buffer
		if err := ast.Walk(doc, textWalker(&buf, src)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownExtraction, err)}
			return
		}
		done <- result{text: tidyText(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

// textWalker writes the text of each visited node into buf.
func textWalker(buf *bytes.Buffer, src []byte) ast.Walker {
	return func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				buf.Write(node.Label(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				writeLines(buf, n, src)
				buf.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			if entering {
				buf.WriteString(listMarker(node))
			}
		case *ast.Paragraph, *ast.Heading:
			if !entering {
				buf.WriteString("\n\n")
			}
		case *ast.TextBlock:
			if !entering {
				buf.WriteString("\n")
			}
		case *east.TableCell:
			if !entering {
				buf.WriteString(" ")
			}
		case *east.TableHeader, *east.TableRow:
			if !entering {
				buf.WriteString("\n")
			}
		case *ast.List, *east.Table:
			if !entering {
				buf.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	}
}

// writeLines copies the raw lines of a code block.
func writeLines(buf *bytes.Buffer, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
}

// listMarker returns "- " for bullet items and "N. " for ordered ones.
func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "- "
	}
	index := list.Start
	for sib := list.FirstChild(); sib != nil && sib != ast.Node(item); sib = sib.NextSibling() {
		index++
	}
	return strconv.Itoa(index) + ". "
}

// tidyText trims trailing spaces on each line and limits blank runs to one.
func tidyText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	s = strings.Join(lines, "\n")
	s = extraBlankLines.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n")
}
