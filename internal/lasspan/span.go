// Package lasspan carries source-location information through the pipeline:
// lexer tokens, AST nodes, and diagnostics all refer back to the same span.
package lasspan

import "fmt"

// Span is a (filename, source text, byte offset, byte length) tuple.
// It is cheap to copy: Source aliases the original file contents, and
// Go strings share their backing array on slice/assignment.
type Span struct {
	File   string
	Source string
	Offset int
	Length int
	Line   int
	Column int
}

// Text returns the substring of Source that this span covers.
func (s Span) Text() string {
	if s.Offset < 0 || s.Offset+s.Length > len(s.Source) {
		return ""
	}
	return s.Source[s.Offset : s.Offset+s.Length]
}

// Locator renders the "file:line:column" form used in diagnostics.
func (s Span) Locator() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// SourceLine returns the full line of source text the span starts on,
// for diagnostics that want to show the offending line.
func (s Span) SourceLine() string {
	start := s.Offset
	for start > 0 && s.Source[start-1] != '\n' {
		start--
	}
	end := s.Offset
	for end < len(s.Source) && s.Source[end] != '\n' {
		end++
	}
	return s.Source[start:end]
}

// Join returns a span covering from the start of a to the end of b.
func Join(a, b Span) Span {
	return Span{
		File:   a.File,
		Source: a.Source,
		Offset: a.Offset,
		Length: (b.Offset + b.Length) - a.Offset,
		Line:   a.Line,
		Column: a.Column,
	}
}
