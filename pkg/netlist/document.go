package netlist

import "strings"

// Line is the byte range of one physical line of a Document, including its
// line terminator when present.
type Line struct {
	Start int
	End   int
}

// Document is an indexed, read-only view of a text blob as physical lines.
// Edits are expressed by building a new text from line ranges.
type Document struct {
	text  string
	lines []Line
}

// NewDocument indexes text. A trailing line without terminator is kept.
func NewDocument(text string) *Document {
	d := &Document{text: text}
	start := 0
	for start < len(text) {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			d.lines = append(d.lines, Line{Start: start, End: len(text)})
			break
		}
		end := start + idx + 1
		d.lines = append(d.lines, Line{Start: start, End: end})
		start = end
	}
	return d
}

func (d *Document) Text() string { return d.text }

func (d *Document) Len() int { return len(d.lines) }

// Raw returns line i including its terminator.
func (d *Document) Raw(i int) string {
	l := d.lines[i]
	return d.text[l.Start:l.End]
}

// Content returns line i without "\n" or "\r\n".
func (d *Document) Content(i int) string {
	return strings.TrimRight(d.Raw(i), "\r\n")
}

// Terminator returns the line ending of line i ("", "\n" or "\r\n").
func (d *Document) Terminator(i int) string {
	raw := d.Raw(i)
	return raw[len(strings.TrimRight(raw, "\r\n")):]
}

// IsBlank reports a line that is empty or whitespace only.
func (d *Document) IsBlank(i int) bool {
	return strings.TrimSpace(d.Raw(i)) == ""
}

// IsContinuation reports a line starting with the '+' continuation marker.
func (d *Document) IsContinuation(i int) bool {
	return strings.HasPrefix(d.Raw(i), "+")
}

// IsDeclaration reports a section-declaration (.model) line.
func (d *Document) IsDeclaration(i int) bool {
	return IsDeclaration(d.Content(i))
}

// Span is a section: the declaration line and the half-open body range
// [Decl+1, End).
type Span struct {
	Decl int
	End  int
}

// Body returns the indexes of the body lines.
func (s Span) Body() (int, int) { return s.Decl + 1, s.End }

// Section returns the span opened by the declaration at line decl. The body
// runs until a blank line or the next declaration, both exclusive.
func (d *Document) Section(decl int) Span {
	end := decl + 1
	for end < d.Len() {
		if d.IsBlank(end) || d.IsDeclaration(end) {
			break
		}
		end++
	}
	return Span{Decl: decl, End: end}
}

// FindSection returns the first section whose declaration satisfies match.
func (d *Document) FindSection(match func(Declaration) bool) (Span, bool) {
	for i := 0; i < d.Len(); i++ {
		if !d.IsDeclaration(i) {
			continue
		}
		decl, err := ParseDeclaration(d.Content(i))
		if err != nil || !match(decl) {
			continue
		}
		return d.Section(i), true
	}
	return Span{}, false
}

// Sections returns every section whose declaration satisfies match, with the
// parsed declarations.
func (d *Document) Sections(match func(Declaration) bool) ([]Span, []Declaration) {
	var spans []Span
	var decls []Declaration
	for i := 0; i < d.Len(); i++ {
		if !d.IsDeclaration(i) {
			continue
		}
		decl, err := ParseDeclaration(d.Content(i))
		if err != nil || !match(decl) {
			continue
		}
		spans = append(spans, d.Section(i))
		decls = append(decls, decl)
	}
	return spans, decls
}
