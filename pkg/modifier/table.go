package modifier

import (
	"sort"

	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/netlist"
)

// Entry is one parameter of a bin. A non-empty Extra is the expression tail
// kept after the tunable literal, written back as name={ValueExtra}.
type Entry struct {
	Name  string
	Value string
	Extra string
	Lead  string // Whitespace between '{' and the literal
}

// Tunable is false for brace expressions without a leading literal.
func (e Entry) Tunable() bool { return e.Value != "" }

// Text is the on-disk value form.
func (e Entry) Text() string {
	if e.Lead != "" {
		return "{" + e.Lead + e.Value + e.Extra + "}"
	}
	return netlist.FormatValue(e.Value, e.Extra)
}

func entryOf(tok netlist.Token) Entry {
	literal, extra, braced := netlist.SplitBraced(tok.Value)
	e := Entry{Name: tok.Name, Value: literal, Extra: extra}
	if braced && literal != "" {
		e.Lead = netlist.BraceLead(tok.Value)
	}
	return e
}

// sameText reports whether tok already carries e's value.
func (e Entry) sameText(tok netlist.Token) bool {
	on := entryOf(tok)
	return on.Value == e.Value && on.Extra == e.Extra && on.Lead == e.Lead
}

// BinTable holds the parameters of one bin in declaration order.
type BinTable struct {
	Bin     int
	names   []string
	entries map[string]Entry
}

func newBinTable(bin int) *BinTable {
	return &BinTable{Bin: bin, entries: make(map[string]Entry)}
}

func (b *BinTable) set(e Entry) {
	if _, ok := b.entries[e.Name]; !ok {
		b.names = append(b.names, e.Name)
	}
	b.entries[e.Name] = e
}

func (b *BinTable) Names() []string { return append([]string(nil), b.names...) }

func (b *BinTable) Entry(name string) (Entry, bool) {
	e, ok := b.entries[name]
	return e, ok
}

// Table maps bin numbers to their parameters.
type Table struct {
	bins map[int]*BinTable
}

// Parse reads every bin of polarity p in text. Each continuation-line
// assignment of a bin becomes an entry; a repeated name keeps the last value.
func Parse(text string, p device.Polarity) Table {
	t := Table{bins: make(map[int]*BinTable)}
	doc := netlist.NewDocument(text)
	prefix, kind := p.Prefix(), p.Kind()

	spans, decls := doc.Sections(func(d netlist.Declaration) bool {
		return d.MatchesFamily(prefix, kind)
	})
	for i, span := range spans {
		bt, ok := t.bins[decls[i].Bin]
		if !ok {
			bt = newBinTable(decls[i].Bin)
			t.bins[decls[i].Bin] = bt
		}
		start, end := span.Body()
		for line := start; line < end; line++ {
			if !doc.IsContinuation(line) {
				continue
			}
			for _, tok := range netlist.Tokens(doc.Content(line)) {
				bt.set(entryOf(tok))
			}
		}
	}
	return t
}

func (t Table) Bin(bin int) (*BinTable, bool) {
	bt, ok := t.bins[bin]
	return bt, ok
}

// Bins returns the bin numbers in ascending order.
func (t Table) Bins() []int {
	bins := make([]int, 0, len(t.bins))
	for bin := range t.bins {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	return bins
}
