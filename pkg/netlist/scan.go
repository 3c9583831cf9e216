package netlist

import (
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Value is one catalogued parameter value. Number is set when Text parses as
// a float.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
}

func (v Value) String() string { return v.Text }

// Catalog maps parameter names to their last seen value.
type Catalog map[string]Value

// Names returns the catalogued names sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scan collects every name=value assignment of every line of text. Values
// that parse as floats are kept as numbers too; the last occurrence of a name
// wins. Nothing is written.
func Scan(text string) Catalog {
	catalog := make(Catalog)
	doc := NewDocument(text)
	for i := 0; i < doc.Len(); i++ {
		for _, tok := range Tokens(doc.Content(i)) {
			v := Value{Text: tok.Value}
			if num, err := strconv.ParseFloat(tok.Value, 64); err == nil {
				v.Number = num
				v.IsNumber = true
			}
			catalog[tok.Name] = v
		}
	}
	return catalog
}

// ScanFile reads path and scans it.
func ScanFile(path string) (Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: reading %s: %w", path, err)
	}
	return Scan(string(content)), nil
}
