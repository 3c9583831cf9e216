// Package modifier applies point edits to the modified fragment of a bin.
// Only parameter value text changes; every other byte of the file, and the
// order of names on each line, is kept.
package modifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edp1096/icemos/internal/ctxlog"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/fragment"
	"github.com/edp1096/icemos/pkg/netlist"
)

var ErrInvalidValue = errors.New("modifier: value is not a numeric literal")

// Modifier owns the parameter table of one fragment pair. The original
// fragment decides which bins and names exist; current values come from the
// modified fragment so edits of earlier sessions carry over.
type Modifier struct {
	pair     fragment.Pair
	polarity device.Polarity
	original Table
	current  Table
}

// New parses the original fragment and creates the modified copy if needed.
func New(ctx context.Context, pair fragment.Pair, polarity device.Polarity) (*Modifier, error) {
	logger := ctxlog.FromContext(ctx)

	text, err := pair.Read(fragment.Original)
	if err != nil {
		return nil, fmt.Errorf("modifier: %w", err)
	}
	m := &Modifier{
		pair:     pair,
		polarity: polarity,
		original: Parse(text, polarity),
		current:  Parse(text, polarity),
	}

	copied, err := pair.EnsureModified()
	if err != nil {
		return nil, fmt.Errorf("modifier: %w", err)
	}
	if copied {
		logger.Debug("Created modified fragment", "path", pair.Modified)
		return m, nil
	}

	modified, err := pair.Read(fragment.Modified)
	if err != nil {
		return nil, fmt.Errorf("modifier: %w", err)
	}
	m.overlay(Parse(modified, polarity))
	return m, nil
}

// overlay takes values from on for names the original declares.
func (m *Modifier) overlay(on Table) {
	for bin, bt := range m.current.bins {
		src, ok := on.bins[bin]
		if !ok {
			continue
		}
		for _, name := range bt.names {
			e, ok := src.entries[name]
			if !ok || !e.Tunable() || !bt.entries[name].Tunable() {
				continue
			}
			cur := bt.entries[name]
			cur.Value = e.Value
			bt.entries[name] = cur
		}
	}
}

func (m *Modifier) Pair() fragment.Pair { return m.pair }

func (m *Modifier) Bins() []int { return m.current.Bins() }

// Names lists the parameters of bin in declaration order.
func (m *Modifier) Names(bin int) []string {
	bt, ok := m.current.Bin(bin)
	if !ok {
		return nil
	}
	return bt.Names()
}

// Value returns the current entry of name in bin.
func (m *Modifier) Value(bin int, name string) (Entry, bool) {
	bt, ok := m.current.Bin(bin)
	if !ok {
		return Entry{}, false
	}
	return bt.Entry(name)
}

// Changed lists the names of bin whose value differs from the original.
func (m *Modifier) Changed(bin int) []string {
	cur, ok := m.current.Bin(bin)
	if !ok {
		return nil
	}
	orig, _ := m.original.Bin(bin)

	var names []string
	for _, name := range cur.names {
		if cur.entries[name].Value != orig.entries[name].Value {
			names = append(names, name)
		}
	}
	return names
}

// ModifyParameter sets name in bin to value and rewrites the bin. Unknown
// bins, unknown names and non-tunable entries are ignored.
func (m *Modifier) ModifyParameter(ctx context.Context, bin int, name, value string) error {
	changed, err := m.set(ctx, bin, name, value)
	if err != nil || !changed {
		return err
	}
	return m.RewriteBin(ctx, bin)
}

// ApplyAll sets every known name of values in bin, then rewrites once. All
// values are checked first; one rejected value leaves the table untouched.
func (m *Modifier) ApplyAll(ctx context.Context, bin int, values map[string]string) error {
	for _, name := range m.Names(bin) {
		value, ok := values[name]
		if !ok {
			continue
		}
		if e, _ := m.Value(bin, name); e.Tunable() {
			if err := checkLiteral(name, value); err != nil {
				return err
			}
		}
	}

	dirty := false
	for _, name := range m.Names(bin) {
		value, ok := values[name]
		if !ok {
			continue
		}
		changed, err := m.set(ctx, bin, name, value)
		if err != nil {
			return err
		}
		dirty = dirty || changed
	}
	if !dirty {
		return nil
	}
	return m.RewriteBin(ctx, bin)
}

// ResetParameter restores the original value of name in bin.
func (m *Modifier) ResetParameter(ctx context.Context, bin int, name string) error {
	orig, ok := m.original.Bin(bin)
	if !ok {
		return nil
	}
	e, ok := orig.Entry(name)
	if !ok || !e.Tunable() {
		return nil
	}
	return m.ModifyParameter(ctx, bin, name, e.Value)
}

func (m *Modifier) set(ctx context.Context, bin int, name, value string) (bool, error) {
	logger := ctxlog.FromContext(ctx).With("bin", bin, "name", name)

	bt, ok := m.current.Bin(bin)
	if !ok {
		logger.Debug("Ignoring edit of unknown bin")
		return false, nil
	}
	e, ok := bt.Entry(name)
	if !ok {
		logger.Debug("Ignoring edit of unknown parameter")
		return false, nil
	}
	if !e.Tunable() {
		logger.Debug("Ignoring edit of expression parameter", "expression", e.Extra)
		return false, nil
	}

	value = strings.TrimSpace(value)
	if err := checkLiteral(name, value); err != nil {
		return false, err
	}

	e.Value = value
	bt.entries[name] = e
	logger.Debug("Set parameter", "value", e.Text())
	return true, nil
}

func checkLiteral(name, value string) error {
	if !netlist.IsLiteral(strings.TrimSpace(value)) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, name, value)
	}
	return nil
}

// RewriteBin writes the current table values of bin into the modified
// fragment. Only tokens whose on-disk value differs are replaced.
func (m *Modifier) RewriteBin(ctx context.Context, bin int) error {
	bt, ok := m.current.Bin(bin)
	if !ok {
		return nil
	}

	text, err := m.pair.Read(fragment.Modified)
	if err != nil {
		return fmt.Errorf("modifier: %w", err)
	}

	out, err := rewrite(text, m.polarity, bt)
	if err != nil {
		return err
	}
	if out == text {
		return nil
	}

	if err := m.pair.ReplaceModified(out); err != nil {
		return fmt.Errorf("modifier: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Rewrote bin", "bin", bin, "path", m.pair.Modified)
	return nil
}

// rewrite indexes the bin span first, then rebuilds the text line by line.
func rewrite(text string, p device.Polarity, bt *BinTable) (string, error) {
	doc := netlist.NewDocument(text)
	span, ok := doc.FindSection(func(d netlist.Declaration) bool {
		return d.Matches(p.Prefix(), p.Kind(), bt.Bin)
	})
	if !ok {
		return "", fmt.Errorf("modifier: %s missing from modified fragment", p.ModelName(bt.Bin))
	}

	var b strings.Builder
	b.Grow(len(text))
	start, end := span.Body()
	for i := 0; i < doc.Len(); i++ {
		if i < start || i >= end || !doc.IsContinuation(i) {
			b.WriteString(doc.Raw(i))
			continue
		}
		line := doc.Content(i)
		b.WriteString(netlist.ReplaceTokens(line, func(tok netlist.Token) (string, bool) {
			e, ok := bt.entries[tok.Name]
			if !ok || !e.Tunable() || e.sameText(tok) {
				return "", false
			}
			return line[tok.Start:tok.ValueStart] + e.Text(), true
		}))
		b.WriteString(doc.Terminator(i))
	}
	return b.String(), nil
}
