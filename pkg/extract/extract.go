// Package extract materializes one bin of a vendor model library as a
// standalone, includable fragment pair.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/edp1096/icemos/internal/ctxlog"
	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/fragment"
	"github.com/edp1096/icemos/pkg/netlist"
	"github.com/edp1096/icemos/pkg/util"
)

var (
	ErrBinNotFound        = errors.New("extract: bin not found in library")
	ErrDimensionsNotFound = errors.New("extract: no bin for dimensions")
)

const endMarker = ".END"

type Option func(*Extractor)

// KeepExpressions leaves brace expressions in the fragment instead of
// reducing them to their leading literal.
func KeepExpressions() Option {
	return func(e *Extractor) { e.keepExpressions = true }
}

// Extractor pulls bins of one polarity out of a library text.
type Extractor struct {
	library  string
	polarity device.Polarity
	table    *device.Table
	layout   fragment.Layout

	keepExpressions bool
}

func New(library string, polarity device.Polarity, table *device.Table, layout fragment.Layout, opts ...Option) *Extractor {
	e := &Extractor{
		library:  library,
		polarity: polarity,
		table:    table,
		layout:   layout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open reads the library at path.
func Open(path string, polarity device.Polarity, table *device.Table, layout fragment.Layout, opts ...Option) (*Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read library: %w", err)
	}
	return New(string(data), polarity, table, layout, opts...), nil
}

func (e *Extractor) Polarity() device.Polarity { return e.polarity }

func (e *Extractor) Layout() fragment.Layout { return e.layout }

// Fragment returns the standalone text of bin without touching the disk.
func (e *Extractor) Fragment(bin int) (string, error) {
	doc := netlist.NewDocument(e.library)
	prefix, kind := e.polarity.Prefix(), e.polarity.Kind()

	var open bool
	span, ok := doc.FindSection(func(d netlist.Declaration) bool {
		if d.Matches(prefix, kind, bin) {
			open = d.Open
			return true
		}
		return false
	})
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBinNotFound, e.polarity.ModelName(bin))
	}

	var b strings.Builder
	first := strings.TrimRight(doc.Content(span.Decl), " \t")
	if !open {
		first += " ("
	}
	b.WriteString(first)
	b.WriteString("\n")

	start, end := span.Body()
	for i := start; i < end; i++ {
		line := doc.Content(i)
		if doc.IsContinuation(i) && !e.keepExpressions {
			line = reduceExpressions(line)
		}
		b.WriteString(line)
		if term := doc.Terminator(i); term != "" {
			b.WriteString(term)
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString(")\n\n")
	b.WriteString(endMarker)
	b.WriteString("\n")
	return b.String(), nil
}

// reduceExpressions replaces {literal...} values with the bare literal.
// Expressions without a leading literal are kept as written.
func reduceExpressions(line string) string {
	return netlist.ReplaceTokens(line, func(tok netlist.Token) (string, bool) {
		literal, _, braced := netlist.SplitBraced(tok.Value)
		if !braced || literal == "" {
			return "", false
		}
		return line[tok.Start:tok.ValueStart] + literal, true
	})
}

// Extract writes the fragment of bin to both sides of its pair. Nothing is
// written when the bin is absent.
func (e *Extractor) Extract(ctx context.Context, bin int) (fragment.Pair, error) {
	logger := ctxlog.FromContext(ctx).With("polarity", e.polarity.String(), "bin", bin)

	text, err := e.Fragment(bin)
	if err != nil {
		logger.Warn("Bin not found in library")
		return fragment.Pair{}, err
	}

	pair := e.layout.Pair(e.polarity, bin)
	if err := pair.Write(text); err != nil {
		return fragment.Pair{}, err
	}
	logger.Info("Extracted bin", "original", pair.Original, "modified", pair.Modified)
	e.logValidity(logger, bin)

	return pair, nil
}

func (e *Extractor) logValidity(logger *slog.Logger, bin int) {
	if e.table == nil {
		return
	}
	dims, err := e.table.Dimensions(bin)
	if err != nil {
		logger.Info("Bin has no dimensions in lookup table")
		return
	}
	next := "no next bin"
	if n, nd, ok := e.table.Next(bin); ok {
		next = fmt.Sprintf("bin %d (W = %s, L = %s)", n, util.FormatMicrons(nd.W), util.FormatMicrons(nd.L))
	}
	logger.Info("Bin geometry",
		"w", util.FormatMicrons(dims.W),
		"l", util.FormatMicrons(dims.L),
		"valid_until", next)
}

// Lookup resolves (w, l) in micrometres to a bin through the table.
func (e *Extractor) Lookup(w, l, tol float64) (int, error) {
	if e.table == nil {
		return 0, fmt.Errorf("%w: no lookup table", ErrDimensionsNotFound)
	}
	bin, ok := e.table.Lookup(w, l, tol)
	if !ok {
		return 0, fmt.Errorf("%w: W=%s um L=%s um (%s)", ErrDimensionsNotFound,
			util.FormatNumber(w), util.FormatNumber(l), e.polarity)
	}
	return bin, nil
}

// ExtractByDimensions resolves (w, l) and extracts that bin.
func (e *Extractor) ExtractByDimensions(ctx context.Context, w, l, tol float64) (int, fragment.Pair, error) {
	bin, err := e.Lookup(w, l, tol)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("No bin for dimensions", "w", w, "l", l)
		return 0, fragment.Pair{}, err
	}
	pair, err := e.Extract(ctx, bin)
	return bin, pair, err
}
