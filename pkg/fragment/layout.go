// Package fragment owns the on-disk state of extracted bins: the
// original/modified fragment pair and the per-bin directory layout.
package fragment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/edp1096/icemos/internal/consts"
	"github.com/edp1096/icemos/pkg/device"
)

// Variant selects the pristine or the editable side of a pair.
type Variant int

const (
	Original Variant = iota
	Modified
)

var Variants = []Variant{Original, Modified}

func (v Variant) String() string {
	if v == Modified {
		return "modified"
	}
	return "original"
}

// Label is the upper-case tag written into netlist titles.
func (v Variant) Label() string { return strings.ToUpper(v.String()) }

// Layout maps bin identities to paths below Root:
//
//	<root>/<pol>/bin_<n>/bin_<n>_<pol>_{original|modified}.lib
//	<root>/<pol>/bin_<n>/netlist_<family>_bin_<n>_{original|modified}.spice
//	<root>/<pol>/bin_<n>/results_<family>/
type Layout struct {
	Root string
}

func NewLayout(root string) Layout {
	if root == "" {
		root = consts.OUTPUT_ROOT
	}
	return Layout{Root: root}
}

func (l Layout) BinDir(p device.Polarity, bin int) string {
	return filepath.Join(l.Root, p.String(), fmt.Sprintf("bin_%d", bin))
}

// FragmentName is the base name of one side of the pair.
func (l Layout) FragmentName(p device.Polarity, bin int, v Variant) string {
	return fmt.Sprintf("bin_%d_%s_%s.lib", bin, p, v)
}

func (l Layout) Pair(p device.Polarity, bin int) Pair {
	dir := l.BinDir(p, bin)
	return Pair{
		Original: filepath.Join(dir, l.FragmentName(p, bin, Original)),
		Modified: filepath.Join(dir, l.FragmentName(p, bin, Modified)),
	}
}

// Netlist is the path of a rendered netlist for a family tag such as IV_VDS.
func (l Layout) Netlist(p device.Polarity, bin int, tag string, v Variant) string {
	return filepath.Join(l.BinDir(p, bin), fmt.Sprintf("netlist_%s_bin_%d_%s.spice", tag, bin, v))
}

// ResultsDir is the simulator output directory of a family, by its name
// relative to the bin directory.
func (l Layout) ResultsDir(p device.Polarity, bin int, name string) string {
	return filepath.Join(l.BinDir(p, bin), name)
}
