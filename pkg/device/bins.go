package device

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrNoDimensions = errors.New("device: no dimensions for bin")

// Table is an immutable bin -> geometry lookup for one polarity.
type Table struct {
	polarity Polarity
	dims     map[int]Dimensions
	order    []int
}

// NewTable copies dims; later changes to the map do not affect the table.
func NewTable(polarity Polarity, dims map[int]Dimensions) *Table {
	t := &Table{
		polarity: polarity,
		dims:     make(map[int]Dimensions, len(dims)),
		order:    make([]int, 0, len(dims)),
	}
	for bin, d := range dims {
		t.dims[bin] = d
		t.order = append(t.order, bin)
	}
	sort.Ints(t.order)
	return t
}

func (t *Table) Polarity() Polarity { return t.polarity }

// Bins returns the bin numbers in ascending order.
func (t *Table) Bins() []int {
	return append([]int(nil), t.order...)
}

func (t *Table) Len() int { return len(t.order) }

// Dimensions returns the geometry of bin, or ErrNoDimensions.
func (t *Table) Dimensions(bin int) (Dimensions, error) {
	d, ok := t.dims[bin]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w %d (%s)", ErrNoDimensions, bin, t.polarity)
	}
	return d, nil
}

// Lookup scans bins in ascending order for the first whose W and L are both
// strictly within tol of the request.
func (t *Table) Lookup(w, l, tol float64) (int, bool) {
	for _, bin := range t.order {
		d := t.dims[bin]
		if math.Abs(d.W-w) < tol && math.Abs(d.L-l) < tol {
			return bin, true
		}
	}
	return 0, false
}

// Next returns the bin following bin and its geometry, if defined.
func (t *Table) Next(bin int) (int, Dimensions, bool) {
	d, ok := t.dims[bin+1]
	return bin + 1, d, ok
}

// Tables holds one Table per polarity.
type Tables struct {
	N *Table
	P *Table
}

// For returns the table of polarity.
func (ts Tables) For(p Polarity) *Table {
	if p == P {
		return ts.P
	}
	return ts.N
}

// DefaultTables returns the sky130 01v8 bin geometries.
func DefaultTables() Tables {
	return Tables{
		N: NewTable(N, nfetBins),
		P: NewTable(P, pfetBins),
	}
}

var nfetBins = map[int]Dimensions{
	0: {1.26, 0.15}, 1: {1.68, 0.15}, 2: {1.0, 1.0}, 3: {1.0, 2.0},
	4: {1.0, 4.0}, 5: {1.0, 8.0}, 6: {1.0, 0.15}, 7: {1.0, 0.18},
	8: {1.0, 0.25}, 9: {1.0, 0.5}, 10: {2.0, 0.15}, 11: {3.0, 1.0},
	12: {3.0, 2.0}, 13: {3.0, 4.0}, 14: {3.0, 8.0}, 15: {3.0, 0.15},
	16: {3.0, 0.18}, 17: {3.0, 0.25}, 18: {3.0, 0.5}, 19: {5.0, 1.0},
	20: {5.0, 2.0}, 21: {5.0, 4.0}, 22: {5.0, 8.0}, 23: {5.0, 0.15},
	24: {5.0, 0.18}, 25: {5.0, 0.25}, 26: {5.0, 0.5}, 27: {7.0, 1.0},
	28: {7.0, 2.0}, 29: {7.0, 4.0}, 30: {7.0, 8.0}, 31: {7.0, 0.15},
	32: {7.0, 0.18}, 33: {7.0, 0.25}, 34: {7.0, 0.5}, 35: {0.42, 1.0},
	36: {0.42, 20.0}, 37: {0.42, 2.0}, 38: {0.42, 4.0}, 39: {0.42, 8.0},
	40: {0.42, 0.15}, 41: {0.42, 0.18}, 42: {0.42, 0.5}, 43: {0.55, 1.0},
	44: {0.55, 2.0}, 45: {0.55, 4.0}, 46: {0.55, 8.0}, 47: {0.55, 0.15},
	48: {0.55, 0.5}, 49: {0.64, 0.15}, 50: {0.84, 0.15}, 51: {0.74, 0.15},
	52: {0.36, 0.15}, 53: {0.39, 0.15}, 54: {0.52, 0.15}, 55: {0.54, 0.15},
	56: {0.58, 0.15}, 57: {0.6, 0.15}, 58: {0.61, 0.15}, 59: {0.65, 0.15},
	60: {0.65, 0.18}, 61: {0.65, 0.25}, 62: {0.65, 0.5},
}

var pfetBins = map[int]Dimensions{
	0: {1.26, 0.15}, 1: {1.68, 0.15}, 2: {1.0, 1.0}, 3: {1.0, 2.0},
	4: {1.0, 4.0}, 5: {1.0, 8.0}, 6: {1.0, 0.15}, 7: {1.0, 0.18},
	8: {1.0, 0.25}, 9: {1.0, 0.5}, 10: {2.0, 0.15}, 11: {3.0, 1.0},
	12: {3.0, 2.0}, 13: {3.0, 4.0}, 14: {3.0, 8.0}, 15: {3.0, 0.15},
	16: {3.0, 0.18}, 17: {3.0, 0.25}, 18: {3.0, 0.5}, 19: {5.0, 1.0},
	20: {5.0, 2.0}, 21: {5.0, 4.0}, 22: {5.0, 8.0}, 23: {5.0, 0.15},
	24: {5.0, 0.18}, 25: {5.0, 0.25}, 26: {5.0, 0.5}, 27: {7.0, 1.0},
	28: {7.0, 2.0}, 29: {7.0, 4.0}, 30: {7.0, 8.0}, 31: {7.0, 0.15},
	32: {7.0, 0.18}, 33: {7.0, 0.25}, 34: {7.0, 0.5}, 35: {0.42, 1.0},
	36: {0.42, 20.0}, 37: {0.42, 2.0}, 38: {0.42, 4.0}, 39: {0.42, 8.0},
	40: {0.42, 0.15}, 41: {0.42, 0.18}, 42: {0.42, 0.5}, 43: {0.55, 1.0},
	44: {0.55, 2.0}, 45: {0.55, 4.0}, 46: {0.55, 8.0}, 47: {0.55, 0.15},
	48: {0.55, 0.5}, 49: {0.64, 0.15}, 50: {0.84, 0.15}, 51: {1.65, 0.15},
}
