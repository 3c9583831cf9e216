package device

import (
	"errors"
	"fmt"
	"strings"
)

// Polarity selects the device family of the vendor library.
type Polarity int

const (
	N Polarity = iota // nfet_01v8, "nch"
	P                 // pfet_01v8, "pch"
)

var ErrUnknownPolarity = errors.New("device: unknown polarity")

const (
	nfetPrefix = "sky130_fd_pr__nfet_01v8__model"
	pfetPrefix = "sky130_fd_pr__pfet_01v8__model"
)

// ParsePolarity accepts n, nch, nmos, nfet and the p equivalents, any case.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "nch", "nmos", "nfet":
		return N, nil
	case "p", "pch", "pmos", "pfet":
		return P, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolarity, s)
}

// String is the directory and file-name tag: "nch" or "pch".
func (p Polarity) String() string {
	if p == P {
		return "pch"
	}
	return "nch"
}

// Prefix is the model-name prefix of every bin of this polarity.
func (p Polarity) Prefix() string {
	if p == P {
		return pfetPrefix
	}
	return nfetPrefix
}

// Kind is the transistor kind declared on the .model line.
func (p Polarity) Kind() string {
	if p == P {
		return "pmos"
	}
	return "nmos"
}

// Letter is used in measurement file names (n_mosfet_..., p_mosfet_...).
func (p Polarity) Letter() string {
	if p == P {
		return "p"
	}
	return "n"
}

// ModelName is "<prefix>.<bin>".
func (p Polarity) ModelName(bin int) string {
	return fmt.Sprintf("%s.%d", p.Prefix(), bin)
}

// BinID identifies one parameter block of the library.
type BinID struct {
	Polarity Polarity
	Bin      int
}

func (b BinID) String() string {
	return fmt.Sprintf("%s/bin_%d", b.Polarity, b.Bin)
}

// Dimensions is a transistor geometry in micrometres.
type Dimensions struct {
	W float64
	L float64
}

func (d Dimensions) String() string {
	return fmt.Sprintf("W=%g um, L=%g um", d.W, d.L)
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.W > 0 && d.L > 0
}
