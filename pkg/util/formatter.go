package util

import (
	"fmt"
	"math"
	"strconv"
)

func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatMicrons prints a geometry given in micrometres, e.g. 0.15 -> "150.000 nm".
func FormatMicrons(um float64) string {
	return FormatValueFactor(um*1e-6, "m")
}

// FormatNumber is the shortest decimal form that parses back to the same value.
// Netlist text uses it so renders are byte-stable.
func FormatNumber(value float64) string {
	if value == 0 {
		return "0"
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// RoundSignificant trims float noise such as 0.30000000000000004.
func RoundSignificant(value float64, digits int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(value, 'g', digits, 64), 64)
	if err != nil {
		return value
	}
	return v
}
