package netlist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var (
	valuePattern   = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?s?$`)
	literalPattern = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// ParseValue - Parse value and factor. 1k -> 1000
func ParseValue(val string) (float64, error) {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	// factor
	if len(matches) > 2 && matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}

	return num, nil
}

// LeadingLiteral splits s into its leading numeric literal (sign, digits,
// decimal point, exponent) and the remainder.
func LeadingLiteral(s string) (string, string) {
	lit := literalPattern.FindString(s)
	return lit, s[len(lit):]
}

// SplitBraced splits a brace-wrapped value such as {2.0e-06+temp_coeff} into
// its tunable literal "2.0e-06" and the verbatim remainder "+temp_coeff".
// Values without braces are returned unchanged with braced false.
func SplitBraced(value string) (literal, extra string, braced bool) {
	if !strings.HasPrefix(value, "{") {
		return value, "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(value, "{"), "}")
	literal, extra = LeadingLiteral(strings.TrimLeft(inner, " \t"))
	if literal == "" {
		return "", inner, true
	}
	return literal, extra, true
}

// BraceLead returns the whitespace between the opening brace of value and
// its first non-blank byte.
func BraceLead(value string) string {
	if !strings.HasPrefix(value, "{") {
		return ""
	}
	inner := value[1:]
	return inner[:len(inner)-len(strings.TrimLeft(inner, " \t"))]
}

// FormatValue renders {literal extra} when extra is non-empty and the bare
// literal otherwise.
func FormatValue(literal, extra string) string {
	if extra != "" {
		return "{" + literal + extra + "}"
	}
	return literal
}

func FormatAssignment(name, literal, extra string) string {
	return name + "=" + FormatValue(literal, extra)
}

// IsLiteral reports whether s is exactly one numeric literal.
func IsLiteral(s string) bool {
	lit, rest := LeadingLiteral(s)
	return lit != "" && rest == ""
}
