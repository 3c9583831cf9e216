package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValueFactor(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{1.8, "V", "1.800 V"},
		{0.0015, "A", "1.500 mA"},
		{2.5e-6, "A", "2.500 uA"},
		{1.5e-7, "m", "150.000 nm"},
		{3e-12, "F", "3.000 pF"},
		{1e-15, "F", "1.000e-15 F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValueFactor(tt.value, tt.unit))
	}
}

func TestFormatMicrons(t *testing.T) {
	assert.Equal(t, "1.260 um", FormatMicrons(1.26))
	assert.Equal(t, "150.000 nm", FormatMicrons(0.15))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1.8", FormatNumber(1.8))
	assert.Equal(t, "0.1", FormatNumber(0.1))
	assert.Equal(t, "2", FormatNumber(2.0))
	assert.Equal(t, "-269", FormatNumber(-269))
}

func TestRoundSignificant(t *testing.T) {
	assert.Equal(t, 0.3, RoundSignificant(0.1+0.2, 12))
	assert.Equal(t, 1.2, RoundSignificant(0.6*2, 12))
}
