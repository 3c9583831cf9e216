package sweep

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues(t *testing.T) {
	tests := []struct {
		spec Spec
		want []float64
	}{
		{New(0, 1.8, 0.6), []float64{0, 0.6, 1.2, 1.8}},
		{New(0, 1, 0.3), []float64{0, 0.3, 0.6, 0.9}},
		{New(0.5, 0.5, 0.1), []float64{0.5}},
		{New(-1, 1, 1), []float64{-1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Values())
		})
	}

	gate := New(0, 1.8, 0.1).Values()
	require.Len(t, gate, 19)
	assert.Equal(t, 0.3, gate[3])
	assert.Equal(t, 1.8, gate[18])
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(0, 1.8, 0.1).Validate())
	assert.True(t, errors.Is(New(0, 1.8, 0).Validate(), ErrInvalid))
	assert.True(t, errors.Is(New(1, 0, 0.1).Validate(), ErrInvalid))
	assert.Empty(t, New(1, 0, 0.1).Values())
}

func TestValidateBoundsPointCount(t *testing.T) {
	for _, s := range []Spec{
		New(0, 1.8, 1e-300),
		New(0, 1.8, 1e-9),
		New(0, math.Inf(1), 0.1),
		New(0, 1.8, math.Inf(1)),
		New(0, MaxPoints, 1),
	} {
		assert.True(t, errors.Is(s.Validate(), ErrInvalid), s.String())
		assert.Zero(t, s.Count(), s.String())
		assert.Empty(t, s.Values(), s.String())
	}

	largest := New(0, MaxPoints-1, 1)
	require.NoError(t, largest.Validate())
	assert.Equal(t, MaxPoints, largest.Count())

	_, err := Parse("0:1.8:1e-300")
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestParse(t *testing.T) {
	s, err := Parse("0:1.8:0.1")
	require.NoError(t, err)
	assert.Equal(t, New(0, 1.8, 0.1), s)
	assert.Equal(t, "0:1.8:0.1", s.String())

	s, err = Parse("0:1:500m")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Step, 1e-15)

	for _, bad := range []string{"", "0:1.8", "0:x:0.1", "0:1.8:-0.1"} {
		_, err := Parse(bad)
		assert.True(t, errors.Is(err, ErrInvalid), bad)
	}

	var flag Spec
	require.NoError(t, flag.Set("0:1.8:0.6"))
	assert.Equal(t, 4, flag.Count())
	assert.Equal(t, "sweep", flag.Type())
}
