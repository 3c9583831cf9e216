// Package sweep describes DC sweep axes.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/icemos/pkg/netlist"
	"github.com/edp1096/icemos/pkg/util"
)

var ErrInvalid = errors.New("sweep: invalid spec")

// MaxPoints bounds one axis. Stepped netlists unroll every gate point.
const MaxPoints = 10000

// Spec is one (start, stop, step) axis in volts. Stop is inclusive.
type Spec struct {
	Start float64
	Stop  float64
	Step  float64
}

func New(start, stop, step float64) Spec {
	return Spec{Start: start, Stop: stop, Step: step}
}

func (s Spec) Validate() error {
	switch {
	case !finite(s.Start) || !finite(s.Stop) || !finite(s.Step):
		return fmt.Errorf("%w: non-finite value in %s", ErrInvalid, s)
	case s.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %s", ErrInvalid, util.FormatNumber(s.Step))
	case s.Stop < s.Start:
		return fmt.Errorf("%w: stop %s below start %s", ErrInvalid,
			util.FormatNumber(s.Stop), util.FormatNumber(s.Start))
	case s.span() >= MaxPoints:
		return fmt.Errorf("%w: %s has more than %d points", ErrInvalid, s, MaxPoints)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// span is the number of steps between start and stop, one less than the
// point count.
func (s Spec) span() float64 {
	return math.Floor((s.Stop-s.Start)/s.Step + 1e-9)
}

// Count is the number of points in the axis.
func (s Spec) Count() int {
	if s.Validate() != nil {
		return 0
	}
	return int(s.span()) + 1
}

// Values lists the axis points. Each point is computed from start rather than
// accumulated so 0:1.8:0.6 yields exactly 0, 0.6, 1.2, 1.8.
func (s Spec) Values() []float64 {
	n := s.Count()
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, util.RoundSignificant(s.Start+float64(i)*s.Step, 12))
	}
	return values
}

// String renders "start:stop:step".
func (s Spec) String() string {
	return util.FormatNumber(s.Start) + ":" + util.FormatNumber(s.Stop) + ":" + util.FormatNumber(s.Step)
}

// Parse reads "start:stop:step". Fields accept engineering suffixes (100m).
func Parse(text string) (Spec, error) {
	fields := strings.Split(strings.TrimSpace(text), ":")
	if len(fields) != 3 {
		return Spec{}, fmt.Errorf("%w: %q is not start:stop:step", ErrInvalid, text)
	}

	var vals [3]float64
	for i, field := range fields {
		v, err := netlist.ParseValue(field)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalid, text, err)
		}
		vals[i] = v
	}

	s := New(vals[0], vals[1], vals[2])
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Set implements pflag.Value.
func (s *Spec) Set(text string) error {
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Spec) Type() string { return "sweep" }
