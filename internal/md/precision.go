package md

import "fmt"

// Precision selects the numeric behavior of per-particle batch work.
// Thermostat chain state is always propagated in double precision;
// the mode only affects how per-particle reductions accumulate.
type Precision int

const (
	// Double accumulates and stores everything in float64.
	Double Precision = iota
	// Mixed stores per-particle contributions in float32 but accumulates
	// reductions in float64.
	Mixed
	// Single rounds per-particle contributions and accumulators through
	// float32.
	Single
)

// ParsePrecision maps a configuration string to a Precision mode.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "double":
		return Double, nil
	case "mixed":
		return Mixed, nil
	case "single":
		return Single, nil
	}
	return Double, fmt.Errorf("md: unknown precision mode %q", s)
}

func (p Precision) String() string {
	switch p {
	case Mixed:
		return "mixed"
	case Single:
		return "single"
	default:
		return "double"
	}
}

// Round truncates a per-particle contribution to the storage width of
// the mode. Double keeps full width.
func (p Precision) Round(v float64) float64 {
	if p == Double {
		return v
	}
	return float64(float32(v))
}

// RoundSum truncates a reduction result. Only Single narrows the
// accumulator itself.
func (p Precision) RoundSum(v float64) float64 {
	if p == Single {
		return float64(float32(v))
	}
	return v
}
