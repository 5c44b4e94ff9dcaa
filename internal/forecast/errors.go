package forecast

import "fmt"

// InvalidConfigurationError reports a period, length or parameter setting
// that can never produce a valid model. It is raised at construction time,
// before any recurrence runs.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DegenerateModelError reports a numeric degeneracy: a zero or near-zero
// divisor in the multiplicative recurrence, or seed values that would make
// every subsequent step undefined. Step is the recurrence step at which the
// degeneracy was found, or -1 for seed-time failures.
type DegenerateModelError struct {
	Model  string
	Step   int
	Reason string
}

func (e *DegenerateModelError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("degenerate %s model: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("degenerate %s model at step %d: %s", e.Model, e.Step, e.Reason)
}

// divisorEpsilon is the threshold below which a multiplicative divisor is
// treated as zero rather than allowed to blow up into Inf/NaN.
const divisorEpsilon = 1e-12

func nearZero(v float64) bool {
	return v > -divisorEpsilon && v < divisorEpsilon
}
