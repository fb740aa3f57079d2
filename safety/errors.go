package safety

import "fmt"

// Subkind identifies which quota a SafetyViolation belongs to.
type Subkind string

const (
	SubkindTimeout   Subkind = "timeout"
	SubkindMemory    Subkind = "memory"
	SubkindRecursion Subkind = "recursion"
	SubkindLoop      Subkind = "loop"
	SubkindOutput    Subkind = "output"
)

// Violation is a quota violation (spec.md §7 "SafetyViolation"). Timeout is
// represented as a Violation with Subkind SubkindTimeout, and is also
// returned wrapped in a distinct Timeout value so callers that only care
// about wall-clock exceedance don't need to switch on Subkind — see
// spec.md §7: "kept distinct because it is time-triggered rather than
// count-triggered."
type Violation struct {
	Subkind Subkind
	Limit   int64
	Actual  int64
}

func (v *Violation) Error() string {
	return fmt.Sprintf("safety violation (%s): limit %d, got %d", v.Subkind, v.Limit, v.Actual)
}

// Timeout wraps a Violation with Subkind SubkindTimeout.
type Timeout struct {
	*Violation
}

// Unwrap exposes the underlying Violation to errors.As and errors.Is.
func (t *Timeout) Unwrap() error { return t.Violation }

func newTimeout(limitMS int64, actualMS int64) error {
	return &Timeout{&Violation{Subkind: SubkindTimeout, Limit: limitMS, Actual: actualMS}}
}

// Warning is a non-fatal 80%-threshold notice (spec.md §4.3 "tick").
type Warning struct {
	Subkind Subkind
	Limit   int64
	Actual  int64
}

func (w *Warning) String() string {
	return fmt.Sprintf("heads up: getting close to the %s limit (%d / %d)", w.Subkind, w.Actual, w.Limit)
}
