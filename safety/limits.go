// Package safety implements the Ellex evaluator's resource quotas: wall
// clock, instruction count, recursion depth, loop iterations, memory
// estimate, and output volume (spec.md §4.3). It is grounded on the
// context-deadline + counter idiom mvdan.cc/sh/v3's interp.Runner uses for
// its own cancellation (interp/runner.go's Runner.stop(ctx)), generalized
// into an explicit, reusable Monitor instead of a private Runner field.
package safety

// Limits is an immutable snapshot of quota configuration, taken once at the
// start of an evaluation (spec.md §9: "thresholds are immutable for the
// duration of one evaluation; mid-run config updates take effect on the
// next top-level call").
type Limits struct {
	ExecutionTimeoutMS int
	MemoryLimitMB      int
	MaxRecursionDepth  int
	MaxLoopIterations  int
}

// DefaultLimits returns the defaults from spec.md §4.3.
func DefaultLimits() Limits {
	return Limits{
		ExecutionTimeoutMS: 5000,
		MemoryLimitMB:      64,
		MaxRecursionDepth:  100,
		MaxLoopIterations:  10000,
	}
}

func (l Limits) memoryLimitBytes() int64 { return int64(l.MemoryLimitMB) * 1024 * 1024 }
