// Package ioadapter abstracts the evaluator's two observable side-effect
// channels — "tell" (output) and "ask" (a blocking prompt) — plus monitor
// warnings, so the same core can be embedded in a terminal, a test harness,
// or a suspending web session (spec.md §4.6). It is grounded on
// interp/handler.go's HandlerContext / handler-function-type idiom from
// mvdan.cc/sh/v3, generalized from "replace how commands run" to "replace
// how the interpreter talks to the outside world."
package ioadapter

import "context"

// Adapter is implemented by every I/O backend the REPL Session can use.
type Adapter interface {
	// Tell emits one line of output. It is non-blocking (spec.md §5).
	Tell(line string)
	// Ask blocks (or, in a hosted adapter, suspends) until an answer to
	// prompt is available.
	Ask(ctx context.Context, prompt string) (string, error)
	// Warn surfaces a non-fatal safety-monitor warning (spec.md §4.3).
	Warn(text string)
}
