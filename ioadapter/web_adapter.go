package ioadapter

import (
	"context"
	"sync"
)

// WebAdapter buffers output and suspends the evaluator's goroutine on Ask
// until a later call to ProvideInput supplies the value — modeled as an
// explicit suspension with an externally supplied resume value rather than
// language-level async, keeping the evaluator single-threaded (spec.md §9
// "Coroutine-style ask in the web adapter").
type WebAdapter struct {
	mu      sync.Mutex
	output  []string
	warnings []string
	pending chan string
}

// NewWebAdapter returns a ready-to-use WebAdapter.
func NewWebAdapter() *WebAdapter { return &WebAdapter{} }

func (a *WebAdapter) Tell(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.output = append(a.output, line)
}

func (a *WebAdapter) Warn(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = append(a.warnings, text)
}

// Drain returns and clears all output buffered since the last Drain, for
// the HTTP layer's execute() response (spec.md §6 "REPL Protocol").
func (a *WebAdapter) Drain() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.output
	a.output = nil
	return out
}

// Ask suspends until ProvideInput is called or ctx is done.
func (a *WebAdapter) Ask(ctx context.Context, prompt string) (string, error) {
	a.mu.Lock()
	ch := make(chan string, 1)
	a.pending = ch
	a.mu.Unlock()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ProvideInput resumes a suspended Ask with value. It is a no-op if no Ask
// is currently pending.
func (a *WebAdapter) ProvideInput(value string) {
	a.mu.Lock()
	ch := a.pending
	a.pending = nil
	a.mu.Unlock()
	if ch != nil {
		ch <- value
	}
}
