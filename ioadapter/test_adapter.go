package ioadapter

import (
	"context"
	"fmt"
)

// TestAdapter collects output into a slice and returns scripted answers to
// Ask calls in order, for use in unit tests and headless evaluation
// (spec.md §4.6 "test adapter collects outputs into a vector and returns
// scripted answers").
type TestAdapter struct {
	Output   []string
	Warnings []string
	Answers  []string

	asked int
}

// NewTestAdapter returns a TestAdapter that will answer Ask calls with
// answers, in order.
func NewTestAdapter(answers ...string) *TestAdapter {
	return &TestAdapter{Answers: answers}
}

func (a *TestAdapter) Tell(line string) { a.Output = append(a.Output, line) }

func (a *TestAdapter) Warn(text string) { a.Warnings = append(a.Warnings, text) }

func (a *TestAdapter) Ask(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if a.asked >= len(a.Answers) {
		return "", fmt.Errorf("ioadapter: TestAdapter: no scripted answer left for prompt %q", prompt)
	}
	ans := a.Answers[a.asked]
	a.asked++
	return ans, nil
}
