package eval

import "fmt"

// LogicError is a dynamic semantic failure: a type-hint mismatch in ask, an
// undefined variable referenced outside string interpolation, or a
// non-integer loop count (spec.md §7).
type LogicError struct {
	Message string
}

func (e *LogicError) Error() string { return e.Message }

func logicErrorf(format string, args ...any) error {
	return &LogicError{Message: fmt.Sprintf(format, args...)}
}

// UnknownCommand is raised when a Call references a name absent from both
// the function table and the built-in turtle verbs (spec.md §4.2 "Call",
// §7). Suggestion is the closest built-in or user function name by
// Levenshtein-1 edit distance, or "" if none is close enough.
type UnknownCommand struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommand) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}
