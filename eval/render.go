package eval

import (
	"errors"
	"fmt"

	"github.com/ellex-lang/ellex/safety"
	"github.com/ellex-lang/ellex/syntax"
)

// Render produces the fixed, age-appropriate rendering of an error kind
// (spec.md §7). It is kept in its own file, separate from the error values
// themselves, so an embedding can localize or otherwise replace the
// rendering layer (spec.md §7: "The rendering layer MUST be distinct from
// the error value so embeddings can localize").
func Render(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *syntax.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("Hmm, that doesn't look quite right. %s 🧩", parseErr.Text)
	}

	var unknown *UnknownCommand
	if errors.As(err, &unknown) {
		if unknown.Suggestion != "" {
			return fmt.Sprintf("I don't know how to %q yet. Did you mean %q? 🤔", unknown.Name, unknown.Suggestion)
		}
		return fmt.Sprintf("I don't know how to %q yet. 🤔", unknown.Name)
	}

	var logicErr *LogicError
	if errors.As(err, &logicErr) {
		return fmt.Sprintf("That didn't quite work: %s 🔧", logicErr.Message)
	}

	var timeout *safety.Timeout
	if errors.As(err, &timeout) {
		return "Oops, that took too long! Let's try something quicker. ⏰"
	}

	var violation *safety.Violation
	if errors.As(err, &violation) {
		switch violation.Subkind {
		case safety.SubkindLoop:
			return fmt.Sprintf("Whoa! That's a lot of repetitions (%d). Let's try something smaller! 🐌", violation.Actual)
		case safety.SubkindRecursion:
			return "Whoa, that's a lot of nested calls! Let's simplify. 🌀"
		case safety.SubkindMemory:
			return "That program is holding onto a lot of stuff! Let's trim it down. 🎒"
		case safety.SubkindOutput:
			return "That's a lot of output! Let's print a little less. 📜"
		default:
			return "Whoa, let's slow down a little! ✋"
		}
	}

	return fmt.Sprintf("Something went sideways: %s 😅", err.Error())
}
