package ioadapter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// TerminalAdapter reads prompts from stdin and writes output to stdout,
// grounded on cmd/gosh/main.go's use of golang.org/x/term for TTY
// detection. When stdin is a real terminal it uses github.com/peterh/liner
// for readline-style editing of Ask answers and keeps its own line history
// (fed by AddHistory), separate from the REPL Session's History slice;
// otherwise it falls back to
// a plain bufio scan so piped input still works (matching gosh's non-TTY
// path).
type TerminalAdapter struct {
	out   io.Writer
	line  *liner.State
	plain *plainReader
}

// NewTerminalAdapter returns a TerminalAdapter bound to the process's
// standard input and output.
func NewTerminalAdapter() *TerminalAdapter {
	a := &TerminalAdapter{out: os.Stdout}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		a.line = liner.NewLiner()
		a.line.SetCtrlCAborts(true)
	} else {
		a.plain = newPlainReader(os.Stdin)
	}
	return a
}

// Close releases the underlying line editor, if any.
func (a *TerminalAdapter) Close() error {
	if a.line != nil {
		return a.line.Close()
	}
	return nil
}

func (a *TerminalAdapter) Tell(line string) { fmt.Fprintln(a.out, line) }

func (a *TerminalAdapter) Warn(text string) { fmt.Fprintln(a.out, text) }

func (a *TerminalAdapter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.line != nil {
		return a.line.Prompt(prompt + " ")
	}
	fmt.Fprint(a.out, prompt+" ")
	return a.plain.readLine()
}

// AddHistory records a line in the terminal's readline history, when one is
// active.
func (a *TerminalAdapter) AddHistory(line string) {
	if a.line != nil {
		a.line.AppendHistory(line)
	}
}
