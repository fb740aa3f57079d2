package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/eval"
	"github.com/ellex-lang/ellex/ioadapter"
	"github.com/ellex-lang/ellex/safety"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

// runFile parses and runs a single Ellex program from path, returning a
// spec.md §6 exit code. It is grounded on cmd/gosh/main.go's runPath,
// generalized from a shell Runner to eval.Evaluator/Session/Monitor.
func runFile(ctx context.Context, cfg config.Config, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("reading %s: %v", path, err)
		return exitRuntimeError
	}

	prog, err := syntax.NewParser().Parse(string(src), path)
	if err != nil {
		var parseErr *syntax.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintln(os.Stderr, eval.Render(err))
			log.Errorf("parsing %s: %v", path, err)
			return exitParseError
		}
		return exitRuntimeError
	}

	var t *turtle.Turtle
	if cfg.EnableTurtle {
		t = turtle.New(600, 600)
	}
	sess := eval.NewSession(t)
	adapter := ioadapter.NewTerminalAdapter()
	defer adapter.Close()
	evaluator := eval.New(adapter)
	mon := safety.New(cfg.Limits(), func(w *safety.Warning) {
		adapter.Warn(w.String())
	})

	if err := evaluator.Execute(ctx, sess, mon, prog.Stmts); err != nil {
		fmt.Fprintln(os.Stderr, eval.Render(err))
		log.Errorf("running %s: %v", path, err)
		var violation *safety.Violation
		var timeout *safety.Timeout
		if errors.As(err, &violation) || errors.As(err, &timeout) {
			return exitSafetyViolation
		}
		return exitRuntimeError
	}
	return exitOK
}
