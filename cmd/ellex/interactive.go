package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/eval"
	"github.com/ellex-lang/ellex/ioadapter"
	"github.com/ellex-lang/ellex/repl"
	"github.com/ellex-lang/ellex/session"
)

// runREPL drives one interactive conversation, grounded on cmd/gosh/main.go's
// runInteractive: prompt, read a line, run it, repeat until EOF or /exit.
// If sessionPath is non-empty, a prior session is loaded on entry and saved
// on exit (spec.md §6 "Session Persistence").
func runREPL(ctx context.Context, cfg config.Config, sessionPath string) error {
	adapter := ioadapter.NewTerminalAdapter()
	defer adapter.Close()

	sess := repl.New(adapter, cfg)

	if sessionPath != "" {
		if doc, err := session.Load(sessionPath); err == nil {
			restored, err := session.Restore(doc, 600, 600)
			if err != nil {
				log.Warnf("restoring session %s: %v", sessionPath, err)
			} else {
				sess.Eval = restored
				sess.History = append(sess.History, doc.History...)
			}
		} else if !os.IsNotExist(err) {
			log.Warnf("loading session %s: %v", sessionPath, err)
		}
	}

	fmt.Println("Welcome to Ellex! Type /help for commands.")
	fmt.Print("> ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if err := ctx.Err(); err != nil {
			break
		}
		adapter.AddHistory(line)
		result := sess.ExecuteLine(ctx, line)
		for _, out := range result.Output {
			fmt.Println(out)
		}
		if result.Err != nil {
			fmt.Println(eval.Render(result.Err))
		}
		if line == "/exit" {
			break
		}
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}

	if sessionPath != "" {
		doc := session.Capture(sess.Eval, sess.History, sess.ExecutionCount(), cfg)
		if err := doc.Save(sessionPath); err != nil {
			log.Errorf("saving session %s: %v", sessionPath, err)
			return err
		}
	}
	return nil
}
