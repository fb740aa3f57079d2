// Package repl implements the Ellex read-eval-print loop: one line of
// source in, the Tell/Warn output and any Render-ed error out (spec.md §6
// "REPL Session"). It is grounded on cmd/gosh/main.go's runInteractive
// loop — parse one unit, run it, repeat — generalized from line-oriented
// shell input to Ellex's block-structured grammar, plus slash commands
// the teacher has no analogue for.
package repl

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/eval"
	"github.com/ellex-lang/ellex/ioadapter"
	"github.com/ellex-lang/ellex/safety"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

// parseCacheSize bounds the parsed-line LRU cache (spec.md §6 "REPL
// Session" performance note: repeated lines, e.g. in a loop pasted line by
// line, should not reparse).
const parseCacheSize = 256

// Session is one REPL conversation: an eval.Session plus the surrounding
// bookkeeping (history, config, execution count) the slash commands act
// on. A fresh safety.Monitor is created per ExecuteLine call (spec.md §9
// design decision (a)).
type Session struct {
	Adapter ioadapter.Adapter
	Config  config.Config
	Eval    *eval.Session

	History   []string
	execCount int64

	parseCache *lru.Cache[string, *syntax.Program]
}

// New returns a fresh Session with its own turtle sized to a standard
// canvas, driven by adapter and governed by cfg's quotas.
func New(adapter ioadapter.Adapter, cfg config.Config) *Session {
	var t *turtle.Turtle
	if cfg.EnableTurtle {
		t = turtle.New(600, 600)
	}
	cache, _ := lru.New[string, *syntax.Program](parseCacheSize)
	return &Session{
		Adapter:    adapter,
		Config:     cfg,
		Eval:       eval.NewSession(t),
		parseCache: cache,
	}
}

// Result is what one ExecuteLine call produced: nothing, a slash-command
// reply, or an evaluation outcome.
type Result struct {
	Output []string // slash-command replies and captured warnings; Tell lines go to the Adapter, not here
	Err    error    // nil, or the error Render would describe
}

// ExecuteLine parses and runs one line (or pasted block) of source, or
// dispatches a leading "/command". It never panics — parse and evaluation
// failures come back as Result.Err for the caller to pass to eval.Render.
func (s *Session) ExecuteLine(ctx context.Context, line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{}
	}
	if strings.HasPrefix(trimmed, "/") {
		return s.runSlash(trimmed)
	}

	s.History = append(s.History, line)

	prog, ok := s.parseCache.Get(line)
	if !ok {
		p, err := syntax.NewParser().Parse(line, "<repl>")
		if err != nil {
			return Result{Err: err}
		}
		prog = p
		s.parseCache.Add(line, prog)
	}

	var warnings []string
	warnAdapter := &warnCapture{Adapter: s.Adapter, captured: &warnings}
	e := eval.New(warnAdapter)

	mon := safety.New(s.Config.Limits(), func(w *safety.Warning) {
		warnAdapter.Warn(w.String())
	})
	s.execCount++
	if err := e.Execute(ctx, s.Eval, mon, prog.Stmts); err != nil {
		return Result{Output: warnings, Err: err}
	}
	return Result{Output: warnings}
}

// warnCapture mirrors Tell/Ask through to the real adapter but also
// records Warn calls so ExecuteLine's caller can surface them alongside
// the evaluation result.
type warnCapture struct {
	ioadapter.Adapter
	captured *[]string
}

func (w *warnCapture) Warn(text string) {
	*w.captured = append(*w.captured, text)
	w.Adapter.Warn(text)
}

func (s *Session) runSlash(cmd string) Result {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case "/help":
		return Result{Output: []string{
			"/help           show this message",
			"/clear          accepted, but has no effect",
			"/history        show past lines",
			"/vars           show session variables",
			"/funcs          show defined functions",
			"/config         show the active safety limits",
			"/set NAME VALUE set a session variable (or, for a recognized config key, override that setting)",
			"/reset          clear variables, functions, and the turtle",
			"/exit           end the session",
		}}
	case "/history":
		return Result{Output: append([]string(nil), s.History...)}
	case "/vars":
		return Result{Output: []string{s.renderVars()}}
	case "/funcs":
		return Result{Output: []string{s.renderFuncs()}}
	case "/config":
		return Result{Output: []string{s.renderConfig()}}
	case "/set":
		if len(fields) != 3 {
			return Result{Err: &eval.LogicError{Message: "/set needs a name and a value"}}
		}
		name, raw := fields[1], fields[2]
		// A recognized config key is a config override (an addition to
		// spec.md §4.5's general form, not a replacement of it); anything
		// else binds an ordinary session variable (spec.md §4.5 "/set NAME
		// VALUE (parse VALUE as number if numeric-literal else store as
		// string)").
		if s.Config.Set(name, raw) {
			return Result{Output: []string{fmt.Sprintf("%s set to %s", name, raw)}}
		}
		val := parseSetValue(raw)
		s.Eval.Bind(name, val)
		return Result{Output: []string{fmt.Sprintf("Set %s = %s", name, val.Coerce())}}
	case "/reset":
		s.Eval.Reset()
		s.parseCache.Purge()
		return Result{Output: []string{"session reset"}}
	case "/clear":
		return Result{}
	case "/exit":
		return Result{Output: []string{"goodbye!"}}
	default:
		return Result{Err: &eval.LogicError{Message: fmt.Sprintf("unknown command %q", fields[0])}}
	}
}

// parseSetValue parses a /set VALUE token per spec.md §4.5: a quoted string
// unwraps to its contents, a numeric literal becomes a number, anything else
// is stored verbatim as a string.
func parseSetValue(raw string) eval.Value {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return eval.String(raw[1 : len(raw)-1])
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return eval.Number(f)
	}
	return eval.String(raw)
}

func (s *Session) renderVars() string {
	vars := s.Eval.Vars()
	if len(vars) == 0 {
		return "(no variables yet)"
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"name", "value"})
	for name, v := range vars {
		table.Append([]string{name, v.Coerce()})
	}
	table.Render()
	return buf.String()
}

func (s *Session) renderFuncs() string {
	if len(s.Eval.Funcs) == 0 {
		return "(no functions yet)"
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"name", "params"})
	for name, fn := range s.Eval.Funcs {
		table.Append([]string{name, strings.Join(fn.Params, ", ")})
	}
	table.Render()
	return buf.String()
}

func (s *Session) renderConfig() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"setting", "value"})
	table.Append([]string{"execution_timeout_ms", fmt.Sprint(s.Config.ExecutionTimeoutMS)})
	table.Append([]string{"memory_limit_mb", fmt.Sprint(s.Config.MemoryLimitMB)})
	table.Append([]string{"max_recursion_depth", fmt.Sprint(s.Config.MaxRecursionDepth)})
	table.Append([]string{"max_loop_iterations", fmt.Sprint(s.Config.MaxLoopIterations)})
	table.Append([]string{"enable_turtle", fmt.Sprint(s.Config.EnableTurtle)})
	table.Render()
	return buf.String()
}

// ExecutionCount returns how many non-slash lines have been evaluated.
func (s *Session) ExecutionCount() int64 { return s.execCount }
