package eval

import (
	"context"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ellex-lang/ellex/ioadapter"
	"github.com/ellex-lang/ellex/safety"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/token"
	"github.com/ellex-lang/ellex/turtle"
)

// builtinVerbs lists the turtle commands considered for UnknownCommand
// suggestions alongside the function table (spec.md §4.2 "Call").
var builtinVerbs = []string{
	"forward", "backward", "left", "right", "pen_up", "pen_down",
}

// Evaluator is a pure tree-walking interpreter over the Ellex AST (spec.md
// §4.2). It holds no per-session state itself — all of that lives in
// Session — so one Evaluator can be reused, or a fresh one constructed per
// call; both are equally correct.
type Evaluator struct {
	Adapter ioadapter.Adapter
}

// New returns an Evaluator that emits output and warnings through adapter.
func New(adapter ioadapter.Adapter) *Evaluator {
	return &Evaluator{Adapter: adapter}
}

// Execute runs stmts under sess's scopes, function table, and turtle,
// driven by mon (spec.md §4.2 "execute"). Evaluation stops at the first
// error and returns it (spec.md §4.2 "Error propagation").
func (e *Evaluator) Execute(ctx context.Context, sess *Session, mon *safety.Monitor, stmts []syntax.Stmt) error {
	for _, s := range stmts {
		if err := e.execStmt(ctx, sess, mon, s); err != nil {
			return err
		}
	}
	return nil
}

// Call invokes the named user function from sess's function table (turtle
// verbs are statements, not table entries, so they are not found here),
// mirroring the dispatch a bare CallStmt uses — this is what lets the REPL
// let a user type a bare function name as a line of input (spec.md §4.2
// "call").
func (e *Evaluator) Call(ctx context.Context, sess *Session, mon *safety.Monitor, name string, args []Value) (Value, error) {
	return e.callFunction(ctx, sess, mon, name, args)
}

func (e *Evaluator) execStmt(ctx context.Context, sess *Session, mon *safety.Monitor, s syntax.Stmt) error {
	if err := mon.Tick(ctx); err != nil {
		return err
	}
	switch n := s.(type) {
	case *syntax.TellStmt:
		return e.execTell(ctx, sess, mon, n)
	case *syntax.AskStmt:
		return e.execAsk(ctx, sess, mon, n)
	case *syntax.RepeatStmt:
		return e.execRepeat(ctx, sess, mon, n)
	case *syntax.WhenStmt:
		return e.execWhen(ctx, sess, mon, n)
	case *syntax.MakeStmt:
		return e.execMake(sess, mon, n)
	case *syntax.CallStmt:
		args, err := e.evalExprs(sess, n.Args)
		if err != nil {
			return err
		}
		_, err = e.callFunction(ctx, sess, mon, n.Name.Name, args)
		return err
	case *syntax.TurtleStmt:
		return e.execTurtle(sess, mon, n)
	case *syntax.ModalStmt:
		if n.UnknownMode {
			e.Adapter.Warn("I don't know the @" + n.Mode.Name + " mode, but I'll still run what's inside it.")
		}
		return e.Execute(ctx, sess, mon, n.Body)
	default:
		return logicErrorf("don't know how to run this statement")
	}
}

func (e *Evaluator) execTell(ctx context.Context, sess *Session, mon *safety.Monitor, n *syntax.TellStmt) error {
	v, err := e.evalExpr(sess, n.Value)
	if err != nil {
		return err
	}
	text := v.Coerce()
	e.Adapter.Tell(text)
	return mon.NoteOutput(len(text) + 1)
}

func (e *Evaluator) execAsk(ctx context.Context, sess *Session, mon *safety.Monitor, n *syntax.AskStmt) error {
	pv, err := e.evalExpr(sess, n.Prompt)
	if err != nil {
		return err
	}
	raw, err := e.Adapter.Ask(ctx, pv.Coerce())
	if err != nil {
		return err
	}
	val, err := coerceAskValue(raw, n.Hint)
	if err != nil {
		return err
	}
	sess.Bind(n.Target.Name, val)
	return mon.EstimateMemory(val.EstimatedSize())
}

func coerceAskValue(raw string, hint token.Token) (Value, error) {
	switch hint {
	case token.NUMBER_HINT:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Nil, logicErrorf("%q isn't a number", raw)
		}
		return Number(f), nil
	case token.LIST_HINT:
		parts := strings.Split(raw, ",")
		items := make([]Value, len(parts))
		for i, p := range parts {
			items[i] = String(strings.TrimSpace(p))
		}
		return List(items), nil
	default:
		return String(raw), nil
	}
}

func (e *Evaluator) execRepeat(ctx context.Context, sess *Session, mon *safety.Monitor, n *syntax.RepeatStmt) error {
	cv, err := e.evalExpr(sess, n.Count)
	if err != nil {
		return err
	}
	if cv.Kind() != KindNumber || cv.Num() < 0 || cv.Num() != float64(int64(cv.Num())) {
		return logicErrorf("repeat needs a whole, non-negative number of times, got %s", cv.Coerce())
	}
	count := int64(cv.Num())
	if err := mon.EnterLoop(count); err != nil {
		return err
	}
	defer mon.ExitLoop()
	for i := int64(0); i < count; i++ {
		if err := e.Execute(ctx, sess, mon, n.Body); err != nil {
			return err
		}
		if err := mon.LoopStep(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execWhen(ctx context.Context, sess *Session, mon *safety.Monitor, n *syntax.WhenStmt) error {
	sv, err := e.evalExpr(sess, n.Subject)
	if err != nil {
		return err
	}
	vv, err := e.evalExpr(sess, n.Value)
	if err != nil {
		return err
	}
	if Equal(sv, vv) {
		return e.Execute(ctx, sess, mon, n.Then)
	}
	if n.HasOtherwise {
		return e.Execute(ctx, sess, mon, n.Else)
	}
	return nil
}

// functionBindingConst is the per-make-statement cost EstimateMemory charges
// toward a session's memory quota, mirroring Value.EstimatedSize's
// bindingConst (spec.md §4.3 "estimate_memory": "constant-per-binding").
const functionBindingConst = 16

func (e *Evaluator) execMake(sess *Session, mon *safety.Monitor, n *syntax.MakeStmt) error {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}
	sess.Funcs[n.Name.Name] = &Function{Name: n.Name.Name, Params: params, Body: n.Body}
	size := functionBindingConst + len(n.Name.Name)
	for _, p := range params {
		size += len(p)
	}
	return mon.EstimateMemory(size)
}

// turtleLogEntryConst is the per-command-log-entry cost EstimateMemory
// charges toward a session's memory quota (spec.md §4.3 "estimate_memory":
// "constant-per-command-log-entry").
const turtleLogEntryConst = 24

func (e *Evaluator) execTurtle(sess *Session, mon *safety.Monitor, n *syntax.TurtleStmt) error {
	if sess.Turtle == nil {
		return &UnknownCommand{Name: n.Op.String()}
	}
	t := sess.Turtle
	before := len(t.Log)
	var warn error
	switch n.Op {
	case token.FORWARD:
		warn = t.Forward(turtle.DefaultStep)
	case token.BACKWARD:
		warn = t.Backward(turtle.DefaultStep)
	case token.LEFT:
		t.TurnLeft(turtle.DefaultTurn)
	case token.RIGHT:
		t.TurnRight(turtle.DefaultTurn)
	case token.PEN_UP:
		t.SetPenUp()
	case token.PEN_DOWN:
		t.SetPenDown()
	case token.USE:
		cv, err := e.evalExpr(sess, n.Arg)
		if err != nil {
			return err
		}
		t.SetColor(cv.Coerce())
	case token.DRAW:
		rv, err := e.evalExpr(sess, n.Arg)
		if err != nil {
			return err
		}
		if rv.Kind() != KindNumber {
			return logicErrorf("a circle's radius needs to be a number, got %s", rv.Coerce())
		}
		t.DrawCircle(rv.Num())
	default:
		return &UnknownCommand{Name: n.Op.String()}
	}
	if added := len(t.Log) - before; added > 0 {
		if err := mon.EstimateMemory(added * turtleLogEntryConst); err != nil {
			return err
		}
	}
	if warn != nil {
		e.Adapter.Warn(warn.Error())
	}
	return nil
}

func (e *Evaluator) callFunction(ctx context.Context, sess *Session, mon *safety.Monitor, name string, args []Value) (Value, error) {
	fn, ok := sess.Funcs[name]
	if !ok {
		return Nil, e.unknownCommand(sess, name)
	}
	if len(args) != len(fn.Params) {
		return Nil, logicErrorf("%s expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}
	if err := mon.EnterCall(); err != nil {
		return Nil, err
	}
	defer mon.ExitCall()

	sess.PushScope()
	defer sess.PopScope()
	for i, p := range fn.Params {
		sess.Bind(p, args[i])
	}
	if err := e.Execute(ctx, sess, mon, fn.Body); err != nil {
		return Nil, err
	}
	// The core dialect has no early return: a function's result is its
	// side effects (spec.md §4.2 "Control-flow semantics").
	return Nil, nil
}

func (e *Evaluator) unknownCommand(sess *Session, name string) error {
	best, bestDist := "", -1
	consider := func(candidate string) {
		d := levenshtein.ComputeDistance(name, candidate)
		if d <= 1 && (bestDist == -1 || d < bestDist) {
			best, bestDist = candidate, d
		}
	}
	for fname := range sess.Funcs {
		consider(fname)
	}
	for _, v := range builtinVerbs {
		consider(v)
	}
	return &UnknownCommand{Name: name, Suggestion: best}
}

func (e *Evaluator) evalExprs(sess *Session, exprs []syntax.Expr) ([]Value, error) {
	vals := make([]Value, len(exprs))
	for i, x := range exprs {
		v, err := e.evalExpr(sess, x)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (e *Evaluator) evalExpr(sess *Session, x syntax.Expr) (Value, error) {
	switch n := x.(type) {
	case *syntax.StringLit:
		return String(interpolate(sess, n.Value)), nil
	case *syntax.NumberLit:
		return Number(n.Value), nil
	case *syntax.ListLit:
		elems := make([]Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := e.evalExpr(sess, el)
			if err != nil {
				return Nil, err
			}
			elems[i] = v
		}
		return List(elems), nil
	case *syntax.Ident:
		v, ok := sess.Lookup(n.Name)
		if !ok {
			return Nil, logicErrorf("I don't know what %q is yet", n.Name)
		}
		return v, nil
	case *syntax.CallExpr:
		if _, err := e.evalExprs(sess, n.Args); err != nil {
			return Nil, err
		}
		return e.callFunctionAsExpr(n.Name.Name)
	default:
		return Nil, logicErrorf("don't know how to evaluate this expression")
	}
}

// callFunctionAsExpr rejects a function call used in expression position.
// The core dialect gives functions no return value — "a function's result
// is its side effects" (spec.md §4.2) — so there is nothing sensible to
// substitute as the expression's value.
func (e *Evaluator) callFunctionAsExpr(name string) (Value, error) {
	return Nil, logicErrorf("%q can't be used as a value — functions only have side effects in Ellex", name)
}
