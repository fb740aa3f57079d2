package session

import (
	"fmt"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/eval"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

// Capture snapshots sess, history, execCount, and cfg into a new Document.
// Function bodies are re-rendered to source text via syntax.Printer, since
// eval.Function stores a parsed AST, not the original text — on Restore
// they are re-parsed, so a round trip is print-then-parse rather than a
// byte-identical echo (spec.md §6 "Session Persistence").
func Capture(sess *eval.Session, history []string, execCount int64, cfg config.Config) *Document {
	d := New(cfg)
	for name, v := range sess.Vars() {
		d.Variables[name] = encodeVar(v)
	}
	printer := syntax.NewPrinter()
	for name, fn := range sess.Funcs {
		d.FunctionSource[name] = renderFunction(printer, fn)
	}
	d.History = append(d.History, history...)
	d.ExecutionCount = execCount
	if sess.Turtle != nil {
		t := sess.Turtle
		d.Turtle = &TurtleDoc{X: t.X, Y: t.Y, Heading: t.Heading, PenDown: t.PenDown, Color: t.Color, PenWidth: t.PenWidth}
	}
	return d
}

// encodeVar tags v with its Kind so Restore can reconstruct the matching
// eval.Value (spec.md §6 "variables: name -> tagged value"). Function values
// are never bound to a variable (spec.md §3 "Function Record"), so only
// String, Number, and List need encoding; anything else falls back to a
// Coerce'd string rather than panicking.
func encodeVar(v eval.Value) VarDoc {
	switch v.Kind() {
	case eval.KindNumber:
		return VarDoc{Kind: "number", Num: v.Num()}
	case eval.KindList:
		elems := v.Elems()
		list := make([]VarDoc, len(elems))
		for i, e := range elems {
			list[i] = encodeVar(e)
		}
		return VarDoc{Kind: "list", List: list}
	case eval.KindString:
		return VarDoc{Kind: "string", Str: v.Str()}
	default:
		return VarDoc{Kind: "string", Str: v.Coerce()}
	}
}

// decodeVar reverses encodeVar.
func decodeVar(vd VarDoc) eval.Value {
	switch vd.Kind {
	case "number":
		return eval.Number(vd.Num)
	case "list":
		elems := make([]eval.Value, len(vd.List))
		for i, e := range vd.List {
			elems[i] = decodeVar(e)
		}
		return eval.List(elems)
	default:
		return eval.String(vd.Str)
	}
}

func renderFunction(printer *syntax.Printer, fn *eval.Function) string {
	ms := &syntax.MakeStmt{Name: &syntax.Ident{Name: fn.Name}, Body: fn.Body}
	for _, p := range fn.Params {
		ms.Params = append(ms.Params, &syntax.Ident{Name: p})
	}
	return printer.Print(&syntax.Program{Stmts: []syntax.Stmt{ms}})
}

// Restore rebuilds an eval.Session from d: variables are re-bound into the
// session scope with their persisted Kind intact (spec.md §6), functions are
// re-parsed from their rendered source, and the turtle's pose is restored if
// present. A document missing Turtle (schema version 1) restores a fresh
// turtle sized canvasW x canvasH, never a nil one.
func Restore(d *Document, canvasW, canvasH float64) (*eval.Session, error) {
	t := turtle.New(canvasW, canvasH)
	sess := eval.NewSession(t)

	for name, vd := range d.Variables {
		sess.Bind(name, decodeVar(vd))
	}

	parser := syntax.NewParser()
	for name, src := range d.FunctionSource {
		prog, err := parser.Parse(src, "session:"+name)
		if err != nil {
			return nil, fmt.Errorf("session: restoring function %q: %w", name, err)
		}
		if len(prog.Stmts) != 1 {
			return nil, fmt.Errorf("session: restoring function %q: expected one statement, got %d", name, len(prog.Stmts))
		}
		ms, ok := prog.Stmts[0].(*syntax.MakeStmt)
		if !ok {
			return nil, fmt.Errorf("session: restoring function %q: not a make statement", name)
		}
		params := make([]string, len(ms.Params))
		for i, p := range ms.Params {
			params[i] = p.Name
		}
		sess.Funcs[name] = &eval.Function{Name: ms.Name.Name, Params: params, Body: ms.Body}
	}

	if d.Turtle != nil {
		t.X, t.Y = d.Turtle.X, d.Turtle.Y
		t.Heading = d.Turtle.Heading
		t.PenDown = d.Turtle.PenDown
		t.Color = d.Turtle.Color
		t.PenWidth = d.Turtle.PenWidth
	}

	return sess, nil
}
