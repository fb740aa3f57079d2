package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ellex-lang/ellex/token"
)

func TestParseTell(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse(`tell "Hello!"`, "")
	c.Assert(err, qt.IsNil)
	c.Assert(prog.Stmts, qt.HasLen, 1)
	tell, ok := prog.Stmts[0].(*TellStmt)
	c.Assert(ok, qt.IsTrue)
	str, ok := tell.Value.(*StringLit)
	c.Assert(ok, qt.IsTrue)
	c.Assert(str.Value, qt.Equals, "Hello!")
}

func TestParseAskWithHint(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("ask \"How old are you?\" = age as number", "")
	c.Assert(err, qt.IsNil)
	ask, ok := prog.Stmts[0].(*AskStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(ask.Target.Name, qt.Equals, "age")
	c.Assert(ask.Hint, qt.Equals, token.NUMBER_HINT)
}

func TestParseRepeat(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("repeat 3 times do\ntell \"hi\"\nend", "")
	c.Assert(err, qt.IsNil)
	rep, ok := prog.Stmts[0].(*RepeatStmt)
	c.Assert(ok, qt.IsTrue)
	n, ok := rep.Count.(*NumberLit)
	c.Assert(ok, qt.IsTrue)
	c.Assert(n.Value, qt.Equals, float64(3))
	c.Assert(rep.Body, qt.HasLen, 1)
}

func TestParseWhenOtherwise(t *testing.T) {
	c := qt.New(t)
	src := "when color is \"red\" do\ntell \"stop\"\notherwise do\ntell \"go\"\nend"
	prog, err := NewParser().Parse(src, "")
	c.Assert(err, qt.IsNil)
	w, ok := prog.Stmts[0].(*WhenStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(w.Op, qt.Equals, token.IS)
	c.Assert(w.HasOtherwise, qt.IsTrue)
	c.Assert(w.Else, qt.HasLen, 1)
}

func TestParseMakeWithParams(t *testing.T) {
	c := qt.New(t)
	src := "make greet with name do\ntell name\nend"
	prog, err := NewParser().Parse(src, "")
	c.Assert(err, qt.IsNil)
	m, ok := prog.Stmts[0].(*MakeStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(m.Name.Name, qt.Equals, "greet")
	c.Assert(m.Params, qt.HasLen, 1)
	c.Assert(m.Params[0].Name, qt.Equals, "name")
}

func TestParseTurtleVerbsAndArgs(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("forward\nuse color \"blue\"\ndraw circle with radius 10", "")
	c.Assert(err, qt.IsNil)
	c.Assert(prog.Stmts, qt.HasLen, 3)
	ts, ok := prog.Stmts[0].(*TurtleStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(ts.Op, qt.Equals, token.FORWARD)

	use, ok := prog.Stmts[1].(*TurtleStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(use.Op, qt.Equals, token.USE)
	c.Assert(use.Arg, qt.Not(qt.IsNil))

	draw, ok := prog.Stmts[2].(*TurtleStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(draw.Op, qt.Equals, token.DRAW)
}

func TestParseModalBlock(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("@listen do\ntell \"hi\"\nend", "")
	c.Assert(err, qt.IsNil)
	m, ok := prog.Stmts[0].(*ModalStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(m.Mode.Name, qt.Equals, "listen")
	c.Assert(m.UnknownMode, qt.IsFalse)

	prog, err = NewParser().Parse("@dance do\ntell \"hi\"\nend", "")
	c.Assert(err, qt.IsNil)
	m, ok = prog.Stmts[0].(*ModalStmt)
	c.Assert(ok, qt.IsTrue)
	c.Assert(m.UnknownMode, qt.IsTrue)
}

func TestParseNestedCall(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse(`tell greet_user "Sam"`, "")
	c.Assert(err, qt.IsNil)
	tell := prog.Stmts[0].(*TellStmt)
	call, ok := tell.Value.(*CallExpr)
	c.Assert(ok, qt.IsTrue)
	c.Assert(call.Name.Name, qt.Equals, "greet_user")
	c.Assert(call.Args, qt.HasLen, 1)
}

func TestParseErrorHasPosition(t *testing.T) {
	c := qt.New(t)
	_, err := NewParser().Parse("repeat do\nend", "prog.ellex")
	c.Assert(err, qt.Not(qt.IsNil))
	var pe *ParseError
	c.Assert(err, qt.ErrorAs, &pe)
	c.Assert(pe.Line, qt.Equals, 1)
	c.Assert(pe.Filename, qt.Equals, "prog.ellex")
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"", "tell", "repeat", "when", "make", "[", "\"unterminated",
		"@ do end", "forward forward forward", "123abc", "=====",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse panicked on %q: %v", in, r)
				}
			}()
			NewParser().Parse(in, "")
		})
	}
}
