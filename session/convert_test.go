package session

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/eval"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

func TestCaptureAndRestoreRoundTrip(t *testing.T) {
	c := qt.New(t)

	tt := turtle.New(600, 600)
	tt.SetPenDown()
	c.Assert(tt.Forward(50), qt.IsNil)
	tt.TurnRight(90)
	tt.SetColor("blue")

	sess := eval.NewSession(tt)
	sess.Bind("name", eval.String("Ada"))
	sess.Bind("age", eval.Number(7))

	prog, err := syntax.NewParser().Parse("make greet with who do\n  tell \"hi {who}\"\nend\n", "test")
	c.Assert(err, qt.IsNil)
	ms := prog.Stmts[0].(*syntax.MakeStmt)
	params := make([]string, len(ms.Params))
	for i, p := range ms.Params {
		params[i] = p.Name
	}
	sess.Funcs["greet"] = &eval.Function{Name: ms.Name.Name, Params: params, Body: ms.Body}

	cfg := config.Default()
	doc := Capture(sess, []string{"line one", "line two"}, 5, cfg)

	c.Assert(doc.Variables["name"], qt.DeepEquals, VarDoc{Kind: "string", Str: "Ada"})
	c.Assert(doc.Variables["age"], qt.DeepEquals, VarDoc{Kind: "number", Num: 7})
	c.Assert(doc.FunctionSource["greet"], qt.Contains, "make greet")
	c.Assert(doc.History, qt.DeepEquals, []string{"line one", "line two"})
	c.Assert(doc.ExecutionCount, qt.Equals, int64(5))
	c.Assert(doc.Turtle, qt.Not(qt.IsNil))
	c.Assert(doc.Turtle.Color, qt.Equals, "blue")
	c.Assert(doc.Turtle.PenDown, qt.IsTrue)

	restored, err := Restore(doc, 600, 600)
	c.Assert(err, qt.IsNil)

	v, ok := restored.Lookup("name")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Kind(), qt.Equals, eval.KindString)
	c.Assert(v.Str(), qt.Equals, "Ada")

	v, ok = restored.Lookup("age")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Kind(), qt.Equals, eval.KindNumber)
	c.Assert(v.Num(), qt.Equals, 7.0)

	fn, ok := restored.Funcs["greet"]
	c.Assert(ok, qt.IsTrue)
	c.Assert(fn.Params, qt.DeepEquals, []string{"who"})

	c.Assert(restored.Turtle.Color, qt.Equals, "blue")
	c.Assert(restored.Turtle.PenDown, qt.IsTrue)
	c.Assert(restored.Turtle.Heading, qt.Equals, 90.0)
}

func TestCaptureAndRestorePreservesListKind(t *testing.T) {
	c := qt.New(t)

	sess := eval.NewSession(nil)
	sess.Bind("nums", eval.List([]eval.Value{eval.Number(1), eval.String("two"), eval.Number(3)}))

	doc := Capture(sess, nil, 0, config.Default())
	restored, err := Restore(doc, 600, 600)
	c.Assert(err, qt.IsNil)

	v, ok := restored.Lookup("nums")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Kind(), qt.Equals, eval.KindList)
	elems := v.Elems()
	c.Assert(elems, qt.HasLen, 3)
	c.Assert(elems[0].Kind(), qt.Equals, eval.KindNumber)
	c.Assert(elems[0].Num(), qt.Equals, 1.0)
	c.Assert(elems[1].Kind(), qt.Equals, eval.KindString)
	c.Assert(elems[1].Str(), qt.Equals, "two")
	c.Assert(elems[2].Num(), qt.Equals, 3.0)
}

func TestRestoreWithoutTurtleSectionGetsFreshTurtle(t *testing.T) {
	c := qt.New(t)
	doc := New(config.Default())
	doc.Variables["x"] = VarDoc{Kind: "number", Num: 1}

	restored, err := Restore(doc, 400, 300)
	c.Assert(err, qt.IsNil)
	c.Assert(restored.Turtle, qt.Not(qt.IsNil))
	c.Assert(restored.Turtle.Width, qt.Equals, 400.0)
	c.Assert(restored.Turtle.Height, qt.Equals, 300.0)
}

func TestRestoreRejectsMalformedFunctionSource(t *testing.T) {
	c := qt.New(t)
	doc := New(config.Default())
	doc.FunctionSource["broken"] = "tell \"not a make statement\"\n"

	_, err := Restore(doc, 600, 600)
	c.Assert(err, qt.Not(qt.IsNil))
}
