package token

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLookup(t *testing.T) {
	c := qt.New(t)
	c.Assert(Lookup("tell"), qt.Equals, TELL)
	c.Assert(Lookup("repeat"), qt.Equals, REPEAT)
	c.Assert(Lookup("forward"), qt.Equals, FORWARD)
	c.Assert(Lookup("banana"), qt.Equals, IDENT)
}

func TestLookupHint(t *testing.T) {
	c := qt.New(t)
	tok, ok := LookupHint("number")
	c.Assert(ok, qt.IsTrue)
	c.Assert(tok, qt.Equals, NUMBER_HINT)

	_, ok = LookupHint("nonsense")
	c.Assert(ok, qt.IsFalse)
}

func TestIsTurtleVerb(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsTurtleVerb(FORWARD), qt.IsTrue)
	c.Assert(IsTurtleVerb(PEN_DOWN), qt.IsTrue)
	c.Assert(IsTurtleVerb(TELL), qt.IsFalse)
}

func TestString(t *testing.T) {
	c := qt.New(t)
	c.Assert(REPEAT.String(), qt.Equals, "repeat")
}
