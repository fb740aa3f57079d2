package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestWalkVisitsEveryNode(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("repeat 2 times do\ntell greet_user \"Sam\"\nend", "")
	c.Assert(err, qt.IsNil)

	var kinds []string
	Walk(prog, func(n Node) bool {
		switch n.(type) {
		case *RepeatStmt:
			kinds = append(kinds, "RepeatStmt")
		case *TellStmt:
			kinds = append(kinds, "TellStmt")
		case *CallExpr:
			kinds = append(kinds, "CallExpr")
		case *StringLit:
			kinds = append(kinds, "StringLit")
		case *Ident:
			kinds = append(kinds, "Ident")
		}
		return true
	})

	c.Assert(kinds, qt.Contains, "RepeatStmt")
	c.Assert(kinds, qt.Contains, "TellStmt")
	c.Assert(kinds, qt.Contains, "CallExpr")
	c.Assert(kinds, qt.Contains, "StringLit")
}

func TestWalkStopsDescentWhenVisitReturnsFalse(t *testing.T) {
	c := qt.New(t)
	prog, err := NewParser().Parse("repeat 2 times do\ntell \"hi\"\nend", "")
	c.Assert(err, qt.IsNil)

	var sawTell bool
	Walk(prog, func(n Node) bool {
		if _, ok := n.(*RepeatStmt); ok {
			return false
		}
		if _, ok := n.(*TellStmt); ok {
			sawTell = true
		}
		return true
	})
	c.Assert(sawTell, qt.IsFalse)
}
