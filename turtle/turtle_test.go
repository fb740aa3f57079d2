package turtle

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewCentersTurtle(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 100)
	c.Assert(tu.X, qt.Equals, 100.0)
	c.Assert(tu.Y, qt.Equals, 50.0)
	c.Assert(tu.PenDown, qt.IsFalse)
	c.Assert(tu.Color, qt.Equals, "black")
}

func TestForwardLogsMoveWhenPenUp(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	err := tu.Forward(50)
	c.Assert(err, qt.IsNil)
	c.Assert(tu.Log, qt.HasLen, 1)
	c.Assert(tu.Log[0].Kind, qt.Equals, EventMove)
}

func TestForwardLogsLineWhenPenDown(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	tu.SetPenDown()
	err := tu.Forward(50)
	c.Assert(err, qt.IsNil)
	c.Assert(tu.Log, qt.HasLen, 2) // pen_down event, then line
	c.Assert(tu.Log[1].Kind, qt.Equals, EventLine)
}

func TestForwardClampsAtCanvasEdge(t *testing.T) {
	c := qt.New(t)
	tu := New(100, 100)
	err := tu.Forward(1000)
	var clamp ClampWarning
	c.Assert(err, qt.ErrorAs, &clamp)
	c.Assert(tu.X >= 0 && tu.X <= 100, qt.IsTrue)
	c.Assert(tu.Y >= 0 && tu.Y <= 100, qt.IsTrue)
}

func TestTurnNormalizesHeading(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	tu.TurnLeft(450)
	c.Assert(tu.Heading, qt.Equals, 270.0)

	tu2 := New(200, 200)
	tu2.TurnRight(450)
	c.Assert(tu2.Heading, qt.Equals, 90.0)
}

func TestForwardMovesAlongHeading(t *testing.T) {
	c := qt.New(t)
	tu := New(1000, 1000)
	tu.TurnRight(90)
	c.Assert(tu.Forward(100), qt.IsNil)
	// heading 0 points along +x; turning right 90 degrees points +y.
	c.Assert(math.Abs(tu.X-500) < 1e-6, qt.IsTrue)
	c.Assert(math.Abs(tu.Y-600) < 1e-6, qt.IsTrue)
}

func TestSetColorFallsBackToBlack(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	tu.SetColor("mauve")
	c.Assert(tu.Color, qt.Equals, "black")
	tu.SetColor("blue")
	c.Assert(tu.Color, qt.Equals, "blue")
}

func TestSetWidthRejectsNonPositive(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	c.Assert(tu.SetWidth(0), qt.Not(qt.IsNil))
	c.Assert(tu.SetWidth(-1), qt.Not(qt.IsNil))
	c.Assert(tu.SetWidth(3), qt.IsNil)
	c.Assert(tu.PenWidth, qt.Equals, 3.0)
}

func TestDrawCircleLogsAtCurrentPosition(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	tu.DrawCircle(25)
	c.Assert(tu.Log, qt.HasLen, 1)
	c.Assert(tu.Log[0].Kind, qt.Equals, EventCircle)
	c.Assert(tu.Log[0].R, qt.Equals, 25.0)
	c.Assert(tu.Log[0].CX, qt.Equals, tu.X)
}

func TestClearResetsPoseAndLog(t *testing.T) {
	c := qt.New(t)
	tu := New(200, 200)
	tu.SetPenDown()
	_ = tu.Forward(50)
	tu.Clear()
	c.Assert(tu.Log, qt.HasLen, 1)
	c.Assert(tu.Log[0].Kind, qt.Equals, EventClear)
	c.Assert(tu.X, qt.Equals, 100.0)
	c.Assert(tu.Y, qt.Equals, 100.0)
	c.Assert(tu.PenDown, qt.IsFalse)
}
