// Package turtle implements the Ellex turtle-graphics sub-runtime: a
// stateful 2-D cursor whose movements, pen, and color are recorded to an
// append-only command log for external renderers (spec.md §3 "Turtle
// State", §4.4). It has no direct teacher analogue in mvdan.cc/sh/v3; it
// follows the same plain-owned-struct idiom the teacher uses for its own
// per-session state (interp.Runner's bgProcs/exitStatus bookkeeping).
package turtle

import (
	"fmt"
	"math"
)

// EventKind identifies the kind of a logged draw event.
type EventKind string

const (
	EventLine   EventKind = "line"
	EventMove   EventKind = "move"
	EventTurnTo EventKind = "turn_to"
	EventPenUp  EventKind = "pen_up"
	EventPenDown EventKind = "pen_down"
	EventColor  EventKind = "color"
	EventWidth  EventKind = "width"
	EventCircle EventKind = "circle"
	EventClear  EventKind = "clear"
)

// Event is one entry in the turtle's command log (spec.md §3 "Command log").
type Event struct {
	Kind           EventKind
	X0, Y0, X1, Y1 float64
	CX, CY, R      float64
	Angle          float64
	Color          string
	Width          float64
}

// namedColors is the closed palette the core recognizes; anything else
// falls back to "black" (spec.md §4.4). No pack library offers a
// CSS-named-color table scoped to a children's closed palette — see
// DESIGN.md.
var namedColors = map[string]bool{
	"black": true, "white": true, "red": true, "orange": true,
	"yellow": true, "green": true, "blue": true, "purple": true,
	"pink": true, "brown": true, "gray": true, "cyan": true,
}

// DefaultStep is the distance a bare "forward"/"backward" verb moves, since
// the surface grammar admits argumentless movement (spec.md §9, a later
// revision should require explicit units).
const DefaultStep = 100.0

// DefaultTurn is the angle a bare "left"/"right" verb rotates by.
const DefaultTurn = 90.0

// Turtle is a single session's drawing cursor.
type Turtle struct {
	Width, Height float64 // canvas bounds

	X, Y    float64
	Heading float64 // degrees, [0, 360)
	PenDown bool
	Color   string
	PenWidth float64

	Log []Event
}

// New returns a Turtle centered on a canvas of the given size.
func New(width, height float64) *Turtle {
	t := &Turtle{Width: width, Height: height, Color: "black", PenWidth: 1}
	t.resetPose()
	return t
}

func (t *Turtle) resetPose() {
	t.X, t.Y = t.Width/2, t.Height/2
	t.Heading = 0
	t.PenDown = false
}

func (t *Turtle) clamp(x, y float64) (cx, cy float64, clamped bool) {
	cx, cy = x, y
	if cx < 0 {
		cx, clamped = 0, true
	} else if cx > t.Width {
		cx, clamped = t.Width, true
	}
	if cy < 0 {
		cy, clamped = 0, true
	} else if cy > t.Height {
		cy, clamped = t.Height, true
	}
	return cx, cy, clamped
}

// ClampWarning is the non-fatal diagnostic returned when a movement clamps
// to the canvas edge (spec.md §4.4).
type ClampWarning struct{}

func (ClampWarning) Error() string { return "Turtle reached canvas edge" }

func (t *Turtle) move(distance float64) error {
	rad := t.Heading * (math.Pi / 180)
	nx := t.X + distance*math.Cos(rad)
	ny := t.Y + distance*math.Sin(rad)
	cx, cy, clamped := t.clamp(nx, ny)
	ev := Event{X0: t.X, Y0: t.Y, X1: cx, Y1: cy, Color: t.Color, Width: t.PenWidth}
	if t.PenDown {
		ev.Kind = EventLine
	} else {
		ev.Kind = EventMove
	}
	t.X, t.Y = cx, cy
	t.Log = append(t.Log, ev)
	if clamped {
		return ClampWarning{}
	}
	return nil
}

// Forward moves the turtle distance units along its current heading.
func (t *Turtle) Forward(distance float64) error { return t.move(distance) }

// Backward moves the turtle distance units opposite its current heading.
func (t *Turtle) Backward(distance float64) error { return t.move(-distance) }

// TurnLeft rotates the turtle's heading counter-clockwise by degrees.
func (t *Turtle) TurnLeft(degrees float64) {
	t.setHeading(t.Heading - degrees)
}

// TurnRight rotates the turtle's heading clockwise by degrees.
func (t *Turtle) TurnRight(degrees float64) {
	t.setHeading(t.Heading + degrees)
}

func (t *Turtle) setHeading(deg float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	t.Heading = deg
	t.Log = append(t.Log, Event{Kind: EventTurnTo, Angle: deg})
}

// SetPenDown engages the pen; subsequent movement draws lines.
func (t *Turtle) SetPenDown() {
	t.PenDown = true
	t.Log = append(t.Log, Event{Kind: EventPenDown})
}

// SetPenUp disengages the pen; subsequent movement only repositions.
func (t *Turtle) SetPenUp() {
	t.PenDown = false
	t.Log = append(t.Log, Event{Kind: EventPenUp})
}

// SetColor sets the drawing color, coercing to the closed named-color set
// (unrecognized names fall back to "black", spec.md §4.4).
func (t *Turtle) SetColor(name string) {
	if !namedColors[name] {
		name = "black"
	}
	t.Color = name
	t.Log = append(t.Log, Event{Kind: EventColor, Color: name})
}

// SetWidth sets the pen's line width; non-positive values are rejected.
func (t *Turtle) SetWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("turtle: line width must be positive, got %v", w)
	}
	t.PenWidth = w
	t.Log = append(t.Log, Event{Kind: EventWidth, Width: w})
	return nil
}

// DrawCircle draws a circle of the given radius centered on the turtle's
// current position.
func (t *Turtle) DrawCircle(radius float64) {
	t.Log = append(t.Log, Event{Kind: EventCircle, CX: t.X, CY: t.Y, R: radius, Color: t.Color, Width: t.PenWidth})
}

// Clear empties the command log and resets the turtle to canvas center
// (spec.md §4.4 "clear").
func (t *Turtle) Clear() {
	t.Log = t.Log[:0]
	t.resetPose()
	t.Log = append(t.Log, Event{Kind: EventClear})
}
