package eval

import (
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

// Scope is an identifier-to-Value mapping with unique keys; insertion order
// is irrelevant (spec.md §3 "Scopes & Environment").
type Scope map[string]Value

// Function is a function-table entry: name, ordered parameters, and a
// statement body (spec.md §3 "Function Record"). Redefinition (via a
// second Make statement with the same name) replaces the entry outright.
type Function struct {
	Name   string
	Params []string
	Body   []syntax.Stmt
}

// Session is the evaluator's view of persistent state across statements and
// across REPL lines: the scope stack, the function table, and the turtle.
// Index 0 of Scopes is the session scope, which survives across REPL lines
// and across function calls; a fresh scope is pushed on each user-function
// invocation and popped on return (spec.md §3).
type Session struct {
	Scopes []Scope
	Funcs  map[string]*Function
	Turtle *turtle.Turtle
}

// NewSession returns a Session with an empty session scope, an empty
// function table, and t as its turtle.
func NewSession(t *turtle.Turtle) *Session {
	return &Session{
		Scopes: []Scope{make(Scope)},
		Funcs:  make(map[string]*Function),
		Turtle: t,
	}
}

// Lookup walks the scope stack from top to bottom, returning the first
// binding found.
func (s *Session) Lookup(name string) (Value, bool) {
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		if v, ok := s.Scopes[i][name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Bind assigns name in the top scope (spec.md §3: "assignment via Ask
// targets the top scope").
func (s *Session) Bind(name string, v Value) {
	s.Scopes[len(s.Scopes)-1][name] = v
}

// PushScope pushes a fresh, empty scope, used on user-function invocation.
func (s *Session) PushScope() {
	s.Scopes = append(s.Scopes, make(Scope))
}

// PopScope pops the top scope, used on function return. It never pops the
// session scope at index 0.
func (s *Session) PopScope() {
	if len(s.Scopes) > 1 {
		s.Scopes = s.Scopes[:len(s.Scopes)-1]
	}
}

// Vars returns a snapshot of the session (index 0) scope, for the REPL's
// /vars command and for session persistence.
func (s *Session) Vars() Scope {
	cp := make(Scope, len(s.Scopes[0]))
	for k, v := range s.Scopes[0] {
		cp[k] = v
	}
	return cp
}

// Reset clears all variables and functions but keeps the turtle instance
// (the REPL's /reset wipes state, not config; spec.md §4.5).
func (s *Session) Reset() {
	s.Scopes = []Scope{make(Scope)}
	s.Funcs = make(map[string]*Function)
	if s.Turtle != nil {
		s.Turtle.Clear()
	}
}
