// Package eval implements the Ellex tree-walking evaluator: the runtime
// Value model, variable scopes, the function table, and statement/expression
// dispatch (spec.md §3, §4.2). It is grounded on mvdan.cc/sh/v3's
// interp.Runner — the statement-at-a-time dispatch loop that calls into a
// safety.Monitor (itself generalized from Runner.stop(ctx)) before every
// statement mirrors Runner.stmtSync's use of Runner.stop(ctx).
package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value (spec.md §3 "Runtime Values").
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	default:
		return "nil"
	}
}

// Value is one of String, Number, List, Function, or Nil. Values are
// immutable by contract: mutation happens by rebinding a variable, never by
// mutating a Value in place (spec.md §3).
type Value struct {
	kind Kind
	str  string
	num  float64
	list []Value
}

// Nil is the absence of a value.
var Nil = Value{kind: KindNil}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a number Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List constructs a list Value with insertion-preserving, heterogeneous
// elements (spec.md §3).
func List(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindList, list: cp}
}

// FunctionValue constructs a Value referencing a function table entry by
// name. Functions are first-class only in the function table, never
// storable in a variable (spec.md §3 "Function Record"); the evaluator
// itself never produces such a Value.
func FunctionValue(name string) Value { return Value{kind: KindFunction, str: name} }

// Kind reports v's dynamic type.
func (v Value) Kind() Kind { return v.kind }

// Str returns the raw string payload; valid only when Kind() == KindString
// (or KindFunction, where it holds the function name).
func (v Value) Str() string { return v.str }

// Num returns the raw numeric payload; valid only when Kind() == KindNumber.
func (v Value) Num() float64 { return v.num }

// Elems returns the list payload; valid only when Kind() == KindList.
func (v Value) Elems() []Value { return v.list }

// Coerce renders v as the string spec.md's Tell/Ask-prompt coercion rules
// require: numbers print without a trailing ".0" when integral, lists
// bracket their elements, Nil prints as the empty string.
func (v Value) Coerce() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Coerce()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindFunction:
		return v.str
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Equal implements the structural equality spec.md §4.2 "When" requires:
// numbers compare by exact value, strings by codepoints, lists elementwise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindString, KindFunction:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	default:
		return true // two Nils are equal
	}
}

// EstimatedSize is the heuristic memory-estimate contribution of v: held
// string lengths plus a constant per binding (spec.md §4.3
// "estimate_memory").
func (v Value) EstimatedSize() int {
	const bindingConst = 16
	switch v.kind {
	case KindString, KindFunction:
		return bindingConst + len(v.str)
	case KindNumber:
		return bindingConst + 8
	case KindList:
		total := bindingConst
		for _, e := range v.list {
			total += e.EstimatedSize()
		}
		return total
	default:
		return bindingConst
	}
}

func (v Value) String() string { return fmt.Sprintf("%s(%s)", v.kind, v.Coerce()) }
