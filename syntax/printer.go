package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ellex-lang/ellex/token"
)

// Printer renders a Program back to Ellex source text. Reparsing the
// printer's output must yield a structurally equal AST, modulo comment
// stripping (spec.md §8 "Idempotent reparse").
type Printer struct {
	indent string
}

// NewPrinter returns a ready-to-use Printer.
func NewPrinter() *Printer { return &Printer{indent: "  "} }

// Print renders prog to its canonical source form.
func (pr *Printer) Print(prog *Program) string {
	var b strings.Builder
	pr.stmts(&b, prog.Stmts, 0)
	return b.String()
}

func (pr *Printer) stmts(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		pr.stmt(b, s, depth)
	}
}

func (pr *Printer) pad(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(pr.indent)
	}
}

func (pr *Printer) stmt(b *strings.Builder, s Stmt, depth int) {
	pr.pad(b, depth)
	switch n := s.(type) {
	case *TellStmt:
		b.WriteString("tell ")
		pr.expr(b, n.Value)
		b.WriteByte('\n')
	case *AskStmt:
		b.WriteString("ask ")
		pr.expr(b, n.Prompt)
		b.WriteString(" = ")
		b.WriteString(n.Target.Name)
		if n.Hint != token.ILLEGAL {
			b.WriteString(" as ")
			b.WriteString(n.Hint.String())
		}
		b.WriteByte('\n')
	case *RepeatStmt:
		b.WriteString("repeat ")
		pr.expr(b, n.Count)
		b.WriteString(" times do\n")
		pr.stmts(b, n.Body, depth+1)
		pr.pad(b, depth)
		b.WriteString("end\n")
	case *WhenStmt:
		b.WriteString("when ")
		pr.expr(b, n.Subject)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		pr.expr(b, n.Value)
		b.WriteString(" do\n")
		pr.stmts(b, n.Then, depth+1)
		if n.HasOtherwise {
			pr.pad(b, depth)
			b.WriteString("otherwise do\n")
			pr.stmts(b, n.Else, depth+1)
		}
		pr.pad(b, depth)
		b.WriteString("end\n")
	case *MakeStmt:
		b.WriteString("make ")
		b.WriteString(n.Name.Name)
		if len(n.Params) > 0 {
			b.WriteString(" with ")
			for i, p := range n.Params {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.Name)
			}
		}
		b.WriteString(" do\n")
		pr.stmts(b, n.Body, depth+1)
		pr.pad(b, depth)
		b.WriteString("end\n")
	case *CallStmt:
		b.WriteString(n.Name.Name)
		for i, a := range n.Args {
			if i == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(", ")
			}
			pr.expr(b, a)
		}
		b.WriteByte('\n')
	case *TurtleStmt:
		switch n.Op {
		case token.USE:
			b.WriteString("use color ")
			pr.expr(b, n.Arg)
		case token.DRAW:
			b.WriteString("draw circle with radius ")
			pr.expr(b, n.Arg)
		default:
			b.WriteString(n.Op.String())
		}
		b.WriteByte('\n')
	case *ModalStmt:
		b.WriteByte('@')
		b.WriteString(n.Mode.Name)
		b.WriteString(" do\n")
		pr.stmts(b, n.Body, depth+1)
		pr.pad(b, depth)
		b.WriteString("end\n")
	default:
		panic(fmt.Sprintf("syntax: Printer: unknown statement type %T", s))
	}
}

func (pr *Printer) expr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *StringLit:
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	case *NumberLit:
		b.WriteString(formatNumber(n.Value))
	case *ListLit:
		b.WriteByte('[')
		for i, el := range n.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			pr.expr(b, el)
		}
		b.WriteByte(']')
	case *Ident:
		b.WriteString(n.Name)
	case *CallExpr:
		b.WriteString(n.Name.Name)
		for i, a := range n.Args {
			if i == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(", ")
			}
			pr.expr(b, a)
		}
	default:
		panic(fmt.Sprintf("syntax: Printer: unknown expression type %T", e))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
