package syntax

import "github.com/ellex-lang/ellex/token"

// Program is a parsed Ellex source file or REPL line.
type Program struct {
	Name     string
	Stmts    []Stmt
	Comments []*Comment
	Lines    Lines
}

func (p *Program) Pos() Pos {
	if len(p.Stmts) == 0 {
		return 0
	}
	return p.Stmts[0].Pos()
}

func (p *Program) End() Pos {
	if len(p.Stmts) == 0 {
		return 0
	}
	return p.Stmts[len(p.Stmts)-1].End()
}

// Position expands a Pos into line/column information for this program.
func (p *Program) Position(at Pos) Position { return p.Lines.Position(at) }

// Comment is a '#'-to-end-of-line comment. The lexer skips comments, so the
// parser produces no Comment nodes and Program.Comments is always empty.
type Comment struct {
	Hash Pos
	Text string
}

func (c *Comment) Pos() Pos { return c.Hash }
func (c *Comment) End() Pos { return posAdd(c.Hash, len(c.Text)) }

// Stmt is implemented by every statement node (spec.md §3 "Statements").
type Stmt interface {
	Node
	stmtNode()
}

func (*TellStmt) stmtNode()    {}
func (*AskStmt) stmtNode()     {}
func (*RepeatStmt) stmtNode()  {}
func (*WhenStmt) stmtNode()    {}
func (*MakeStmt) stmtNode()    {}
func (*CallStmt) stmtNode()    {}
func (*TurtleStmt) stmtNode()  {}
func (*ModalStmt) stmtNode()   {}

// Expr is implemented by every expression node (spec.md §3 "Expressions").
type Expr interface {
	Node
	exprNode()
}

func (*StringLit) exprNode() {}
func (*NumberLit) exprNode() {}
func (*ListLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*CallExpr) exprNode()  {}

// Ident is an identifier reference, in expression position or as a name.
type Ident struct {
	NamePos Pos
	Name    string
}

func (i *Ident) Pos() Pos { return i.NamePos }
func (i *Ident) End() Pos { return posAdd(i.NamePos, len(i.Name)) }

// StringLit is a double-quoted string literal. Value is the raw text with
// "{ident}" interpolation placeholders left unresolved; resolution happens
// lazily in the evaluator (spec.md §4.2 "String interpolation").
type StringLit struct {
	ValuePos Pos
	Value    string
}

func (s *StringLit) Pos() Pos { return s.ValuePos }
func (s *StringLit) End() Pos { return posAdd(s.ValuePos, len(s.Value)+2) }

// NumberLit is a decimal integer or floating-point literal.
type NumberLit struct {
	ValuePos Pos
	Value    float64
	Raw      string
}

func (n *NumberLit) Pos() Pos { return n.ValuePos }
func (n *NumberLit) End() Pos { return posAdd(n.ValuePos, len(n.Raw)) }

// ListLit is a literal "[a, b, c]" list expression.
type ListLit struct {
	Lbrack, Rbrack Pos
	Elems          []Expr
}

func (l *ListLit) Pos() Pos { return l.Lbrack }
func (l *ListLit) End() Pos { return posAdd(l.Rbrack, 1) }

// CallExpr is a function-call used in expression position, e.g. as an
// argument to another call.
type CallExpr struct {
	Name *Ident
	Args []Expr
}

func (c *CallExpr) Pos() Pos { return c.Name.Pos() }
func (c *CallExpr) End() Pos {
	if len(c.Args) == 0 {
		return c.Name.End()
	}
	return posMax(c.Name.End(), c.Args[len(c.Args)-1].End())
}

// TellStmt is "tell <expr>".
type TellStmt struct {
	TokPos Pos
	Value  Expr
}

func (t *TellStmt) Pos() Pos { return t.TokPos }
func (t *TellStmt) End() Pos { return t.Value.End() }

// AskStmt is "ask <expr> (→|=) IDENT (as TYPE)?".
type AskStmt struct {
	TokPos  Pos
	Prompt  Expr
	Target  *Ident
	Hint    token.Token // STRING_HINT, NUMBER_HINT, LIST_HINT, or token.ILLEGAL if absent
	HintPos Pos
}

func (a *AskStmt) Pos() Pos { return a.TokPos }
func (a *AskStmt) End() Pos {
	if a.Hint != token.ILLEGAL {
		return posAdd(a.HintPos, len(a.Hint.String()))
	}
	return a.Target.End()
}

// RepeatStmt is "repeat <expr> times do <body> end".
type RepeatStmt struct {
	TokPos Pos
	Count  Expr
	Body   []Stmt
	EndPos Pos
}

func (r *RepeatStmt) Pos() Pos { return r.TokPos }
func (r *RepeatStmt) End() Pos { return posAdd(r.EndPos, 3) }

// WhenStmt is "when <expr> (is|matches) <expr> do <then> (otherwise do <else>)? end".
type WhenStmt struct {
	TokPos      Pos
	Subject     Expr
	Op          token.Token // IS or MATCHES
	Value       Expr
	Then        []Stmt
	Else        []Stmt // nil if no "otherwise" clause
	HasOtherwise bool
	EndPos      Pos
}

func (w *WhenStmt) Pos() Pos { return w.TokPos }
func (w *WhenStmt) End() Pos { return posAdd(w.EndPos, 3) }

// MakeStmt is "make IDENT (with IDENT (, IDENT)*)? do <body> end".
type MakeStmt struct {
	TokPos Pos
	Name   *Ident
	Params []*Ident
	Body   []Stmt
	EndPos Pos
}

func (m *MakeStmt) Pos() Pos { return m.TokPos }
func (m *MakeStmt) End() Pos { return posAdd(m.EndPos, 3) }

// CallStmt is a bare function call used as a statement: "IDENT (expr, ...)?".
type CallStmt struct {
	Name *Ident
	Args []Expr
}

func (c *CallStmt) Pos() Pos { return c.Name.Pos() }
func (c *CallStmt) End() Pos {
	if len(c.Args) == 0 {
		return c.Name.End()
	}
	return posMax(c.Name.End(), c.Args[len(c.Args)-1].End())
}

// TurtleStmt is one of the builtin turtle verbs or "use color <expr>" /
// "draw circle with radius <expr>".
type TurtleStmt struct {
	TokPos Pos
	Op     token.Token
	Arg    Expr // non-nil only for USE (color expr) and DRAW (radius expr)
}

func (t *TurtleStmt) Pos() Pos { return t.TokPos }
func (t *TurtleStmt) End() Pos {
	if t.Arg != nil {
		return t.Arg.End()
	}
	return posAdd(t.TokPos, len(t.Op.String()))
}

// ModalStmt is a "@listen"/"@think"/"@build"/... block (spec.md §9). The
// core executes its body as a plain block; UnknownMode marks a mode name the
// parser didn't recognize, which the REPL renders as a non-fatal warning.
type ModalStmt struct {
	TokPos      Pos
	Mode        *Ident
	Body        []Stmt
	UnknownMode bool
	EndPos      Pos
}

func (m *ModalStmt) Pos() Pos { return m.TokPos }
func (m *ModalStmt) End() Pos { return posAdd(m.EndPos, 3) }

func stmtLastEnd(stmts []Stmt) Pos {
	if len(stmts) == 0 {
		return 0
	}
	return stmts[len(stmts)-1].End()
}
