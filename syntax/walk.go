package syntax

// Walk traverses prog's statement tree in source order, calling visit on
// every Stmt and Expr node. If visit returns false, Walk does not descend
// into that node's children. It is a generic AST traversal for tooling;
// the evaluator and the safety monitor do not use it.
func Walk(prog *Program, visit func(Node) bool) {
	walkStmts(prog.Stmts, visit)
}

func walkStmts(stmts []Stmt, visit func(Node) bool) {
	for _, s := range stmts {
		walkStmt(s, visit)
	}
}

func walkStmt(s Stmt, visit func(Node) bool) {
	if !visit(s) {
		return
	}
	switch n := s.(type) {
	case *TellStmt:
		walkExpr(n.Value, visit)
	case *AskStmt:
		walkExpr(n.Prompt, visit)
		visit(n.Target)
	case *RepeatStmt:
		walkExpr(n.Count, visit)
		walkStmts(n.Body, visit)
	case *WhenStmt:
		walkExpr(n.Subject, visit)
		walkExpr(n.Value, visit)
		walkStmts(n.Then, visit)
		walkStmts(n.Else, visit)
	case *MakeStmt:
		for _, p := range n.Params {
			visit(p)
		}
		walkStmts(n.Body, visit)
	case *CallStmt:
		visit(n.Name)
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	case *TurtleStmt:
		if n.Arg != nil {
			walkExpr(n.Arg, visit)
		}
	case *ModalStmt:
		walkStmts(n.Body, visit)
	}
}

func walkExpr(e Expr, visit func(Node) bool) {
	if !visit(e) {
		return
	}
	switch n := e.(type) {
	case *ListLit:
		for _, el := range n.Elems {
			walkExpr(el, visit)
		}
	case *CallExpr:
		visit(n.Name)
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	}
}
