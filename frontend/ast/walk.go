package ast

// Inspect traverses the tree rooted at node in depth-first order, like
// go/ast.Inspect: it calls f(n) for every node n, and descends into the
// children of n only if f returns true. Nil children are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	exprs := func(es []Expr) {
		for _, e := range es {
			if e != nil {
				Inspect(e, f)
			}
		}
	}
	stmts := func(ss []Stmt) {
		for _, s := range ss {
			Inspect(s, f)
		}
	}
	expr := func(e Expr) {
		if e != nil {
			Inspect(e, f)
		}
	}
	arguments := func(a *Arguments) {
		if a != nil {
			Inspect(a, f)
		}
	}
	arg := func(a *Arg) {
		if a != nil {
			Inspect(a, f)
		}
	}
	generators := func(gs []*Comprehension) {
		for _, g := range gs {
			Inspect(g, f)
		}
	}

	switch n := node.(type) {
	case *Module:
		stmts(n.Body)

	// statements
	case *FunctionDef:
		exprs(n.DecoratorList)
		arguments(n.Args)
		expr(n.Returns)
		stmts(n.Body)
	case *ClassDef:
		exprs(n.DecoratorList)
		exprs(n.Bases)
		for _, kw := range n.Keywords {
			Inspect(kw, f)
		}
		stmts(n.Body)
	case *Return:
		expr(n.Value)
	case *Delete:
		exprs(n.Targets)
	case *Assign:
		exprs(n.Targets)
		expr(n.Value)
	case *AugAssign:
		expr(n.Target)
		expr(n.Value)
	case *AnnAssign:
		expr(n.Target)
		expr(n.Annotation)
		expr(n.Value)
	case *For:
		expr(n.Target)
		expr(n.Iter)
		stmts(n.Body)
		stmts(n.OrElse)
	case *While:
		expr(n.Test)
		stmts(n.Body)
		stmts(n.OrElse)
	case *If:
		expr(n.Test)
		stmts(n.Body)
		stmts(n.OrElse)
	case *With:
		for _, item := range n.Items {
			Inspect(item, f)
		}
		stmts(n.Body)
	case *Raise:
		expr(n.Exc)
		expr(n.Cause)
	case *Try:
		stmts(n.Body)
		for _, h := range n.Handlers {
			Inspect(h, f)
		}
		stmts(n.OrElse)
		stmts(n.FinalBody)
	case *Assert:
		expr(n.Test)
		expr(n.Msg)
	case *Import:
		for _, a := range n.Names {
			Inspect(a, f)
		}
	case *ImportFrom:
		for _, a := range n.Names {
			Inspect(a, f)
		}
	case *ExprStmt:
		expr(n.Value)
	case *Global, *Nonlocal, *Pass, *Break, *Continue:

	// expressions
	case *BoolOp:
		exprs(n.Values)
	case *BinOp:
		expr(n.Left)
		expr(n.Right)
	case *UnaryOp:
		expr(n.Operand)
	case *Lambda:
		arguments(n.Args)
		expr(n.Body)
	case *IfExp:
		expr(n.Test)
		expr(n.Body)
		expr(n.OrElse)
	case *Dict:
		exprs(n.Keys)
		exprs(n.Values)
	case *Set:
		exprs(n.Elts)
	case *ListComp:
		generators(n.Generators)
		expr(n.Elt)
	case *SetComp:
		generators(n.Generators)
		expr(n.Elt)
	case *DictComp:
		generators(n.Generators)
		expr(n.Key)
		expr(n.Value)
	case *GeneratorExp:
		generators(n.Generators)
		expr(n.Elt)
	case *Await:
		expr(n.Value)
	case *Yield:
		expr(n.Value)
	case *YieldFrom:
		expr(n.Value)
	case *Compare:
		expr(n.Left)
		exprs(n.Comparators)
	case *Call:
		expr(n.Func)
		exprs(n.Args)
		for _, kw := range n.Keywords {
			Inspect(kw, f)
		}
	case *JoinedStr:
		exprs(n.Values)
	case *FormattedValue:
		expr(n.Value)
		expr(n.FormatSpec)
	case *Attribute:
		expr(n.Value)
	case *Subscript:
		expr(n.Value)
		if n.Slice != nil {
			Inspect(n.Slice, f)
		}
	case *Starred:
		expr(n.Value)
	case *List:
		exprs(n.Elts)
	case *Tuple:
		exprs(n.Elts)
	case *Num, *Str, *Bytes, *NameConstant, *Ellipsis, *Name:

	// slices
	case *Index:
		expr(n.Value)
	case *SliceRange:
		expr(n.Lower)
		expr(n.Upper)
		expr(n.Step)
	case *ExtSlice:
		for _, d := range n.Dims {
			Inspect(d, f)
		}

	// auxiliary nodes
	case *Arguments:
		for _, a := range n.Args {
			arg(a)
		}
		arg(n.Vararg)
		for _, a := range n.KwOnlyArgs {
			arg(a)
		}
		exprs(n.KwDefaults)
		arg(n.Kwarg)
		exprs(n.Defaults)
	case *Arg:
		expr(n.Annotation)
	case *Keyword:
		expr(n.Value)
	case *Comprehension:
		expr(n.Target)
		expr(n.Iter)
		exprs(n.Ifs)
	case *WithItem:
		expr(n.ContextExpr)
		expr(n.OptionalVars)
	case *ExceptHandler:
		expr(n.Type)
		stmts(n.Body)
	case *Alias:
	}
}
