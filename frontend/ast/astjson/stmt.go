package astjson

import "github.com/cottand/gradual/frontend/ast"

func (d *decoder) stmts(n node, field string) []ast.Stmt {
	var stmts []ast.Stmt
	for _, v := range d.list(n, field) {
		if s := d.stmt(v); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (d *decoder) stmt(v any) ast.Stmt {
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	r := n.rng()
	switch n.kind {
	case "FunctionDef", "AsyncFunctionDef":
		return &ast.FunctionDef{
			Range:         r,
			Name:          n.str("name"),
			Args:          d.arguments(n.get("args")),
			Body:          d.stmts(n, "body"),
			DecoratorList: d.exprs(n, "decorator_list"),
			Returns:       d.expr(n.get("returns")),
			IsAsync:       n.kind == "AsyncFunctionDef",
		}
	case "ClassDef":
		return &ast.ClassDef{
			Range:         r,
			Name:          n.str("name"),
			Bases:         d.exprs(n, "bases"),
			Keywords:      d.keywords(n, "keywords"),
			Body:          d.stmts(n, "body"),
			DecoratorList: d.exprs(n, "decorator_list"),
		}
	case "Return":
		return &ast.Return{Range: r, Value: d.expr(n.get("value"))}
	case "Delete":
		return &ast.Delete{Range: r, Targets: d.exprs(n, "targets")}
	case "Assign":
		return &ast.Assign{Range: r, Targets: d.exprs(n, "targets"), Value: d.requiredExpr(n, "value")}
	case "AugAssign":
		return &ast.AugAssign{Range: r, Target: d.requiredExpr(n, "target"), Op: d.operator(n, "op"), Value: d.requiredExpr(n, "value")}
	case "AnnAssign":
		return &ast.AnnAssign{
			Range:      r,
			Target:     d.requiredExpr(n, "target"),
			Annotation: d.requiredExpr(n, "annotation"),
			Value:      d.expr(n.get("value")),
			Simple:     n.int("simple") != 0,
		}
	case "For", "AsyncFor":
		return &ast.For{
			Range:   r,
			Target:  d.requiredExpr(n, "target"),
			Iter:    d.requiredExpr(n, "iter"),
			Body:    d.stmts(n, "body"),
			OrElse:  d.stmts(n, "orelse"),
			IsAsync: n.kind == "AsyncFor",
		}
	case "While":
		return &ast.While{Range: r, Test: d.requiredExpr(n, "test"), Body: d.stmts(n, "body"), OrElse: d.stmts(n, "orelse")}
	case "If":
		return &ast.If{Range: r, Test: d.requiredExpr(n, "test"), Body: d.stmts(n, "body"), OrElse: d.stmts(n, "orelse")}
	case "With", "AsyncWith":
		with := &ast.With{Range: r, Body: d.stmts(n, "body"), IsAsync: n.kind == "AsyncWith"}
		if _, legacy := n.fields["context_expr"]; legacy {
			with.Items = []*ast.WithItem{d.withItem(n, n)}
			return with
		}
		for _, v := range d.list(n, "items") {
			if item, ok := d.node(v); ok {
				with.Items = append(with.Items, d.withItem(n, item))
			}
		}
		return with
	case "Raise":
		raise := &ast.Raise{Range: r, Exc: d.expr(n.get("exc")), Cause: d.expr(n.get("cause"))}
		if _, legacy := n.fields["type"]; legacy {
			raise.Exc = d.expr(n.get("type"))
		}
		return raise
	case "Try", "TryExcept", "TryFinally":
		try := &ast.Try{
			Range:     r,
			Body:      d.stmts(n, "body"),
			OrElse:    d.stmts(n, "orelse"),
			FinalBody: d.stmts(n, "finalbody"),
		}
		for _, v := range d.list(n, "handlers") {
			if h := d.handler(v); h != nil {
				try.Handlers = append(try.Handlers, h)
			}
		}
		return try
	case "Assert":
		return &ast.Assert{Range: r, Test: d.requiredExpr(n, "test"), Msg: d.expr(n.get("msg"))}
	case "Import":
		return &ast.Import{Range: r, Names: d.aliases(n)}
	case "ImportFrom":
		return &ast.ImportFrom{Range: r, Module: n.str("module"), Names: d.aliases(n), Level: n.int("level")}
	case "Global":
		return &ast.Global{Range: r, Names: d.names(n, "names")}
	case "Nonlocal":
		return &ast.Nonlocal{Range: r, Names: d.names(n, "names")}
	case "Expr":
		return &ast.ExprStmt{Range: r, Value: d.requiredExpr(n, "value")}
	case "Pass":
		return &ast.Pass{Range: r}
	case "Break":
		return &ast.Break{Range: r}
	case "Continue":
		return &ast.Continue{Range: r}
	}
	d.failf(n, "unknown statement kind %s", n.kind)
	return nil
}

// withItem reads the item fields of from, positioned at at.
func (d *decoder) withItem(at, from node) *ast.WithItem {
	return &ast.WithItem{
		Range:        at.rng(),
		ContextExpr:  d.requiredExpr(from, "context_expr"),
		OptionalVars: d.expr(from.get("optional_vars")),
	}
}

func (d *decoder) handler(v any) *ast.ExceptHandler {
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	if n.kind != "ExceptHandler" && n.kind != "excepthandler" {
		d.failf(n, "expected an ExceptHandler, found %s", n.kind)
		return nil
	}
	h := &ast.ExceptHandler{Range: n.rng(), Type: d.expr(n.get("type")), Body: d.stmts(n, "body")}
	switch name := n.get("name").(type) {
	case string:
		h.Name = name
	case map[string]any:
		// older grammars bind a Name node
		if bound, ok := d.expr(name).(*ast.Name); ok {
			h.Name = bound.Id
		}
	}
	return h
}

func (d *decoder) aliases(n node) []*ast.Alias {
	var aliases []*ast.Alias
	for _, v := range d.list(n, "names") {
		alias, ok := d.node(v)
		if !ok {
			continue
		}
		aliases = append(aliases, &ast.Alias{Range: alias.rng(), Name: alias.str("name"), AsName: alias.str("asname")})
	}
	return aliases
}
