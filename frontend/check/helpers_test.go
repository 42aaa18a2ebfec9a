package check

import (
	"strconv"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/op"
)

func module(body ...ast.Stmt) *ast.Module { return &ast.Module{Body: body} }

func name(id string) *ast.Name { return &ast.Name{Id: id} }

func store(id string) *ast.Name { return &ast.Name{Id: id, Ctx: ast.Store} }

func num(n int) *ast.Num { return &ast.Num{Kind: ast.IntNum, Value: strconv.Itoa(n)} }

func float(v string) *ast.Num { return &ast.Num{Kind: ast.FloatNum, Value: v} }

func str(s string) *ast.Str { return &ast.Str{Value: s} }

func list(elts ...ast.Expr) *ast.List { return &ast.List{Elts: elts} }

func tuple(elts ...ast.Expr) *ast.Tuple { return &ast.Tuple{Elts: elts, Ctx: ast.Store} }

func binop(l ast.Expr, o op.Op, r ast.Expr) *ast.BinOp { return &ast.BinOp{Left: l, Op: o, Right: r} }

func call(fn ast.Expr, args ...ast.Expr) *ast.Call { return &ast.Call{Func: fn, Args: args} }

func assign(target ast.Expr, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{target}, Value: value}
}

func annAssign(target string, annotation ast.Expr, value ast.Expr) *ast.AnnAssign {
	return &ast.AnnAssign{Target: store(target), Annotation: annotation, Value: value, Simple: true}
}

func expr(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Value: e} }

func ret(value ast.Expr) *ast.Return { return &ast.Return{Value: value} }

func param(id string, annotation ast.Expr) *ast.Arg { return &ast.Arg{Arg: id, Annotation: annotation} }

func def(fn string, params []*ast.Arg, returns ast.Expr, body ...ast.Stmt) *ast.FunctionDef {
	return &ast.FunctionDef{Name: fn, Args: &ast.Arguments{Args: params}, Returns: returns, Body: body}
}

func forLoop(target ast.Expr, iter ast.Expr, body ...ast.Stmt) *ast.For {
	if len(body) == 0 {
		body = []ast.Stmt{&ast.Pass{}}
	}
	return &ast.For{Target: target, Iter: iter, Body: body}
}
