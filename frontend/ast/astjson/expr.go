package astjson

import (
	"encoding/json"
	"strings"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/op"
)

// exprs keeps JSON nulls as nil entries, as in the keys of a Dict.
func (d *decoder) exprs(n node, field string) []ast.Expr {
	l := d.list(n, field)
	if l == nil {
		return nil
	}
	exprs := make([]ast.Expr, len(l))
	for i, v := range l {
		exprs[i] = d.expr(v)
	}
	return exprs
}

// requiredExpr is expr for a field that may not be null.
func (d *decoder) requiredExpr(n node, field string) ast.Expr {
	e := d.expr(n.get(field))
	if e == nil {
		d.failf(n, "%s without %s", n.kind, field)
	}
	return e
}

func (d *decoder) expr(v any) ast.Expr {
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	r := n.rng()
	switch n.kind {
	case "BoolOp":
		return &ast.BoolOp{Range: r, Op: d.operator(n, "op"), Values: d.exprs(n, "values")}
	case "BinOp":
		return &ast.BinOp{Range: r, Left: d.requiredExpr(n, "left"), Op: d.operator(n, "op"), Right: d.requiredExpr(n, "right")}
	case "UnaryOp":
		return &ast.UnaryOp{Range: r, Op: d.operator(n, "op"), Operand: d.requiredExpr(n, "operand")}
	case "Lambda":
		return &ast.Lambda{Range: r, Args: d.arguments(n.get("args")), Body: d.requiredExpr(n, "body")}
	case "IfExp":
		return &ast.IfExp{Range: r, Test: d.requiredExpr(n, "test"), Body: d.requiredExpr(n, "body"), OrElse: d.requiredExpr(n, "orelse")}
	case "Dict":
		return &ast.Dict{Range: r, Keys: d.exprs(n, "keys"), Values: d.exprs(n, "values")}
	case "Set":
		return &ast.Set{Range: r, Elts: d.exprs(n, "elts")}
	case "ListComp":
		return &ast.ListComp{Range: r, Elt: d.requiredExpr(n, "elt"), Generators: d.generators(n)}
	case "SetComp":
		return &ast.SetComp{Range: r, Elt: d.requiredExpr(n, "elt"), Generators: d.generators(n)}
	case "GeneratorExp":
		return &ast.GeneratorExp{Range: r, Elt: d.requiredExpr(n, "elt"), Generators: d.generators(n)}
	case "DictComp":
		return &ast.DictComp{Range: r, Key: d.requiredExpr(n, "key"), Value: d.requiredExpr(n, "value"), Generators: d.generators(n)}
	case "Await":
		return &ast.Await{Range: r, Value: d.requiredExpr(n, "value")}
	case "Yield":
		return &ast.Yield{Range: r, Value: d.expr(n.get("value"))}
	case "YieldFrom":
		return &ast.YieldFrom{Range: r, Value: d.requiredExpr(n, "value")}
	case "Compare":
		return d.compare(n)
	case "Call":
		return d.call(n)
	case "Num":
		return d.num(n, n.get("n"))
	case "Str":
		return &ast.Str{Range: r, Value: n.str("s")}
	case "Bytes":
		return &ast.Bytes{Range: r, Value: n.str("s")}
	case "NameConstant":
		return d.nameConstant(n, n.get("value"))
	case "Ellipsis":
		return &ast.Ellipsis{Range: r}
	case "Constant":
		return d.constant(n)
	case "JoinedStr":
		return &ast.JoinedStr{Range: r, Values: d.exprs(n, "values")}
	case "FormattedValue":
		return &ast.FormattedValue{Range: r, Value: d.requiredExpr(n, "value"), FormatSpec: d.expr(n.get("format_spec"))}
	case "Attribute":
		return &ast.Attribute{Range: r, Value: d.requiredExpr(n, "value"), Attr: n.str("attr"), Ctx: d.ctx(n)}
	case "Subscript":
		return &ast.Subscript{Range: r, Value: d.requiredExpr(n, "value"), Slice: d.slice(n.get("slice")), Ctx: d.ctx(n)}
	case "Starred":
		return &ast.Starred{Range: r, Value: d.requiredExpr(n, "value"), Ctx: d.ctx(n)}
	case "Name":
		return &ast.Name{Range: r, Id: n.str("id"), Ctx: d.ctx(n)}
	case "List":
		return &ast.List{Range: r, Elts: d.exprs(n, "elts"), Ctx: d.ctx(n)}
	case "Tuple":
		return &ast.Tuple{Range: r, Elts: d.exprs(n, "elts"), Ctx: d.ctx(n)}
	}
	d.failf(n, "unknown expression kind %s", n.kind)
	return nil
}

func (d *decoder) compare(n node) ast.Expr {
	cmp := &ast.Compare{Range: n.rng(), Left: d.requiredExpr(n, "left"), Comparators: d.exprs(n, "comparators")}
	for _, v := range d.list(n, "ops") {
		opNode, ok := d.node(v)
		if !ok {
			continue
		}
		o, ok := op.Lookup(opNode.kind)
		if !ok || !o.IsComparison() {
			d.failf(n, "unknown comparison operator %s", opNode.kind)
			return nil
		}
		cmp.Ops = append(cmp.Ops, o)
	}
	if len(cmp.Ops) != len(cmp.Comparators) {
		d.failf(n, "comparison with %d operators and %d operands", len(cmp.Ops), len(cmp.Comparators))
	}
	return cmp
}

// call also accepts the starargs and kwargs fields of grammars that predate
// Starred arguments.
func (d *decoder) call(n node) ast.Expr {
	c := &ast.Call{Range: n.rng(), Func: d.requiredExpr(n, "func"), Args: d.exprs(n, "args"), Keywords: d.keywords(n, "keywords")}
	if star := d.expr(n.get("starargs")); star != nil {
		c.Args = append(c.Args, &ast.Starred{Range: ast.RangeOf(star), Value: star})
	}
	if kwargs := d.expr(n.get("kwargs")); kwargs != nil {
		c.Keywords = append(c.Keywords, &ast.Keyword{Range: ast.RangeOf(kwargs), Value: kwargs})
	}
	return c
}

func (d *decoder) keywords(n node, field string) []*ast.Keyword {
	var kws []*ast.Keyword
	for _, v := range d.list(n, field) {
		kw, ok := d.node(v)
		if !ok {
			continue
		}
		kws = append(kws, &ast.Keyword{Range: kw.rng(), Arg: kw.str("arg"), Value: d.requiredExpr(kw, "value")})
	}
	return kws
}

func (d *decoder) generators(n node) []*ast.Comprehension {
	var gens []*ast.Comprehension
	for _, v := range d.list(n, "generators") {
		gen, ok := d.node(v)
		if !ok {
			continue
		}
		gens = append(gens, &ast.Comprehension{
			Range:   gen.rng(),
			Target:  d.requiredExpr(gen, "target"),
			Iter:    d.requiredExpr(gen, "iter"),
			Ifs:     d.exprs(gen, "ifs"),
			IsAsync: gen.int("is_async") != 0,
		})
	}
	return gens
}

func (d *decoder) num(n node, v any) ast.Expr {
	num, ok := v.(json.Number)
	if !ok {
		d.failf(n, "numeric literal holds a %T", v)
		return nil
	}
	kind := ast.IntNum
	if strings.ContainsAny(num.String(), ".eE") {
		kind = ast.FloatNum
	}
	return &ast.Num{Range: n.rng(), Kind: kind, Value: num.String()}
}

func (d *decoder) nameConstant(n node, v any) ast.Expr {
	switch v := v.(type) {
	case nil:
		return &ast.NameConstant{Range: n.rng(), Value: "None"}
	case bool:
		if v {
			return &ast.NameConstant{Range: n.rng(), Value: "True"}
		}
		return &ast.NameConstant{Range: n.rng(), Value: "False"}
	}
	d.failf(n, "constant holds a %T", v)
	return nil
}

// constant maps a Constant to the literal node of older grammars.
func (d *decoder) constant(n node) ast.Expr {
	switch v := n.get("value").(type) {
	case nil, bool:
		return d.nameConstant(n, v)
	case json.Number:
		return d.num(n, v)
	case string:
		return &ast.Str{Range: n.rng(), Value: v}
	case map[string]any:
		if inner, ok := d.node(v); ok && inner.kind == "Ellipsis" {
			return &ast.Ellipsis{Range: n.rng()}
		}
	}
	d.failf(n, "unsupported constant %v", n.get("value"))
	return nil
}

// slice reads both the slice nodes of older grammars and the bare
// expressions, Slice and tuples of them that replaced them.
func (d *decoder) slice(v any) ast.Slice {
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	switch n.kind {
	case "Index":
		return &ast.Index{Range: n.rng(), Value: d.requiredExpr(n, "value")}
	case "Slice":
		return &ast.SliceRange{
			Range: n.rng(),
			Lower: d.expr(n.get("lower")),
			Upper: d.expr(n.get("upper")),
			Step:  d.expr(n.get("step")),
		}
	case "ExtSlice":
		ext := &ast.ExtSlice{Range: n.rng()}
		for _, dim := range d.list(n, "dims") {
			ext.Dims = append(ext.Dims, d.slice(dim))
		}
		return ext
	case "Tuple":
		elts := d.list(n, "elts")
		hasSlice := false
		for _, elt := range elts {
			if m, ok := elt.(map[string]any); ok && m["_type"] == "Slice" {
				hasSlice = true
			}
		}
		if hasSlice {
			ext := &ast.ExtSlice{Range: n.rng()}
			for _, elt := range elts {
				ext.Dims = append(ext.Dims, d.slice(elt))
			}
			return ext
		}
	}
	value := d.expr(v)
	if value == nil {
		return nil
	}
	return &ast.Index{Range: n.rng(), Value: value}
}

func (d *decoder) arguments(v any) *ast.Arguments {
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	args := &ast.Arguments{
		Range:      n.rng(),
		Args:       append(d.args(n, "posonlyargs"), d.args(n, "args")...),
		Vararg:     d.arg(n.get("vararg")),
		KwOnlyArgs: d.args(n, "kwonlyargs"),
		KwDefaults: d.exprs(n, "kw_defaults"),
		Kwarg:      d.arg(n.get("kwarg")),
		Defaults:   d.exprs(n, "defaults"),
	}
	return args
}

func (d *decoder) args(n node, field string) []*ast.Arg {
	var args []*ast.Arg
	for _, v := range d.list(n, field) {
		if a := d.arg(v); a != nil {
			args = append(args, a)
		}
	}
	return args
}

// arg also accepts the bare names and Name nodes older grammars use for parameters.
func (d *decoder) arg(v any) *ast.Arg {
	if name, ok := v.(string); ok {
		return &ast.Arg{Arg: name}
	}
	n, ok := d.node(v)
	if !ok {
		return nil
	}
	switch n.kind {
	case "arg":
		return &ast.Arg{Range: n.rng(), Arg: n.str("arg"), Annotation: d.expr(n.get("annotation"))}
	case "Name":
		return &ast.Arg{Range: n.rng(), Arg: n.str("id")}
	}
	d.failf(n, "expected a parameter, found %s", n.kind)
	return nil
}
