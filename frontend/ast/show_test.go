package ast

import (
	"testing"

	"github.com/cottand/gradual/frontend/op"
	"github.com/stretchr/testify/assert"
)

func name(id string) *Name { return &Name{Id: id} }
func num(v string) *Num    { return &Num{Value: v} }

func TestExprString(t *testing.T) {
	cases := map[string]Expr{
		"x + 1": &BinOp{Left: name("x"), Op: op.Add, Right: num("1")},
		"(a + b) * c": &BinOp{
			Left:  &BinOp{Left: name("a"), Op: op.Add, Right: name("b")},
			Op:    op.Mult,
			Right: name("c"),
		},
		"a - (b - c)": &BinOp{
			Left:  name("a"),
			Op:    op.Sub,
			Right: &BinOp{Left: name("b"), Op: op.Sub, Right: name("c")},
		},
		"(a ** b) ** c": &BinOp{
			Left:  &BinOp{Left: name("a"), Op: op.Pow, Right: name("b")},
			Op:    op.Pow,
			Right: name("c"),
		},
		"not a and b": &BoolOp{Op: op.And, Values: []Expr{
			&UnaryOp{Op: op.Not, Operand: name("a")},
			name("b"),
		}},
		"-x":                      &UnaryOp{Op: op.USub, Operand: name("x")},
		"1 < x <= 3":              &Compare{Left: num("1"), Ops: []op.Op{op.Lt, op.LtE}, Comparators: []Expr{name("x"), num("3")}},
		"a is not None":           &Compare{Left: name("a"), Ops: []op.Op{op.IsNot}, Comparators: []Expr{&NameConstant{Value: "None"}}},
		"f(1, *xs, k=\"v\", **kw)": &Call{Func: name("f"), Args: []Expr{num("1"), &Starred{Value: name("xs")}}, Keywords: []*Keyword{{Arg: "k", Value: &Str{Value: "v"}}, {Value: name("kw")}}},
		"o.attr[0]":               &Subscript{Value: &Attribute{Value: name("o"), Attr: "attr"}, Slice: &Index{Value: num("0")}},
		"xs[1:]":                  &Subscript{Value: name("xs"), Slice: &SliceRange{Lower: num("1")}},
		"xs[::2]":                 &Subscript{Value: name("xs"), Slice: &SliceRange{Step: num("2")}},
		"Dict[str, int]":          &Subscript{Value: name("Dict"), Slice: &Index{Value: &Tuple{Elts: []Expr{name("str"), name("int")}}}},
		"(x,)":                    &Tuple{Elts: []Expr{name("x")}},
		"{1: a, **rest}":          &Dict{Keys: []Expr{num("1"), nil}, Values: []Expr{name("a"), name("rest")}},
		"[x * 2 for x, _ in ys if x]": &ListComp{
			Elt: &BinOp{Left: name("x"), Op: op.Mult, Right: num("2")},
			Generators: []*Comprehension{{
				Target: &Tuple{Elts: []Expr{name("x"), name("_")}},
				Iter:   name("ys"),
				Ifs:    []Expr{name("x")},
			}},
		},
		"lambda x, y=1: x if y else 0": &Lambda{
			Args: &Arguments{Args: []*Arg{{Arg: "x"}, {Arg: "y"}}, Defaults: []Expr{num("1")}},
			Body: &IfExp{Test: name("y"), Body: name("x"), OrElse: num("0")},
		},
		"lambda: ...": &Lambda{Args: &Arguments{}, Body: &Ellipsis{}},
	}
	for want, expr := range cases {
		t.Run(want, func(t *testing.T) {
			assert.Equal(t, want, ExprString(expr))
		})
	}
}

func TestArgumentsString(t *testing.T) {
	args := &Arguments{
		Args:       []*Arg{{Arg: "a", Annotation: name("int")}},
		Vararg:     &Arg{Arg: "rest"},
		KwOnlyArgs: []*Arg{{Arg: "k"}, {Arg: "j"}},
		KwDefaults: []Expr{nil, num("2")},
		Kwarg:      &Arg{Arg: "kw"},
	}
	assert.Equal(t, "a: int, *rest, k, j=2, **kw", argumentsString(args))

	args.Vararg = nil
	assert.Equal(t, "a: int, *, k, j=2, **kw", argumentsString(args))
}

func TestInspect(t *testing.T) {
	fn := &FunctionDef{
		Name: "f",
		Args: &Arguments{Args: []*Arg{{Arg: "x", Annotation: name("int")}}},
		Body: []Stmt{
			&Assign{Targets: []Expr{name("y")}, Value: name("x")},
			&Return{Value: name("y")},
		},
	}
	mod := &Module{Body: []Stmt{fn, &ExprStmt{Value: &Call{Func: name("f"), Args: []Expr{num("1")}}}}}

	var names []string
	Inspect(mod, func(n Node) bool {
		if n, ok := n.(*Name); ok {
			names = append(names, n.Id)
		}
		return true
	})
	assert.Equal(t, []string{"int", "y", "x", "y", "f"}, names)

	var kinds []string
	Inspect(mod, func(n Node) bool {
		kinds = append(kinds, Kind(n))
		_, isFunc := n.(*FunctionDef)
		return !isFunc
	})
	assert.Equal(t, []string{"Module", "FunctionDef", "ExprStmt", "Call", "Name", "Num"}, kinds)
}

func TestRange(t *testing.T) {
	assert.Equal(t, "3:4", At(3, 4).String())
	assert.Equal(t, "1:0-2:5", Range{Position{1, 0}, Position{2, 5}}.String())
	assert.Equal(t, "-", Range{}.String())
	assert.Equal(t, At(3, 4), RangeOf(&Name{Range: At(3, 4)}))
}
