// Package typeparser turns annotation expressions into static types.
package typeparser

import (
	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/op"
	"github.com/cottand/gradual/frontend/types"
)

// Parser resolves annotations against the builtin type names and the
// classes known to the checked unit.
type Parser struct {
	classes map[string]types.Type
}

// New returns a Parser. classes maps names to the class (or alias) types they denote.
func New(classes map[string]types.Type) *Parser {
	return &Parser{classes: classes}
}

// Parse returns the type denoted by annotation. A missing annotation is Dyn.
func (p *Parser) Parse(annotation ast.Expr) (types.Type, error) {
	if annotation == nil {
		return types.Dyn{}, nil
	}
	switch a := annotation.(type) {
	case *ast.NameConstant:
		if a.Value == "None" {
			return types.Void(), nil
		}
	case *ast.Name:
		return p.named(a, a.Id)
	case *ast.Attribute:
		return p.named(a, a.Attr)
	case *ast.Str:
		// forward reference
		return p.named(a, a.Value)
	case *ast.BinOp:
		if a.Op == op.BitOr {
			return p.union(a, []ast.Expr{a.Left, a.Right})
		}
	case *ast.Subscript:
		return p.generic(a)
	}
	return nil, unknown(annotation)
}

func unknown(annotation ast.Expr) error {
	return ilerr.StaticTypef(annotation, ilerr.UnknownAnnotation,
		"%s is not a valid type annotation", ast.ExprString(annotation))
}

func (p *Parser) named(node ast.Expr, name string) (types.Type, error) {
	switch name {
	case "int":
		return types.Int(), nil
	case "float":
		return types.Float(), nil
	case "bool":
		return types.Bool(), nil
	case "str":
		return types.Str(), nil
	case "None":
		return types.Void(), nil
	case "Any", "Dyn", "object":
		return types.Dyn{}, nil
	case "list", "List":
		return types.List{Elts: types.Dyn{}}, nil
	case "set", "Set":
		return types.Set{Elts: types.Dyn{}}, nil
	case "dict", "Dict":
		return types.Dict{Keys: types.Dyn{}, Values: types.Dyn{}}, nil
	case "tuple", "Tuple":
		return types.HTuple{Elts: types.Dyn{}}, nil
	case "Callable":
		return types.Function{From: types.Arbitrary{}, To: types.Dyn{}}, nil
	}
	if cls, ok := p.classes[name]; ok {
		if c, isClass := types.Unalias(cls).(*types.Class); isClass {
			return types.Instance{Class: c}, nil
		}
		return cls, nil
	}
	return nil, unknown(node)
}

func baseName(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Name:
		return e.Id
	case *ast.Attribute:
		return e.Attr
	}
	return ""
}

// subscriptArgs lists the comma-separated arguments of a generic.
func subscriptArgs(s *ast.Subscript) ([]ast.Expr, bool) {
	index, ok := s.Slice.(*ast.Index)
	if !ok {
		return nil, false
	}
	if tuple, ok := index.Value.(*ast.Tuple); ok {
		return tuple.Elts, true
	}
	return []ast.Expr{index.Value}, true
}

func (p *Parser) generic(s *ast.Subscript) (types.Type, error) {
	args, ok := subscriptArgs(s)
	if !ok {
		return nil, unknown(s)
	}
	switch baseName(s.Value) {
	case "List", "list":
		if len(args) != 1 {
			return nil, unknown(s)
		}
		elt, err := p.Parse(args[0])
		if err != nil {
			return nil, err
		}
		return types.List{Elts: elt}, nil
	case "Set", "set":
		if len(args) != 1 {
			return nil, unknown(s)
		}
		elt, err := p.Parse(args[0])
		if err != nil {
			return nil, err
		}
		return types.Set{Elts: elt}, nil
	case "Dict", "dict":
		if len(args) != 2 {
			return nil, unknown(s)
		}
		ts, err := p.parseAll(args)
		if err != nil {
			return nil, err
		}
		return types.Dict{Keys: ts[0], Values: ts[1]}, nil
	case "Tuple", "tuple":
		if len(args) == 2 {
			if _, ok := args[1].(*ast.Ellipsis); ok {
				elt, err := p.Parse(args[0])
				if err != nil {
					return nil, err
				}
				return types.HTuple{Elts: elt}, nil
			}
		}
		ts, err := p.parseAll(args)
		if err != nil {
			return nil, err
		}
		return types.Tuple{Elts: ts}, nil
	case "Union":
		return p.union(s, args)
	case "Optional":
		if len(args) != 1 {
			return nil, unknown(s)
		}
		return p.union(s, []ast.Expr{args[0], &ast.NameConstant{Value: "None"}})
	case "Callable":
		return p.callable(s, args)
	}
	return nil, unknown(s)
}

func (p *Parser) parseAll(es []ast.Expr) ([]types.Type, error) {
	ts := make([]types.Type, len(es))
	for i, e := range es {
		t, err := p.Parse(e)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

// union keeps every alternative the annotation names, even those another one subsumes.
func (p *Parser) union(node ast.Expr, alts []ast.Expr) (types.Type, error) {
	if len(alts) == 0 {
		return nil, unknown(node)
	}
	ts, err := p.parseAll(alts)
	if err != nil {
		return nil, err
	}
	return types.NewUnion(ts...), nil
}

// callable handles Callable[[A, B], R] and Callable[..., R].
func (p *Parser) callable(s *ast.Subscript, args []ast.Expr) (types.Type, error) {
	if len(args) != 2 {
		return nil, unknown(s)
	}
	to, err := p.Parse(args[1])
	if err != nil {
		return nil, err
	}
	switch params := args[0].(type) {
	case *ast.Ellipsis:
		return types.Function{From: types.Arbitrary{}, To: to}, nil
	case *ast.List:
		from, err := p.parseAll(params.Elts)
		if err != nil {
			return nil, err
		}
		return types.Function{From: types.Positional{Types: from}, To: to}, nil
	}
	return nil, unknown(s)
}
