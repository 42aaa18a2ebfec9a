package check

import (
	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/types"
)

// typeOf types e and its subexpressions under env, recording the types on the nodes.
func (c *Checker) typeOf(e ast.Expr, env Env) (types.Type, error) {
	t, err := c.exprType(e, env)
	if err != nil {
		return nil, err
	}
	e.SetStaticType(t)
	return t, nil
}

func (c *Checker) typeAll(es []ast.Expr, env Env) ([]types.Type, error) {
	ts := make([]types.Type, 0, len(es))
	for _, e := range es {
		if e == nil {
			continue
		}
		t, err := c.typeOf(e, env)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (c *Checker) exprType(e ast.Expr, env Env) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Name:
		return env.TypeOf(e.Id), nil

	case *ast.Num:
		if e.Kind == ast.IntNum {
			return types.Int(), nil
		}
		return types.Dyn{}, nil

	case *ast.Str:
		return types.Str(), nil

	case *ast.NameConstant:
		if e.Value == "None" {
			return types.Void(), nil
		}
		return types.Bool(), nil

	case *ast.Bytes, *ast.Ellipsis:
		return types.Dyn{}, nil

	case *ast.JoinedStr:
		_, err := c.typeAll(e.Values, env)
		return types.Dyn{}, err

	case *ast.FormattedValue:
		_, err := c.typeAll([]ast.Expr{e.Value, e.FormatSpec}, env)
		return types.Dyn{}, err

	case *ast.BoolOp:
		ts, err := c.typeAll(e.Values, env)
		if err != nil {
			return nil, err
		}
		return c.cons.Join(ts...), nil

	case *ast.BinOp:
		left, err := c.typeOf(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := c.typeOf(e.Right, env)
		if err != nil {
			return nil, err
		}
		result, ok := c.cons.ApplyBinop(e.Op, left, right)
		if !ok {
			return nil, ilerr.StaticTypef(e, ilerr.BadOperands,
				"Can't %s operands of type %s and %s", e.Op.Verb(), left, right)
		}
		return result, nil

	case *ast.UnaryOp:
		operand, err := c.typeOf(e.Operand, env)
		if err != nil {
			return nil, err
		}
		result, ok := c.cons.ApplyUnop(e.Op, operand)
		if !ok {
			return nil, ilerr.StaticTypef(e, ilerr.BadOperands,
				"Can't %s an operand of type %s", e.Op.Verb(), operand)
		}
		return result, nil

	case *ast.Compare:
		if _, err := c.typeOf(e.Left, env); err != nil {
			return nil, err
		}
		if _, err := c.typeAll(e.Comparators, env); err != nil {
			return nil, err
		}
		return types.Bool(), nil

	case *ast.IfExp:
		if err := c.checkTest(e.Test, env, testMismatch); err != nil {
			return nil, err
		}
		ts, err := c.typeAll([]ast.Expr{e.Body, e.OrElse}, env)
		if err != nil {
			return nil, err
		}
		return c.cons.Join(ts...), nil

	case *ast.Lambda:
		return c.lambdaType(e, env)

	case *ast.Call:
		return c.callType(e, env)

	case *ast.Attribute:
		base, err := c.typeOf(e.Value, env)
		if err != nil {
			return nil, err
		}
		switch base.(type) {
		case types.Dyn:
			return types.Dyn{}, nil
		case types.Bot:
			return types.Bot{}, nil
		}
		return nil, ilerr.StaticTypef(e, ilerr.NoAttribute,
			"Cannot get attributes from a value of type %s", base)

	case *ast.Subscript:
		base, err := c.typeOf(e.Value, env)
		if err != nil {
			return nil, err
		}
		return c.subscriptType(e, base, e.Slice, env)

	case *ast.Starred:
		t, err := c.typeOf(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !c.cons.Assignable(types.List{Elts: types.Dyn{}}, t) {
			return nil, ilerr.StaticTypef(e, ilerr.BadStarred,
				"Value of type %s cannot be unpacked with *", t)
		}
		return t, nil

	case *ast.List:
		ts, err := c.typeAll(e.Elts, env)
		if err != nil {
			return nil, err
		}
		return types.List{Elts: c.cons.Join(ts...)}, nil

	case *ast.Tuple:
		_, err := c.typeAll(e.Elts, env)
		return types.Dyn{}, err

	case *ast.Set:
		_, err := c.typeAll(e.Elts, env)
		return types.Dyn{}, err

	case *ast.Dict:
		if _, err := c.typeAll(e.Keys, env); err != nil {
			return nil, err
		}
		_, err := c.typeAll(e.Values, env)
		return types.Dyn{}, err

	case *ast.ListComp:
		scope, err := c.comprehensionScope(e.Generators, env)
		if err != nil {
			return nil, err
		}
		elt, err := c.typeOf(e.Elt, scope)
		if err != nil {
			return nil, err
		}
		return types.List{Elts: elt}, nil

	case *ast.SetComp:
		return c.comprehensionType(e.Generators, env, e.Elt)

	case *ast.GeneratorExp:
		return c.comprehensionType(e.Generators, env, e.Elt)

	case *ast.DictComp:
		return c.comprehensionType(e.Generators, env, e.Key, e.Value)

	case *ast.Await:
		_, err := c.typeOf(e.Value, env)
		return types.Dyn{}, err

	case *ast.Yield:
		if e.Value == nil {
			return types.Dyn{}, nil
		}
		_, err := c.typeOf(e.Value, env)
		return types.Dyn{}, err

	case *ast.YieldFrom:
		_, err := c.typeOf(e.Value, env)
		return types.Dyn{}, err
	}
	return nil, ilerr.Unimplementedf(e, "expression %s", ast.Kind(e))
}

// comprehensionType types the elements of a comprehension that produces a value of type Dyn.
func (c *Checker) comprehensionType(gens []*ast.Comprehension, env Env, elts ...ast.Expr) (types.Type, error) {
	scope, err := c.comprehensionScope(gens, env)
	if err != nil {
		return nil, err
	}
	_, err = c.typeAll(elts, scope)
	return types.Dyn{}, err
}

func (c *Checker) lambdaType(l *ast.Lambda, env Env) (types.Type, error) {
	if err := c.checkDefaults(l.Args, env); err != nil {
		return nil, err
	}
	params, err := c.paramTypes(l.Args)
	if err != nil {
		return nil, err
	}
	body, err := c.typeOf(l.Body, env.Merge(params))
	if err != nil {
		return nil, err
	}
	var from []types.Type
	if l.Args != nil {
		for _, arg := range l.Args.Args {
			from = append(from, arg.StaticType)
		}
	}
	return types.Function{From: types.Positional{Types: from}, To: body}, nil
}

func (c *Checker) callType(call *ast.Call, env Env) (types.Type, error) {
	callee, err := c.typeOf(call.Func, env)
	if err != nil {
		return nil, err
	}
	var shape types.CallShape
	for _, arg := range call.Args {
		t, err := c.typeOf(arg, env)
		if err != nil {
			return nil, err
		}
		if _, isStarred := arg.(*ast.Starred); isStarred {
			shape.Starargs = t
			continue
		}
		shape.Args = append(shape.Args, t)
	}
	for _, kw := range call.Keywords {
		t, err := c.typeOf(kw.Value, env)
		if err != nil {
			return nil, err
		}
		if kw.Arg == "" {
			shape.Kwargs = t
			continue
		}
		shape.Keywords = append(shape.Keywords, types.Keyword{Name: kw.Arg, Type: t})
	}
	result, err := c.cons.Apply(callee, shape)
	if err != nil {
		return nil, ilerr.StaticTypef(call, ilerr.BadCall, "%s", err.Error())
	}
	return result, nil
}

// subscriptType is the type of indexing or slicing a value of type base.
func (c *Checker) subscriptType(e *ast.Subscript, base types.Type, slice ast.Slice, env Env) (types.Type, error) {
	type bound struct {
		expr ast.Expr
		what string
	}
	checkBounds := func(bs ...bound) error {
		_, isList := types.Unalias(base).(types.List)
		for _, b := range bs {
			if b.expr == nil {
				continue
			}
			t, err := c.typeOf(b.expr, env)
			if err != nil {
				return err
			}
			if isList && !c.cons.Assignable(types.Int(), t) {
				return ilerr.StaticTypef(b.expr, ilerr.NotIndexable,
					"Cannot index into a List with %s of type %s; value of type int required", b.what, t)
			}
		}
		return nil
	}

	switch s := slice.(type) {
	case *ast.Index:
		if err := checkBounds(bound{s.Value, "a value"}); err != nil {
			return nil, err
		}
		switch b := types.Unalias(base).(type) {
		case types.List:
			return b.Elts, nil
		case types.Dyn, types.Bot:
			return b, nil
		}
	case *ast.SliceRange:
		err := checkBounds(bound{s.Lower, "a lower bound"}, bound{s.Upper, "an upper bound"}, bound{s.Step, "a step"})
		if err != nil {
			return nil, err
		}
		switch b := types.Unalias(base).(type) {
		case types.List, types.Dyn, types.Bot:
			return b, nil
		}
	case *ast.ExtSlice:
		for _, dim := range s.Dims {
			if _, err := c.subscriptType(e, types.Dyn{}, dim, env); err != nil {
				return nil, err
			}
		}
		return types.Dyn{}, nil
	}
	return nil, ilerr.StaticTypef(e, ilerr.NotIndexable, "Cannot index into a value of type %s", base)
}
