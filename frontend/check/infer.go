package check

import (
	"slices"
	"strings"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/types"
	"github.com/cottand/gradual/util"
	"github.com/hashicorp/go-set/v3"
)

// decompAssign pairs each sub-target of target with the type it receives when
// a value of type t is assigned to it.
func decompAssign(target ast.Expr, t types.Type) ([]util.Pair[ast.Expr, types.Type], error) {
	switch tt := target.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
		return []util.Pair[ast.Expr, types.Type]{util.NewPair(target, t)}, nil
	case *ast.Starred:
		return decompAssign(tt.Value, types.List{Elts: t})
	case *ast.Tuple:
		return decompElts(target, tt.Elts, t)
	case *ast.List:
		return decompElts(target, tt.Elts, t)
	}
	return nil, ilerr.Internalf(target, "%s is not a valid assignment target", ast.Kind(target))
}

func decompElts(target ast.Expr, elts []ast.Expr, t types.Type) ([]util.Pair[ast.Expr, types.Type], error) {
	var elt types.Type
	switch source := types.Unalias(t).(type) {
	case types.List:
		elt = source.Elts
	case types.Dyn:
		elt = types.Dyn{}
	case types.Bot:
		elt = types.Bot{}
	default:
		return nil, ilerr.StaticTypef(target, ilerr.NotDestructurable,
			"Value of type %s can not be destructured for assignment", t)
	}
	var pairs []util.Pair[ast.Expr, types.Type]
	for _, sub := range elts {
		subPairs, err := decompAssign(sub, elt)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, subPairs...)
	}
	return pairs, nil
}

// siteType is the type an assignment site gives its target under env.
func (c *Checker) siteType(site assignment, env Env) (types.Type, error) {
	switch site.kind {
	case assignDyn:
		return types.Dyn{}, nil
	case assignIter:
		iter, err := c.typeOf(site.value, env)
		if err != nil {
			return nil, err
		}
		elt, ok := c.cons.IterableType(iter)
		if !ok {
			return nil, ilerr.StaticTypef(site.value, ilerr.NotIterable,
				"Iteration expression has type %s, which is not iterable", iter)
		}
		return elt, nil
	case assignAug:
		left, err := c.typeOf(site.target, env)
		if err != nil {
			return nil, err
		}
		right, err := c.typeOf(site.value, env)
		if err != nil {
			return nil, err
		}
		result, ok := c.cons.ApplyBinop(site.op, left, right)
		if !ok {
			return nil, ilerr.StaticTypef(site.node, ilerr.BadOperands,
				"Can't %s operands of type %s and %s", site.op.Verb(), left, right)
		}
		return result, nil
	}
	return c.typeOf(site.value, env)
}

// inferTypes gives a type to every variable assigned in body that is not in
// fixed, by iterating over the assignments of body and joining the type of
// each into its targets until none of them is Bot any more. Assigned
// expressions are typed under outer, extended with fixed and the
// approximation of the previous pass.
//
// A pass that leaves some target Bot without changing anything, or running
// out of passes, is an UnresolvedInference error.
//
// The result holds the bindings of fixed and the inferred ones. owner names
// the scope in errors.
func (c *Checker) inferTypes(outer, fixed Env, body []ast.Stmt, owner string, node ast.Node) (Env, error) {
	sites := assignments(body)
	targets := inferenceTargets(sites, fixed, nonLocalNames(body))
	if targets.Size() == 0 {
		return fixed, nil
	}
	names := targets.Slice()

	current := fixed
	for _, name := range names {
		current = current.With(name, types.Bot{})
	}
	for iteration := 1; ; iteration++ {
		env := outer.Merge(current)
		next := current
		for _, site := range sites {
			t, err := c.siteType(site, env)
			if err != nil {
				return Env{}, err
			}
			pairs, err := decompAssign(site.target, t)
			if err != nil {
				return Env{}, err
			}
			for _, pair := range pairs {
				sub, t := pair.Unpack()
				name, ok := sub.(*ast.Name)
				if !ok || !targets.Contains(name.Id) {
					continue
				}
				next = next.With(name.Id, c.cons.Join(t, next.TypeOf(name.Id)))
			}
		}

		changed := false
		unresolved := set.New[string](0)
		for _, name := range names {
			t := next.TypeOf(name)
			if !t.Equal(current.TypeOf(name)) {
				changed = true
			}
			if _, isBot := t.(types.Bot); isBot {
				unresolved.Insert(name)
			}
		}
		inferLogger.Debug("inference pass", "scope", owner, "iteration", iteration,
			"unresolved", unresolved.Size(), "env", next.String())
		current = next

		switch {
		case unresolved.Empty():
			return current, nil
		case !changed:
			// nothing left to learn from another pass
			return Env{}, unresolvedError(node, owner, unresolved)
		case iteration >= c.settings.maxIterations():
			return Env{}, unresolvedError(node, owner, unresolved)
		}
	}
}

func unresolvedError(node ast.Node, owner string, names *set.Set[string]) error {
	sorted := names.Slice()
	slices.Sort(sorted)
	return ilerr.StaticTypef(node, ilerr.UnresolvedInference,
		"Could not infer the types of %s %s", strings.Join(sorted, ", "), owner)
}

// paramTypes types the parameters of a function or lambda and records the
// types on the nodes.
func (c *Checker) paramTypes(args *ast.Arguments) (Env, error) {
	var params Env
	if args == nil {
		return params, nil
	}
	for _, arg := range append(append([]*ast.Arg(nil), args.Args...), args.KwOnlyArgs...) {
		t, err := c.annotations.Parse(arg.Annotation)
		if err != nil {
			return Env{}, err
		}
		arg.StaticType = t
		params = params.With(arg.Arg, t)
	}
	if args.Vararg != nil {
		t, err := c.annotations.Parse(args.Vararg.Annotation)
		if err != nil {
			return Env{}, err
		}
		args.Vararg.StaticType = types.List{Elts: t}
		params = params.With(args.Vararg.Arg, args.Vararg.StaticType)
	}
	if args.Kwarg != nil {
		t, err := c.annotations.Parse(args.Kwarg.Annotation)
		if err != nil {
			return Env{}, err
		}
		args.Kwarg.StaticType = types.Dict{Keys: types.Str(), Values: t}
		params = params.With(args.Kwarg.Arg, args.Kwarg.StaticType)
	}
	return params, nil
}

// functionScope is the environment the body of fd is checked in.
func (c *Checker) functionScope(fd *ast.FunctionDef, outer Env) (Env, error) {
	params, err := c.paramTypes(fd.Args)
	if err != nil {
		return Env{}, err
	}
	owner := "in the scope of " + fd.Name
	local, err := c.declarations(fd.Body, owner)
	if err != nil {
		return Env{}, err
	}
	for _, name := range local.Names() {
		if param, ok := params.Lookup(name); ok && !param.Equal(local.TypeOf(name)) {
			return Env{}, ilerr.StaticTypef(fd, ilerr.InconsistentBinding,
				"Variable %s is bound both as an argument and by a definition in %s with differing types: %s and %s",
				name, fd.Name, param, local.TypeOf(name))
		}
	}
	inferred, err := c.inferTypes(outer, local.Merge(params), fd.Body, owner, fd)
	if err != nil {
		return Env{}, err
	}
	return outer.Merge(inferred), nil
}

// functionType is the type fd binds its name to in the enclosing scope.
func (c *Checker) functionType(fd *ast.FunctionDef) (types.Type, error) {
	if len(fd.DecoratorList) > 0 {
		return types.Dyn{}, nil
	}
	ret, err := c.annotations.Parse(fd.Returns)
	if err != nil {
		return nil, err
	}
	if fd.Args == nil {
		return types.Function{From: types.Named{}, To: ret}, nil
	}
	bindings := make([]types.Binding, 0, len(fd.Args.Args))
	for _, arg := range fd.Args.Args {
		t, err := c.annotations.Parse(arg.Annotation)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, types.Binding{Name: arg.Arg, Type: t})
	}
	a := fd.Args
	if len(a.Defaults) > 0 || a.Vararg != nil || len(a.KwOnlyArgs) > 0 || a.Kwarg != nil {
		return types.Function{From: types.ApproxNamed{Bindings: bindings}, To: ret}, nil
	}
	return types.Function{From: types.Named{Bindings: bindings}, To: ret}, nil
}

// comprehensionScope binds the targets of gens on top of env, typing the
// iterated expressions and conditions on the way.
func (c *Checker) comprehensionScope(gens []*ast.Comprehension, env Env) (Env, error) {
	for _, gen := range gens {
		iter, err := c.typeOf(gen.Iter, env)
		if err != nil {
			return Env{}, err
		}
		elt, ok := c.cons.IterableType(iter)
		if !ok {
			return Env{}, ilerr.StaticTypef(gen.Iter, ilerr.NotIterable,
				"Iteration expression has type %s, which is not iterable", iter)
		}
		pairs, err := decompAssign(gen.Target, elt)
		if err != nil {
			return Env{}, err
		}
		for _, pair := range pairs {
			sub, t := pair.Unpack()
			name, ok := sub.(*ast.Name)
			if !ok {
				return Env{}, ilerr.Unimplementedf(sub, "comprehension target %s", ast.ExprString(sub))
			}
			name.SetStaticType(t)
			env = env.With(name.Id, t)
		}
		if gen.Target.StaticType() == nil {
			gen.Target.SetStaticType(elt)
		}
		for _, cond := range gen.Ifs {
			if _, err := c.typeOf(cond, env); err != nil {
				return Env{}, err
			}
		}
	}
	return env, nil
}
