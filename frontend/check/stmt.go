package check

import (
	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/types"
)

// frame is the context a statement is checked in.
type frame struct {
	env Env
	// returns is the declared result of the enclosing function, nil at the top level
	returns types.Type
	name    string
}

func (c *Checker) checkStmts(body []ast.Stmt, f frame) error {
	for _, stmt := range body {
		if err := c.checkStmt(stmt, f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(stmt ast.Stmt, f frame) error {
	logger.Debug("checking statement", "stmt", stmt)
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return c.checkFunctionDef(s, f)

	case *ast.ClassDef:
		return ilerr.Unimplementedf(s, "class definition %s", s.Name)

	case *ast.Return:
		if f.returns == nil {
			return ilerr.Internalf(s, "return outside of a function")
		}
		var t types.Type = types.Void()
		if s.Value != nil {
			var err error
			if t, err = c.typeOf(s.Value, f.env); err != nil {
				return err
			}
		}
		if !c.cons.Assignable(f.returns, t) {
			return ilerr.StaticTypef(s, ilerr.BadReturn,
				"Value of type %s is returned from %s, which is declared to return %s", t, f.name, f.returns)
		}
		return nil

	case *ast.Delete:
		for _, target := range s.Targets {
			t, err := c.typeOf(target, f.env)
			if err != nil {
				return err
			}
			if _, isDyn := t.(types.Dyn); !isDyn {
				return ilerr.StaticTypef(target, ilerr.Undeletable, "Statically typed values cannot be deleted")
			}
		}
		return nil

	case *ast.Assign:
		value, err := c.typeOf(s.Value, f.env)
		if err != nil {
			return err
		}
		for _, target := range s.Targets {
			if err := c.checkTarget(target, value, f.env, ilerr.BadAssignment, assignmentMismatch); err != nil {
				return err
			}
		}
		return nil

	case *ast.AugAssign:
		target, err := c.typeOf(s.Target, f.env)
		if err != nil {
			return err
		}
		value, err := c.typeOf(s.Value, f.env)
		if err != nil {
			return err
		}
		result, ok := c.cons.ApplyBinop(s.Op, target, value)
		if !ok {
			return ilerr.StaticTypef(s, ilerr.BadOperands,
				"Can't %s operands of type %s and %s", s.Op.Verb(), target, value)
		}
		if !c.cons.Assignable(target, result) {
			return ilerr.StaticTypef(s, ilerr.BadAssignment,
				"Value of type %s cannot be %s into a target which has type %s", result, s.Op.PastTense(), target)
		}
		return nil

	case *ast.AnnAssign:
		return c.checkAnnAssign(s, f)

	case *ast.For:
		return c.checkFor(s, f)

	case *ast.While:
		if err := c.checkTest(s.Test, f.env, testMismatch); err != nil {
			return err
		}
		if err := c.checkStmts(s.Body, f); err != nil {
			return err
		}
		return c.checkStmts(s.OrElse, f)

	case *ast.If:
		if err := c.checkTest(s.Test, f.env, testMismatch); err != nil {
			return err
		}
		if err := c.checkStmts(s.Body, f); err != nil {
			return err
		}
		return c.checkStmts(s.OrElse, f)

	case *ast.With:
		for _, item := range s.Items {
			ctx, err := c.typeOf(item.ContextExpr, f.env)
			if err != nil {
				return err
			}
			if item.OptionalVars == nil {
				continue
			}
			if err := c.checkTarget(item.OptionalVars, ctx, f.env, ilerr.BadWith, withMismatch); err != nil {
				return err
			}
		}
		return c.checkStmts(s.Body, f)

	case *ast.Raise:
		for _, e := range []ast.Expr{s.Exc, s.Cause} {
			if e == nil {
				continue
			}
			if _, err := c.typeOf(e, f.env); err != nil {
				return err
			}
		}
		return nil

	case *ast.Try:
		if err := c.checkStmts(s.Body, f); err != nil {
			return err
		}
		for _, handler := range s.Handlers {
			if err := c.checkHandler(handler, f); err != nil {
				return err
			}
		}
		if err := c.checkStmts(s.OrElse, f); err != nil {
			return err
		}
		return c.checkStmts(s.FinalBody, f)

	case *ast.Assert:
		if err := c.checkTest(s.Test, f.env, assertMismatch); err != nil {
			return err
		}
		if s.Msg != nil {
			_, err := c.typeOf(s.Msg, f.env)
			return err
		}
		return nil

	case *ast.ExprStmt:
		_, err := c.typeOf(s.Value, f.env)
		return err

	case *ast.Import, *ast.ImportFrom, *ast.Global, *ast.Nonlocal, *ast.Pass, *ast.Break, *ast.Continue:
		return nil
	}
	return ilerr.Unimplementedf(stmt, "statement %s", ast.Kind(stmt))
}

const (
	assignmentMismatch = "Value of type %[1]s cannot be assigned to target %[2]s, which has type %[3]s"
	withMismatch       = "With expression has type %[1]s, but the bound variable(s) have the expected type %[3]s"
	testMismatch       = "Test expression has type %s but was expected to have type bool"
	assertMismatch     = "Asserted expression has type %s but was expected to have type bool"
)

// checkTarget checks that a value of type value may be assigned to target,
// by checking every sub-target target destructures into.
func (c *Checker) checkTarget(target ast.Expr, value types.Type, env Env, code ilerr.ErrCode, mismatch string) error {
	if _, err := c.typeOf(target, env); err != nil {
		return err
	}
	pairs, err := decompAssign(target, value)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		sub, t := pair.Unpack()
		if sub.StaticType() == nil {
			if _, err := c.typeOf(sub, env); err != nil {
				return err
			}
		}
		if !c.cons.Assignable(sub.StaticType(), t) {
			return ilerr.StaticTypef(sub, code, mismatch, t, ast.ExprString(sub), sub.StaticType())
		}
	}
	return nil
}

func (c *Checker) checkTest(test ast.Expr, env Env, mismatch string) error {
	t, err := c.typeOf(test, env)
	if err != nil {
		return err
	}
	if !c.cons.Assignable(types.Bool(), t) {
		return ilerr.StaticTypef(test, ilerr.BadTest, mismatch, t)
	}
	return nil
}

func (c *Checker) checkAnnAssign(s *ast.AnnAssign, f frame) error {
	declared, err := c.annotations.Parse(s.Annotation)
	if err != nil {
		return err
	}
	if name, isName := s.Target.(*ast.Name); isName && s.Simple {
		declared = f.env.TypeOf(name.Id)
		name.SetStaticType(declared)
	} else if _, err := c.typeOf(s.Target, f.env); err != nil {
		return err
	}
	if s.Value == nil {
		return nil
	}
	value, err := c.typeOf(s.Value, f.env)
	if err != nil {
		return err
	}
	if !c.cons.Assignable(declared, value) {
		return ilerr.StaticTypef(s, ilerr.BadAssignment, assignmentMismatch, value, ast.ExprString(s.Target), declared)
	}
	return nil
}

func (c *Checker) checkFor(s *ast.For, f frame) error {
	iter, err := c.typeOf(s.Iter, f.env)
	if err != nil {
		return err
	}
	elt, ok := c.cons.IterableType(iter)
	if !ok {
		return ilerr.StaticTypef(s.Iter, ilerr.NotIterable,
			"Iteration expression has type %s, which is not iterable", iter)
	}
	if name, isName := s.Target.(*ast.Name); isName {
		target, err := c.typeOf(name, f.env)
		if err != nil {
			return err
		}
		if !c.cons.MemberAssignable(target, iter) {
			return ilerr.StaticTypef(s, ilerr.BadAssignment,
				"Iteration expression has type %s, but the iteration variable(s) have the expected type %s", iter, target)
		}
	} else if err := c.checkTarget(s.Target, elt, f.env, ilerr.BadAssignment, assignmentMismatch); err != nil {
		return err
	}
	if err := c.checkStmts(s.Body, f); err != nil {
		return err
	}
	return c.checkStmts(s.OrElse, f)
}

func (c *Checker) checkHandler(h *ast.ExceptHandler, f frame) error {
	var exc types.Type = types.Dyn{}
	if h.Type != nil {
		var err error
		if exc, err = c.typeOf(h.Type, f.env); err != nil {
			return err
		}
	}
	env := f.env
	if h.Name != "" {
		bound := f.env.TypeOf(h.Name)
		if !c.cons.InstanceAssignable(bound, exc) {
			return ilerr.StaticTypef(h, ilerr.BadHandler,
				"Instances of %s cannot be assigned to variable %s, which has type %s", exc, h.Name, bound)
		}
		h.StaticType = bound
		env = env.With(h.Name, bound)
	}
	return c.checkStmts(h.Body, frame{env: env, returns: f.returns, name: f.name})
}

// checkFunctionDef checks the defaults and decorators of s in the enclosing
// scope and its body in its own.
func (c *Checker) checkFunctionDef(s *ast.FunctionDef, f frame) error {
	if err := c.checkDefaults(s.Args, f.env); err != nil {
		return err
	}
	for _, decorator := range s.DecoratorList {
		if _, err := c.typeOf(decorator, f.env); err != nil {
			return err
		}
	}
	env, err := c.functionScope(s, f.env)
	if err != nil {
		return err
	}
	returns, err := c.annotations.Parse(s.Returns)
	if err != nil {
		return err
	}
	s.StaticReturnType = returns
	logger.Debug("checking function", "name", s.Name, "scope", env.String())
	return c.checkStmts(s.Body, frame{env: env, returns: returns, name: s.Name})
}

// checkDefaults checks that the default value of each parameter of args fits
// its annotation.
func (c *Checker) checkDefaults(args *ast.Arguments, env Env) error {
	if args == nil {
		return nil
	}
	check := func(param *ast.Arg, def ast.Expr) error {
		t, err := c.typeOf(def, env)
		if err != nil {
			return err
		}
		annotated, err := c.annotations.Parse(param.Annotation)
		if err != nil {
			return err
		}
		if !c.cons.Assignable(annotated, t) {
			return ilerr.StaticTypef(def, ilerr.BadDefault,
				"Default value of type %s is incompatible with the type %s of parameter %s", t, annotated, param.Arg)
		}
		return nil
	}
	offset := len(args.Args) - len(args.Defaults)
	for i, def := range args.Defaults {
		if offset+i < 0 {
			return ilerr.Internalf(def, "more defaults than parameters")
		}
		if err := check(args.Args[offset+i], def); err != nil {
			return err
		}
	}
	for i, def := range args.KwDefaults {
		if def == nil || i >= len(args.KwOnlyArgs) {
			continue
		}
		if err := check(args.KwOnlyArgs[i], def); err != nil {
			return err
		}
	}
	return nil
}
