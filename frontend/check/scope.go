package check

import (
	"iter"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/op"
	"github.com/cottand/gradual/frontend/types"
	"github.com/cottand/gradual/util"
	"github.com/hashicorp/go-set/v3"
)

// forEachStmt calls f on every statement executed in the scope of body,
// including those nested in compound statements, but not the bodies of
// nested functions and classes, which are scopes of their own.
func forEachStmt(body []ast.Stmt, f func(ast.Stmt)) {
	for _, stmt := range body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FunctionDef, *ast.ClassDef:
				f(n.(ast.Stmt))
				return false
			case ast.Stmt:
				f(n)
				return true
			case ast.Expr:
				return false
			}
			return true
		})
	}
}

// declarations finds the names of a scope with a fixed type: annotated
// variables, functions and classes. owner names the scope in errors.
func (c *Checker) declarations(body []ast.Stmt, owner string) (Env, error) {
	var decls Env
	var err error
	forEachStmt(body, func(stmt ast.Stmt) {
		if err != nil {
			return
		}
		var (
			name string
			t    types.Type
		)
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			name = s.Name
			t, err = c.functionType(s)
		case *ast.ClassDef:
			name, t = s.Name, types.Dyn{}
		case *ast.AnnAssign:
			target, isName := s.Target.(*ast.Name)
			if !isName || !s.Simple {
				return
			}
			name = target.Id
			t, err = c.annotations.Parse(s.Annotation)
		default:
			return
		}
		if err != nil {
			return
		}
		if prev, ok := decls.Lookup(name); ok && !prev.Equal(t) {
			err = ilerr.StaticTypef(stmt, ilerr.InconsistentBinding,
				"Multiple bindings of %s occur %s with differing types: %s and %s", name, owner, prev, t)
			return
		}
		decls = decls.With(name, t)
	})
	return decls, err
}

// nonLocalNames are the names a scope declares global or nonlocal.
func nonLocalNames(body []ast.Stmt) *set.Set[string] {
	names := set.New[string](0)
	forEachStmt(body, func(stmt ast.Stmt) {
		switch s := stmt.(type) {
		case *ast.Global:
			names.InsertSlice(s.Names)
		case *ast.Nonlocal:
			names.InsertSlice(s.Names)
		}
	})
	return names
}

type assignKind int

const (
	// target = value
	assignValue assignKind = iota
	// for target in value
	assignIter
	// target op= value
	assignAug
	// target is bound to a value of unknown type, e.g. by an import
	assignDyn
)

// assignment is a site binding target in a scope.
type assignment struct {
	kind   assignKind
	target ast.Expr
	value  ast.Expr
	op     op.Op
	node   ast.Stmt
}

// assignments finds every binding of the scope of body whose type is inferred.
func assignments(body []ast.Stmt) []assignment {
	var found []assignment
	forEachStmt(body, func(stmt ast.Stmt) {
		switch s := stmt.(type) {
		case *ast.Assign:
			for _, target := range s.Targets {
				found = append(found, assignment{kind: assignValue, target: target, value: s.Value, node: s})
			}
		case *ast.AugAssign:
			if _, isName := s.Target.(*ast.Name); isName {
				found = append(found, assignment{kind: assignAug, target: s.Target, value: s.Value, op: s.Op, node: s})
			}
		case *ast.For:
			found = append(found, assignment{kind: assignIter, target: s.Target, value: s.Iter, node: s})
		case *ast.With:
			for _, item := range s.Items {
				if item.OptionalVars != nil {
					found = append(found, assignment{kind: assignValue, target: item.OptionalVars, value: item.ContextExpr, node: s})
				}
			}
		case *ast.Import:
			for _, alias := range s.Names {
				found = append(found, assignment{kind: assignDyn, target: &ast.Name{Range: alias.Range, Id: alias.Bound(), Ctx: ast.Store}, node: s})
			}
		case *ast.ImportFrom:
			for _, alias := range s.Names {
				if alias.Name != "*" {
					found = append(found, assignment{kind: assignDyn, target: &ast.Name{Range: alias.Range, Id: alias.Bound(), Ctx: ast.Store}, node: s})
				}
			}
		}
	})
	return found
}

// targetNames lists the variables bound by an assignment target.
func targetNames(target ast.Expr) []string {
	switch t := target.(type) {
	case *ast.Name:
		return []string{t.Id}
	case *ast.Tuple:
		var names []string
		for _, elt := range t.Elts {
			names = append(names, targetNames(elt)...)
		}
		return names
	case *ast.List:
		var names []string
		for _, elt := range t.Elts {
			names = append(names, targetNames(elt)...)
		}
		return names
	case *ast.Starred:
		return targetNames(t.Value)
	}
	return nil
}

func assignedNames(sites []assignment) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, site := range sites {
			for _, name := range targetNames(site.target) {
				if !yield(name) {
					return
				}
			}
		}
	}
}

// inferenceTargets are the names assigned in a scope that are neither
// fixed nor declared global or nonlocal.
func inferenceTargets(sites []assignment, fixed Env, nonLocal *set.Set[string]) *set.Set[string] {
	inferred := func(name string) bool {
		_, isFixed := fixed.Lookup(name)
		return !isFixed && !nonLocal.Contains(name)
	}
	return util.SetFromSeq(util.FilterIter(assignedNames(sites), inferred), len(sites))
}
