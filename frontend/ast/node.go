// Package ast declares the syntax tree of the checked scripting language, as
// handed over by its external parser.
//
// Checking decorates the tree in place: every Expr carries its static type,
// every Arg its parameter type and every FunctionDef its return type.
package ast

import (
	"github.com/cottand/gradual/frontend/types"
	"github.com/cottand/gradual/util"
)

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
}

// Expr is the interface for all expression nodes in the AST.
type Expr interface {
	Node
	// StaticType is nil until the expression has been checked.
	StaticType() types.Type
	SetStaticType(types.Type)
	exprNode() // Marker method to distinguish expressions
}

// Stmt is the interface for all statement nodes in the AST.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Slice is the interface for the subscript forms of Subscript.
type Slice interface {
	Node
	sliceNode()
}

// Typed holds the static type of an expression.
type Typed struct {
	Static types.Type
}

func (t *Typed) StaticType() types.Type       { return t.Static }
func (t *Typed) SetStaticType(typ types.Type) { t.Static = typ }

// ExprContext tells whether an expression is read, assigned or deleted.
type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

func (c ExprContext) String() string {
	switch c {
	case Store:
		return "Store"
	case Del:
		return "Del"
	}
	return "Load"
}

// Module is the root of a compilation unit.
type Module struct {
	Range
	Body []Stmt
}

// Arguments is the parameter list of a function or lambda.
// Defaults line up with the tail of Args; KwDefaults has one entry per
// KwOnlyArgs, nil where there is no default.
type Arguments struct {
	Range
	Args       []*Arg
	Vararg     *Arg
	KwOnlyArgs []*Arg
	KwDefaults []Expr
	Kwarg      *Arg
	Defaults   []Expr
}

// Arg is a single parameter.
type Arg struct {
	Range
	Arg        string
	Annotation Expr
	// StaticType is set by the checker.
	StaticType types.Type
}

// Keyword is a keyword argument of a call. Arg is empty for **kwargs.
type Keyword struct {
	Range
	Arg   string
	Value Expr
}

// Comprehension is a single for clause of a comprehension, with its if clauses.
type Comprehension struct {
	Range
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// WithItem is one context manager of a with statement.
type WithItem struct {
	Range
	ContextExpr  Expr
	OptionalVars Expr
}

// ExceptHandler is one except clause of a try statement.
type ExceptHandler struct {
	Range
	Type Expr
	Name string
	Body []Stmt
	// StaticType is the type the bound Name has in the handler, set by the checker.
	StaticType types.Type
}

// Alias is one name of an import statement.
type Alias struct {
	Range
	Name   string
	AsName string
}

// Bound is the name an import binds in the importing scope.
func (a *Alias) Bound() string {
	if a.AsName != "" {
		return a.AsName
	}
	pkg, _ := util.StringTakeUntil(a.Name, '.')
	return pkg
}
