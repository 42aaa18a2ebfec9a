package ast

import (
	"github.com/cottand/gradual/frontend/op"
	"github.com/cottand/gradual/frontend/types"
)

type FunctionDef struct {
	Range
	Name          string
	Args          *Arguments
	Body          []Stmt
	DecoratorList []Expr
	Returns       Expr
	IsAsync       bool
	// StaticReturnType is set by the checker.
	StaticReturnType types.Type
}

type ClassDef struct {
	Range
	Name          string
	Bases         []Expr
	Keywords      []*Keyword
	Body          []Stmt
	DecoratorList []Expr
}

// Return has a nil Value for a bare return.
type Return struct {
	Range
	Value Expr
}

type Delete struct {
	Range
	Targets []Expr
}

// Assign is `Targets[0] = Targets[1] = ... = Value`.
type Assign struct {
	Range
	Targets []Expr
	Value   Expr
}

type AugAssign struct {
	Range
	Target Expr
	Op     op.Op
	Value  Expr
}

// AnnAssign is `Target: Annotation = Value`, with an optional Value.
// Simple is set when Target is a plain name not in parentheses.
type AnnAssign struct {
	Range
	Target     Expr
	Annotation Expr
	Value      Expr
	Simple     bool
}

type For struct {
	Range
	Target  Expr
	Iter    Expr
	Body    []Stmt
	OrElse  []Stmt
	IsAsync bool
}

type While struct {
	Range
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

type If struct {
	Range
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

type With struct {
	Range
	Items   []*WithItem
	Body    []Stmt
	IsAsync bool
}

type Raise struct {
	Range
	Exc   Expr
	Cause Expr
}

type Try struct {
	Range
	Body      []Stmt
	Handlers  []*ExceptHandler
	OrElse    []Stmt
	FinalBody []Stmt
}

type Assert struct {
	Range
	Test Expr
	Msg  Expr
}

type Import struct {
	Range
	Names []*Alias
}

type ImportFrom struct {
	Range
	Module string
	Names  []*Alias
	Level  int
}

type Global struct {
	Range
	Names []string
}

type Nonlocal struct {
	Range
	Names []string
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Range
	Value Expr
}

type Pass struct{ Range }

type Break struct{ Range }

type Continue struct{ Range }

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Delete) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*AnnAssign) stmtNode()   {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*If) stmtNode()          {}
func (*With) stmtNode()        {}
func (*Raise) stmtNode()       {}
func (*Try) stmtNode()         {}
func (*Assert) stmtNode()      {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Global) stmtNode()      {}
func (*Nonlocal) stmtNode()    {}
func (*ExprStmt) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
