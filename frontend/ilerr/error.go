// Package ilerr defines the errors reported while checking a compilation unit.
package ilerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/gradual/frontend/ast"
)

// PrintStacks makes errors include the frame that raised them when printed
var PrintStacks = false

const printFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	Decode
	Internal
	Unimplemented

	// static type errors
	BadAssignment
	BadCall
	BadTest
	NotIterable
	Undeletable
	NotIndexable
	NotDestructurable
	BadOperands
	BadReturn
	InconsistentBinding
	NoAttribute
	UnresolvedInference
	BadStarred
	BadDefault
	BadHandler
	BadWith
	UnknownAnnotation
)

// IsStatic reports whether c is the code of a static type error.
func (c ErrCode) IsStatic() bool { return c >= BadAssignment }

// CheckError is an error located in the checked source.
type CheckError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) CheckError
	getStack() []byte
}

func FormatWithCode(e CheckError) string {
	if PrintStacks && e.getStack() != nil {
		stack := string(e.getStack())
		if !printFullStacktrace {
			if lines := strings.Split(stack, "\n"); len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// New records the stack of the caller on err.
func New[E CheckError](err E) CheckError {
	return err.withStack(debug.Stack())
}

// nodePos locates errors at a node that may be missing.
type nodePos struct {
	Node ast.Node
}

func (p nodePos) Pos() ast.Position {
	if p.Node == nil {
		return ast.Position{}
	}
	return p.Node.Pos()
}

func (p nodePos) End() ast.Position {
	if p.Node == nil {
		return ast.Position{}
	}
	return p.Node.End()
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewDecode is a syntax tree that could not be read.
type NewDecode struct {
	ast.Positioner
	Path  string
	From  error
	stack []byte
}

func (e NewDecode) Error() string {
	return fmt.Sprintf("cannot read syntax tree %s: %v", e.Path, e.From)
}
func (e NewDecode) Unwrap() error    { return e.From }
func (e NewDecode) Code() ErrCode    { return Decode }
func (e NewDecode) getStack() []byte { return e.stack }
func (e NewDecode) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewStaticType is a violation of the typing rules of a construct.
type NewStaticType struct {
	nodePos
	Kind  ErrCode
	Msg   string
	stack []byte
}

// StaticTypef builds a static type error located at node.
func StaticTypef(node ast.Node, kind ErrCode, format string, args ...any) CheckError {
	return New(NewStaticType{nodePos: nodePos{node}, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (e NewStaticType) Error() string    { return e.Msg }
func (e NewStaticType) Code() ErrCode    { return e.Kind }
func (e NewStaticType) getStack() []byte { return e.stack }
func (e NewStaticType) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewUnimplemented is a construct the checker does not model.
type NewUnimplemented struct {
	nodePos
	Construct string
	stack     []byte
}

func (e NewUnimplemented) Error() string {
	return fmt.Sprintf("%s is not supported by the type checker", e.Construct)
}
func (e NewUnimplemented) Code() ErrCode    { return Unimplemented }
func (e NewUnimplemented) getStack() []byte { return e.stack }
func (e NewUnimplemented) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewInternal is a broken invariant of the checker itself.
type NewInternal struct {
	nodePos
	Msg   string
	stack []byte
}

func (e NewInternal) Error() string {
	return "internal error: " + e.Msg
}
func (e NewInternal) Code() ErrCode    { return Internal }
func (e NewInternal) getStack() []byte { return e.stack }
func (e NewInternal) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// Unimplementedf and Internalf build the corresponding errors located at node.
func Unimplementedf(node ast.Node, format string, args ...any) CheckError {
	return New(NewUnimplemented{nodePos: nodePos{node}, Construct: fmt.Sprintf(format, args...)})
}

func Internalf(node ast.Node, format string, args ...any) CheckError {
	return New(NewInternal{nodePos: nodePos{node}, Msg: fmt.Sprintf(format, args...)})
}
