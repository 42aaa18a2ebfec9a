package ast

import "github.com/cottand/gradual/frontend/op"

// BoolOp is a chain of and/or operators over Values.
type BoolOp struct {
	Range
	Typed
	Op     op.Op
	Values []Expr
}

type BinOp struct {
	Range
	Typed
	Left  Expr
	Op    op.Op
	Right Expr
}

type UnaryOp struct {
	Range
	Typed
	Op      op.Op
	Operand Expr
}

type Lambda struct {
	Range
	Typed
	Args *Arguments
	Body Expr
}

// IfExp is the conditional expression `Body if Test else OrElse`.
type IfExp struct {
	Range
	Typed
	Test   Expr
	Body   Expr
	OrElse Expr
}

// Dict is a dict display. A nil key marks a **mapping unpacking of its value.
type Dict struct {
	Range
	Typed
	Keys   []Expr
	Values []Expr
}

type Set struct {
	Range
	Typed
	Elts []Expr
}

type ListComp struct {
	Range
	Typed
	Elt        Expr
	Generators []*Comprehension
}

type SetComp struct {
	Range
	Typed
	Elt        Expr
	Generators []*Comprehension
}

type DictComp struct {
	Range
	Typed
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

type GeneratorExp struct {
	Range
	Typed
	Elt        Expr
	Generators []*Comprehension
}

type Await struct {
	Range
	Typed
	Value Expr
}

// Yield has a nil Value for a bare yield.
type Yield struct {
	Range
	Typed
	Value Expr
}

type YieldFrom struct {
	Range
	Typed
	Value Expr
}

// Compare is a chain of comparisons: Left Ops[0] Comparators[0] Ops[1] ...
type Compare struct {
	Range
	Typed
	Left        Expr
	Ops         []op.Op
	Comparators []Expr
}

// Call holds *args as Starred elements of Args and **kwargs as Keywords
// without a name.
type Call struct {
	Range
	Typed
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

// NumKind distinguishes numeric literals.
type NumKind int

const (
	IntNum NumKind = iota
	FloatNum
	ComplexNum
)

// Num is a numeric literal. Value keeps the literal's source text.
type Num struct {
	Range
	Typed
	Kind  NumKind
	Value string
}

type Str struct {
	Range
	Typed
	Value string
}

// JoinedStr is an f-string; Values are Str and FormattedValue parts.
type JoinedStr struct {
	Range
	Typed
	Values []Expr
}

type FormattedValue struct {
	Range
	Typed
	Value      Expr
	FormatSpec Expr
}

type Bytes struct {
	Range
	Typed
	Value string
}

// NameConstant is one of True, False or None.
type NameConstant struct {
	Range
	Typed
	Value string
}

type Ellipsis struct {
	Range
	Typed
}

type Attribute struct {
	Range
	Typed
	Value Expr
	Attr  string
	Ctx   ExprContext
}

type Subscript struct {
	Range
	Typed
	Value Expr
	Slice Slice
	Ctx   ExprContext
}

type Starred struct {
	Range
	Typed
	Value Expr
	Ctx   ExprContext
}

type Name struct {
	Range
	Typed
	Id  string
	Ctx ExprContext
}

type List struct {
	Range
	Typed
	Elts []Expr
	Ctx  ExprContext
}

type Tuple struct {
	Range
	Typed
	Elts []Expr
	Ctx  ExprContext
}

func (*BoolOp) exprNode()         {}
func (*BinOp) exprNode()          {}
func (*UnaryOp) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*IfExp) exprNode()          {}
func (*Dict) exprNode()           {}
func (*Set) exprNode()            {}
func (*ListComp) exprNode()       {}
func (*SetComp) exprNode()        {}
func (*DictComp) exprNode()       {}
func (*GeneratorExp) exprNode()   {}
func (*Await) exprNode()          {}
func (*Yield) exprNode()          {}
func (*YieldFrom) exprNode()      {}
func (*Compare) exprNode()        {}
func (*Call) exprNode()           {}
func (*Num) exprNode()            {}
func (*Str) exprNode()            {}
func (*JoinedStr) exprNode()      {}
func (*FormattedValue) exprNode() {}
func (*Bytes) exprNode()          {}
func (*NameConstant) exprNode()   {}
func (*Ellipsis) exprNode()       {}
func (*Attribute) exprNode()      {}
func (*Subscript) exprNode()      {}
func (*Starred) exprNode()        {}
func (*Name) exprNode()           {}
func (*List) exprNode()           {}
func (*Tuple) exprNode()          {}

// Index subscripts with a single value.
type Index struct {
	Range
	Value Expr
}

// SliceRange is a lower:upper:step slice; each bound may be nil.
type SliceRange struct {
	Range
	Lower Expr
	Upper Expr
	Step  Expr
}

// ExtSlice subscripts with several comma-separated dimensions.
type ExtSlice struct {
	Range
	Dims []Slice
}

func (*Index) sliceNode()      {}
func (*SliceRange) sliceNode() {}
func (*ExtSlice) sliceNode()   {}
