package ast

import (
	"strconv"
	"strings"

	"github.com/cottand/gradual/frontend/op"
)

// ExprString renders expr back to source syntax, for diagnostics.
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr, precLowest)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{Builder: &strings.Builder{}}
}

// binding strength of the expression forms, loosest first
const (
	precLowest = iota
	precLambda
	precIfExp
	precOr
	precAnd
	precNot
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precUnary
	precPow
	precAwait
	precAtom
)

func binopPrecedence(o op.Op) int {
	switch o {
	case op.BitOr:
		return precBitOr
	case op.BitXor:
		return precBitXor
	case op.BitAnd:
		return precBitAnd
	case op.LShift, op.RShift:
		return precShift
	case op.Add, op.Sub:
		return precArith
	case op.Pow:
		return precPow
	}
	return precTerm
}

func (ctx *showContext) parens(outer, inner int, body func()) {
	if inner < outer {
		ctx.WriteString("(")
		defer ctx.WriteString(")")
	}
	body()
}

func (ctx *showContext) showExprList(es []Expr) {
	for i, e := range es {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.showExprWalker(e, precIfExp)
	}
}

func (ctx *showContext) showExprWalker(expr Expr, outer int) {
	if expr == nil {
		ctx.WriteString("None")
		return
	}
	switch expr := expr.(type) {
	case *Name:
		ctx.WriteString(expr.Id)
	case *Num:
		ctx.WriteString(expr.Value)
	case *Str:
		ctx.WriteString(strconv.Quote(expr.Value))
	case *Bytes:
		ctx.WriteString("b" + strconv.Quote(expr.Value))
	case *NameConstant:
		ctx.WriteString(expr.Value)
	case *Ellipsis:
		ctx.WriteString("...")
	case *JoinedStr:
		ctx.WriteString("f\"")
		for _, part := range expr.Values {
			switch part := part.(type) {
			case *Str:
				ctx.WriteString(part.Value)
			case *FormattedValue:
				ctx.WriteString("{")
				ctx.showExprWalker(part.Value, precLowest)
				ctx.WriteString("}")
			}
		}
		ctx.WriteString("\"")
	case *FormattedValue:
		ctx.showExprWalker(expr.Value, outer)
	case *BoolOp:
		prec := precOr
		if expr.Op == op.And {
			prec = precAnd
		}
		ctx.parens(outer, prec, func() {
			for i, v := range expr.Values {
				if i > 0 {
					ctx.WriteString(" " + expr.Op.Symbol() + " ")
				}
				ctx.showExprWalker(v, prec+1)
			}
		})
	case *BinOp:
		prec := binopPrecedence(expr.Op)
		left, right := prec, prec+1
		if expr.Op == op.Pow {
			left, right = prec+1, prec
		}
		ctx.parens(outer, prec, func() {
			ctx.showExprWalker(expr.Left, left)
			ctx.WriteString(" " + expr.Op.Symbol() + " ")
			ctx.showExprWalker(expr.Right, right)
		})
	case *UnaryOp:
		prec := precUnary
		if expr.Op == op.Not {
			prec = precNot
		}
		ctx.parens(outer, prec, func() {
			ctx.WriteString(expr.Op.Symbol())
			ctx.showExprWalker(expr.Operand, prec)
		})
	case *Compare:
		ctx.parens(outer, precCompare, func() {
			ctx.showExprWalker(expr.Left, precCompare+1)
			for i, o := range expr.Ops {
				ctx.WriteString(" " + o.Symbol() + " ")
				ctx.showExprWalker(expr.Comparators[i], precCompare+1)
			}
		})
	case *Lambda:
		ctx.parens(outer, precLambda, func() {
			ctx.WriteString("lambda")
			if params := argumentsString(expr.Args); params != "" {
				ctx.WriteString(" " + params)
			}
			ctx.WriteString(": ")
			ctx.showExprWalker(expr.Body, precLambda)
		})
	case *IfExp:
		ctx.parens(outer, precIfExp, func() {
			ctx.showExprWalker(expr.Body, precIfExp+1)
			ctx.WriteString(" if ")
			ctx.showExprWalker(expr.Test, precIfExp+1)
			ctx.WriteString(" else ")
			ctx.showExprWalker(expr.OrElse, precIfExp)
		})
	case *Await:
		ctx.parens(outer, precAwait, func() {
			ctx.WriteString("await ")
			ctx.showExprWalker(expr.Value, precAtom)
		})
	case *Yield:
		ctx.WriteString("(yield")
		if expr.Value != nil {
			ctx.WriteString(" ")
			ctx.showExprWalker(expr.Value, precLowest)
		}
		ctx.WriteString(")")
	case *YieldFrom:
		ctx.WriteString("(yield from ")
		ctx.showExprWalker(expr.Value, precLowest)
		ctx.WriteString(")")
	case *Call:
		ctx.showExprWalker(expr.Func, precAtom)
		ctx.WriteString("(")
		ctx.showExprList(expr.Args)
		for i, kw := range expr.Keywords {
			if i > 0 || len(expr.Args) > 0 {
				ctx.WriteString(", ")
			}
			if kw.Arg == "" {
				ctx.WriteString("**")
			} else {
				ctx.WriteString(kw.Arg + "=")
			}
			ctx.showExprWalker(kw.Value, precIfExp)
		}
		ctx.WriteString(")")
	case *Attribute:
		ctx.showExprWalker(expr.Value, precAtom)
		ctx.WriteString("." + expr.Attr)
	case *Subscript:
		ctx.showExprWalker(expr.Value, precAtom)
		ctx.WriteString("[")
		ctx.showSlice(expr.Slice)
		ctx.WriteString("]")
	case *Starred:
		ctx.WriteString("*")
		ctx.showExprWalker(expr.Value, precBitOr)
	case *List:
		ctx.WriteString("[")
		ctx.showExprList(expr.Elts)
		ctx.WriteString("]")
	case *Tuple:
		ctx.WriteString("(")
		ctx.showExprList(expr.Elts)
		if len(expr.Elts) == 1 {
			ctx.WriteString(",")
		}
		ctx.WriteString(")")
	case *Set:
		ctx.WriteString("{")
		ctx.showExprList(expr.Elts)
		ctx.WriteString("}")
	case *Dict:
		ctx.WriteString("{")
		for i := range expr.Values {
			if i > 0 {
				ctx.WriteString(", ")
			}
			if expr.Keys[i] == nil {
				ctx.WriteString("**")
			} else {
				ctx.showExprWalker(expr.Keys[i], precIfExp)
				ctx.WriteString(": ")
			}
			ctx.showExprWalker(expr.Values[i], precIfExp)
		}
		ctx.WriteString("}")
	case *ListComp:
		ctx.WriteString("[")
		ctx.showExprWalker(expr.Elt, precIfExp)
		ctx.showGenerators(expr.Generators)
		ctx.WriteString("]")
	case *SetComp:
		ctx.WriteString("{")
		ctx.showExprWalker(expr.Elt, precIfExp)
		ctx.showGenerators(expr.Generators)
		ctx.WriteString("}")
	case *DictComp:
		ctx.WriteString("{")
		ctx.showExprWalker(expr.Key, precIfExp)
		ctx.WriteString(": ")
		ctx.showExprWalker(expr.Value, precIfExp)
		ctx.showGenerators(expr.Generators)
		ctx.WriteString("}")
	case *GeneratorExp:
		ctx.WriteString("(")
		ctx.showExprWalker(expr.Elt, precIfExp)
		ctx.showGenerators(expr.Generators)
		ctx.WriteString(")")
	default:
		ctx.WriteString("<?>")
	}
}

func (ctx *showContext) showGenerators(gens []*Comprehension) {
	for _, g := range gens {
		if g.IsAsync {
			ctx.WriteString(" async")
		}
		ctx.WriteString(" for ")
		ctx.showTarget(g.Target)
		ctx.WriteString(" in ")
		ctx.showExprWalker(g.Iter, precOr)
		for _, cond := range g.Ifs {
			ctx.WriteString(" if ")
			ctx.showExprWalker(cond, precOr)
		}
	}
}

// showTarget renders tuple targets without parentheses, as in `for k, v in`.
func (ctx *showContext) showTarget(target Expr) {
	if tuple, ok := target.(*Tuple); ok && len(tuple.Elts) > 1 {
		ctx.showExprList(tuple.Elts)
		return
	}
	ctx.showExprWalker(target, precBitOr)
}

func (ctx *showContext) showSlice(s Slice) {
	switch s := s.(type) {
	case *Index:
		if tuple, ok := s.Value.(*Tuple); ok && len(tuple.Elts) > 1 {
			ctx.showExprList(tuple.Elts)
			return
		}
		ctx.showExprWalker(s.Value, precLowest)
	case *SliceRange:
		if s.Lower != nil {
			ctx.showExprWalker(s.Lower, precIfExp)
		}
		ctx.WriteString(":")
		if s.Upper != nil {
			ctx.showExprWalker(s.Upper, precIfExp)
		}
		if s.Step != nil {
			ctx.WriteString(":")
			ctx.showExprWalker(s.Step, precIfExp)
		}
	case *ExtSlice:
		for i, d := range s.Dims {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.showSlice(d)
		}
	}
}

func argumentsString(a *Arguments) string {
	if a == nil {
		return ""
	}
	var params []string
	firstDefault := len(a.Args) - len(a.Defaults)
	for i, arg := range a.Args {
		p := argString(arg)
		if i >= firstDefault {
			p += "=" + ExprString(a.Defaults[i-firstDefault])
		}
		params = append(params, p)
	}
	if a.Vararg != nil {
		params = append(params, "*"+argString(a.Vararg))
	} else if len(a.KwOnlyArgs) > 0 {
		params = append(params, "*")
	}
	for i, arg := range a.KwOnlyArgs {
		p := argString(arg)
		if i < len(a.KwDefaults) && a.KwDefaults[i] != nil {
			p += "=" + ExprString(a.KwDefaults[i])
		}
		params = append(params, p)
	}
	if a.Kwarg != nil {
		params = append(params, "**"+argString(a.Kwarg))
	}
	return strings.Join(params, ", ")
}

func argString(a *Arg) string {
	if a.Annotation == nil {
		return a.Arg
	}
	return a.Arg + ": " + ExprString(a.Annotation)
}
