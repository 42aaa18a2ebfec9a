// Package op enumerates the operators of the source language.
//
// It is shared by the syntax tree and the type model, the way go/token
// is shared by go/ast and go/types.
package op

type Op int

const (
	Invalid Op = iota

	// binary
	Add
	Sub
	Mult
	MatMult
	Div
	FloorDiv
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd

	// unary
	UAdd
	USub
	Not
	Invert

	// boolean
	And
	Or

	// comparison
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var ops = [...]struct {
	name, symbol, verb string
}{
	Invalid:  {"Invalid", "?", "operate on"},
	Add:      {"Add", "+", "add"},
	Sub:      {"Sub", "-", "subtract"},
	Mult:     {"Mult", "*", "multiply"},
	MatMult:  {"MatMult", "@", "matrix-multiply"},
	Div:      {"Div", "/", "divide"},
	FloorDiv: {"FloorDiv", "//", "floor-divide"},
	Mod:      {"Mod", "%", "modulo"},
	Pow:      {"Pow", "**", "exponentiate"},
	LShift:   {"LShift", "<<", "left-shift"},
	RShift:   {"RShift", ">>", "right-shift"},
	BitOr:    {"BitOr", "|", "bitwise-or"},
	BitXor:   {"BitXor", "^", "bitwise-xor"},
	BitAnd:   {"BitAnd", "&", "bitwise-and"},
	UAdd:     {"UAdd", "+", "positivize"},
	USub:     {"USub", "-", "negate"},
	Not:      {"Not", "not ", "logically negate"},
	Invert:   {"Invert", "~", "invert"},
	And:      {"And", "and", "and"},
	Or:       {"Or", "or", "or"},
	Eq:       {"Eq", "==", "compare"},
	NotEq:    {"NotEq", "!=", "compare"},
	Lt:       {"Lt", "<", "compare"},
	LtE:      {"LtE", "<=", "compare"},
	Gt:       {"Gt", ">", "compare"},
	GtE:      {"GtE", ">=", "compare"},
	Is:       {"Is", "is", "compare"},
	IsNot:    {"IsNot", "is not", "compare"},
	In:       {"In", "in", "test membership of"},
	NotIn:    {"NotIn", "not in", "test membership of"},
}

func (o Op) valid() bool { return o > Invalid && int(o) < len(ops) }

// String returns the name of the grammar node for o, e.g. "Add".
func (o Op) String() string {
	if !o.valid() {
		return ops[Invalid].name
	}
	return ops[o].name
}

// Symbol returns the surface syntax of o, e.g. "+".
func (o Op) Symbol() string {
	if !o.valid() {
		return ops[Invalid].symbol
	}
	return ops[o].symbol
}

// Verb is used in error messages: "Can't add operands of type ..."
func (o Op) Verb() string {
	if !o.valid() {
		return ops[Invalid].verb
	}
	return ops[o].verb
}

// PastTense is the verb in past tense, for augmented assignment errors.
func (o Op) PastTense() string {
	v := o.Verb()
	switch {
	case len(v) > 0 && v[len(v)-1] == 'e':
		return v + "d"
	case len(v) > 1 && v[len(v)-1] == 'y':
		return v[:len(v)-1] + "ied"
	}
	return v + "ed"
}

// IsBinary reports whether o is an arithmetic or bitwise binary operator.
func (o Op) IsBinary() bool { return o >= Add && o <= BitAnd }

// IsUnary reports whether o is a unary operator.
func (o Op) IsUnary() bool { return o >= UAdd && o <= Invert }

// IsComparison reports whether o may appear in a comparison chain.
func (o Op) IsComparison() bool { return o >= Eq && o <= NotIn }

// Lookup finds the operator whose grammar node name is name.
func Lookup(name string) (Op, bool) {
	for i := Add; int(i) < len(ops); i++ {
		if ops[i].name == name {
			return i, true
		}
	}
	return Invalid, false
}
