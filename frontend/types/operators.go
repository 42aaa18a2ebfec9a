package types

import "github.com/cottand/gradual/frontend/op"

// operandTag classifies operand types for the operator tables.
type operandTag int

const (
	tagNone operandTag = iota
	// numeric tags are ordered by widening
	tagBool
	tagInt
	tagFloat
	tagStr
	tagList
)

func tagOf(t Type) operandTag {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case KindBool:
			return tagBool
		case KindInt, KindSingletonInt:
			return tagInt
		case KindFloat:
			return tagFloat
		case KindStr:
			return tagStr
		}
	case List:
		return tagList
	}
	return tagNone
}

var numericTypes = map[operandTag]Type{
	tagBool:  Bool(),
	tagInt:   Int(),
	tagFloat: Float(),
}

type binopKey struct {
	op          op.Op
	left, right operandTag
}

type binopRule func(c *Consistency, left, right Type) Type

func always(t Type) binopRule {
	return func(*Consistency, Type, Type) Type { return t }
}

// binops is keyed by operator and operand tags. A missing key means the
// combination has no valid typing.
var binops = map[binopKey]binopRule{}

func init() {
	numeric := []operandTag{tagBool, tagInt, tagFloat}
	integral := []operandTag{tagBool, tagInt}

	for _, o := range []op.Op{op.Add, op.Sub, op.Mult, op.FloorDiv, op.Mod, op.Pow} {
		for _, l := range numeric {
			for _, r := range numeric {
				// bool arithmetic produces ints
				binops[binopKey{o, l, r}] = always(numericTypes[max(l, r, tagInt)])
			}
		}
	}
	for _, l := range numeric {
		for _, r := range numeric {
			binops[binopKey{op.Div, l, r}] = always(Float())
		}
	}
	for _, o := range []op.Op{op.LShift, op.RShift} {
		for _, l := range integral {
			for _, r := range integral {
				binops[binopKey{o, l, r}] = always(Int())
			}
		}
	}
	for _, o := range []op.Op{op.BitAnd, op.BitOr, op.BitXor} {
		for _, l := range integral {
			for _, r := range integral {
				binops[binopKey{o, l, r}] = always(numericTypes[max(l, r)])
			}
		}
	}

	binops[binopKey{op.Add, tagStr, tagStr}] = always(Str())
	for _, n := range integral {
		binops[binopKey{op.Mult, tagStr, n}] = always(Str())
		binops[binopKey{op.Mult, n, tagStr}] = always(Str())
	}

	binops[binopKey{op.Add, tagList, tagList}] = func(c *Consistency, l, r Type) Type {
		return List{Elts: c.Join(l.(List).Elts, r.(List).Elts)}
	}
	for _, n := range integral {
		binops[binopKey{op.Mult, tagList, n}] = func(_ *Consistency, l, _ Type) Type { return l }
		binops[binopKey{op.Mult, n, tagList}] = func(_ *Consistency, _, r Type) Type { return r }
	}
}

// ApplyBinop is the result type of left o right. ok is false when no typing
// exists for the operand types. A Dyn operand makes the result Dyn.
func (c *Consistency) ApplyBinop(o op.Op, left, right Type) (result Type, ok bool) {
	left, right = Unalias(left), Unalias(right)
	switch {
	case isDyn(left) || isDyn(right):
		return Dyn{}, true
	case isBot(left) || isBot(right):
		return Bot{}, true
	}
	rule, ok := binops[binopKey{o, tagOf(left), tagOf(right)}]
	if !ok {
		return nil, false
	}
	return rule(c, left, right), true
}

// ApplyUnop is the result type of o operand.
func (c *Consistency) ApplyUnop(o op.Op, operand Type) (result Type, ok bool) {
	operand = Unalias(operand)
	if o == op.Not {
		return Bool(), true
	}
	switch {
	case isDyn(operand):
		return Dyn{}, true
	case isBot(operand):
		return Bot{}, true
	}
	tag := tagOf(operand)
	switch o {
	case op.UAdd, op.USub:
		switch tag {
		case tagBool, tagInt:
			return Int(), true
		case tagFloat:
			return Float(), true
		}
	case op.Invert:
		if tag == tagBool || tag == tagInt {
			return Int(), true
		}
	}
	return nil, false
}

func isDyn(t Type) bool {
	_, ok := t.(Dyn)
	return ok
}

func isBot(t Type) bool {
	_, ok := t.(Bot)
	return ok
}
