package types

// FieldTable resolves the members that are built into primitive and container
// types. It is a read-only dependency of member lookup.
type FieldTable interface {
	// Fields returns the built-in members of values of type t, or nil if it has none.
	Fields(t Type) map[string]Type
	// Basics returns the members every object carries, unbound.
	Basics(t Type) map[string]Type
}

// DefaultFields is the FieldTable of the standard built-in types.
var DefaultFields FieldTable = defaultFields{}

type defaultFields struct{}

func fn(to Type, from ...Type) Function {
	return Function{From: Positional{Types: from}, To: to}
}

func arb(to Type) Function {
	return Function{From: Arbitrary{}, To: to}
}

func (defaultFields) Fields(t Type) map[string]Type {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case KindInt, KindSingletonInt:
			return intFields()
		case KindStr:
			return strFields()
		case KindVoid:
			return voidFields(t)
		}
	case List:
		return listFields(t)
	case Set:
		return setFields(t)
	case Dict:
		return dictFields(t)
	case Tuple, HTuple:
		return map[string]Type{
			"count": arb(Int()),
			"index": arb(Int()),
		}
	case Function:
		return map[string]Type{
			"__name__":     Str(),
			"__qualname__": Str(),
			"__module__":   Str(),
			"__doc__":      Dyn{},
			"__defaults__": Dyn{},
			"__dict__":     Dyn{},
			"__call__":     t,
		}
	case Module:
		return map[string]Type{
			"__name__":    Str(),
			"__file__":    Str(),
			"__doc__":     Dyn{},
			"__dict__":    Dyn{},
			"__package__": Dyn{},
			"__loader__":  Dyn{},
			"__spec__":    Dyn{},
		}
	}
	return nil
}

// Basics are stored unbound, receiver first, like any class member.
func (defaultFields) Basics(Type) map[string]Type {
	return map[string]Type{
		"__class__":        Dyn{},
		"__doc__":          Dyn{},
		"__dict__":         Dyn{},
		"__module__":       Str(),
		"__init__":         arb(Void()),
		"__str__":          fn(Str(), Dyn{}),
		"__repr__":         fn(Str(), Dyn{}),
		"__format__":       fn(Str(), Dyn{}, Str()),
		"__hash__":         fn(Int(), Dyn{}),
		"__sizeof__":       fn(Int(), Dyn{}),
		"__eq__":           fn(Bool(), Dyn{}, Dyn{}),
		"__ne__":           fn(Bool(), Dyn{}, Dyn{}),
		"__dir__":          fn(List{Elts: Str()}, Dyn{}),
		"__getattribute__": fn(Dyn{}, Dyn{}, Str()),
		"__setattr__":      fn(Void(), Dyn{}, Str(), Dyn{}),
		"__delattr__":      fn(Void(), Dyn{}, Str()),
	}
}

func intFields() map[string]Type {
	return map[string]Type{
		"real":        Int(),
		"imag":        Int(),
		"numerator":   Int(),
		"denominator": Int(),
		"bit_length":  fn(Int()),
		"conjugate":   fn(Int()),
		"to_bytes":    arb(Dyn{}),
		"from_bytes":  arb(Int()),
	}
}

func strFields() map[string]Type {
	s, b := Str(), Bool()
	strs := List{Elts: Str()}
	return map[string]Type{
		"capitalize":   fn(s),
		"casefold":     fn(s),
		"center":       arb(s),
		"count":        arb(Int()),
		"encode":       arb(Dyn{}),
		"endswith":     arb(b),
		"expandtabs":   arb(s),
		"find":         arb(Int()),
		"format":       arb(s),
		"format_map":   fn(s, Dyn{}),
		"index":        arb(Int()),
		"isalnum":      fn(b),
		"isalpha":      fn(b),
		"isdecimal":    fn(b),
		"isdigit":      fn(b),
		"isidentifier": fn(b),
		"islower":      fn(b),
		"isnumeric":    fn(b),
		"isprintable":  fn(b),
		"isspace":      fn(b),
		"istitle":      fn(b),
		"isupper":      fn(b),
		"join":         fn(s, Dyn{}),
		"ljust":        arb(s),
		"lower":        fn(s),
		"lstrip":       arb(s),
		"partition":    fn(Tuple{Elts: []Type{s, s, s}}, s),
		"replace":      arb(s),
		"rfind":        arb(Int()),
		"rindex":       arb(Int()),
		"rjust":        arb(s),
		"rpartition":   fn(Tuple{Elts: []Type{s, s, s}}, s),
		"rsplit":       arb(strs),
		"rstrip":       arb(s),
		"split":        arb(strs),
		"splitlines":   arb(strs),
		"startswith":   arb(b),
		"strip":        arb(s),
		"swapcase":     fn(s),
		"title":        fn(s),
		"translate":    fn(s, Dyn{}),
		"upper":        fn(s),
		"zfill":        fn(s, Int()),
	}
}

func voidFields(t Type) map[string]Type {
	fields := make(map[string]Type)
	for name, member := range DefaultFields.Basics(t) {
		fields[name] = member.Bind()
	}
	return fields
}

func listFields(t List) map[string]Type {
	return map[string]Type{
		"append":  fn(Void(), t.Elts),
		"clear":   fn(Void()),
		"copy":    fn(List{Elts: t.Elts}),
		"count":   fn(Int(), t.Elts),
		"extend":  fn(List{Elts: t.Elts}, t),
		"index":   fn(Int(), t.Elts),
		"insert":  fn(Int(), Int(), t.Elts),
		"pop":     arb(t.Elts),
		"remove":  fn(Void(), t.Elts),
		"reverse": fn(Void()),
		"sort":    arb(Void()),
	}
}

func setFields(t Set) map[string]Type {
	same := Set{Elts: t.Elts}
	return map[string]Type{
		"add":                  fn(Void(), t.Elts),
		"clear":                fn(Void()),
		"copy":                 fn(same),
		"difference":           arb(same),
		"difference_update":    arb(Void()),
		"discard":              fn(Void(), t.Elts),
		"intersection":         arb(same),
		"intersection_update":  arb(Void()),
		"isdisjoint":           fn(Bool(), Dyn{}),
		"issubset":             fn(Bool(), Dyn{}),
		"issuperset":           fn(Bool(), Dyn{}),
		"pop":                  fn(t.Elts),
		"remove":               fn(Void(), t.Elts),
		"symmetric_difference": arb(same),
		"union":                arb(same),
		"update":               arb(Void()),
	}
}

func dictFields(t Dict) map[string]Type {
	item := Tuple{Elts: []Type{t.Keys, t.Values}}
	return map[string]Type{
		"clear":      fn(Void()),
		"copy":       fn(Dict{Keys: t.Keys, Values: t.Values}),
		"get":        arb(Dyn{}),
		"items":      fn(List{Elts: item}),
		"keys":       fn(List{Elts: t.Keys}),
		"pop":        arb(t.Values),
		"popitem":    fn(item),
		"setdefault": arb(t.Values),
		"update":     arb(Void()),
		"values":     fn(List{Elts: t.Values}),
	}
}
