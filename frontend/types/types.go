// Package types implements the static types of the gradual checker: the
// closed set of type variants, member lookup, the consistency relation
// between types, operator typing and call-site checking.
package types

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Type is a static type.
//
// The set of implementations is closed: Dyn, Bot, Primitive, *Class, Instance,
// Structural, Module, Union, List, Set, Dict, Tuple, HTuple, Function, TopList
// and Alias.
type Type interface {
	fmt.Stringer
	// Equal is structural equality, except for classes which are equal by identity.
	Equal(other Type) bool
	// Member looks up the attribute name on values of this type.
	// ok is false when values of this type definitely lack the member.
	Member(name string, fields FieldTable) (member Type, ok bool)
	// Bind is the type of this member once bound to a receiver.
	Bind() Type
	// Marker projects the type onto its runtime representation.
	Marker() (Marker, error)

	isType()
}

var (
	_ Type = Dyn{}
	_ Type = Bot{}
	_ Type = Primitive{}
	_ Type = (*Class)(nil)
	_ Type = Instance{}
	_ Type = Structural{}
	_ Type = Module{}
	_ Type = Union{}
	_ Type = List{}
	_ Type = Set{}
	_ Type = Dict{}
	_ Type = Tuple{}
	_ Type = HTuple{}
	_ Type = Function{}
	_ Type = TopList{}
	_ Type = Alias{}
)

// Dyn is the dynamic type. It is consistent with every type.
type Dyn struct{}

func (Dyn) isType()        {}
func (Dyn) String() string { return "Dyn" }
func (Dyn) Bind() Type     { return Dyn{} }
func (Dyn) Equal(o Type) bool {
	_, ok := o.(Dyn)
	return ok
}
func (Dyn) Member(string, FieldTable) (Type, bool) {
	return Dyn{}, true
}

// Bot is the type of values not known yet. It is the placeholder used
// while inferring the types of unannotated locals.
type Bot struct{}

func (Bot) isType()        {}
func (Bot) String() string { return "Bot" }
func (Bot) Bind() Type     { return Bot{} }
func (Bot) Equal(o Type) bool {
	_, ok := o.(Bot)
	return ok
}
func (Bot) Member(string, FieldTable) (Type, bool) {
	return Bot{}, true
}

type PrimitiveKind int

const (
	KindInt PrimitiveKind = iota
	KindFloat
	KindBool
	KindStr
	KindVoid
	KindSingletonInt
)

var primitiveTags = [...]string{
	KindInt:          "int",
	KindFloat:        "float",
	KindBool:         "bool",
	KindStr:          "str",
	KindVoid:         "None",
	KindSingletonInt: "int",
}

// Primitive is a scalar base type. Value is only meaningful for KindSingletonInt.
type Primitive struct {
	Kind  PrimitiveKind
	Value int64
}

func Int() Primitive                 { return Primitive{Kind: KindInt} }
func Float() Primitive               { return Primitive{Kind: KindFloat} }
func Bool() Primitive                { return Primitive{Kind: KindBool} }
func Str() Primitive                 { return Primitive{Kind: KindStr} }
func Void() Primitive                { return Primitive{Kind: KindVoid} }
func SingletonInt(n int64) Primitive { return Primitive{Kind: KindSingletonInt, Value: n} }

func (Primitive) isType() {}

// Tag is the runtime name of the primitive, e.g. "int".
func (t Primitive) Tag() string { return primitiveTags[t.Kind] }

func (t Primitive) String() string {
	if t.Kind == KindSingletonInt {
		return "int{" + strconv.FormatInt(t.Value, 10) + "}"
	}
	return t.Tag()
}

func (t Primitive) Bind() Type { return t }

func (t Primitive) Equal(o Type) bool {
	other, ok := o.(Primitive)
	if !ok || other.Kind != t.Kind {
		return false
	}
	return t.Kind != KindSingletonInt || t.Value == other.Value
}

// IsIntLike is true for int and integer singletons.
func (t Primitive) IsIntLike() bool {
	return t.Kind == KindInt || t.Kind == KindSingletonInt
}

func (t Primitive) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// Instance is a value of the nominal class Class.
type Instance struct {
	Class *Class
}

func (Instance) isType()          {}
func (t Instance) String() string { return t.Class.Name }
func (t Instance) Bind() Type     { return t }
func (t Instance) Equal(o Type) bool {
	other, ok := o.(Instance)
	return ok && other.Class == t.Class
}
func (t Instance) Member(name string, fields FieldTable) (Type, bool) {
	return t.Class.instanceMember(name, fields, t)
}

// Structural is a duck-typed record: any value exposing at least Members.
type Structural struct {
	Members map[string]Type
}

func (Structural) isType()      {}
func (t Structural) Bind() Type { return t }
func (t Structural) String() string {
	return "{" + showRecord(t.Members) + "}"
}
func (t Structural) Equal(o Type) bool {
	other, ok := o.(Structural)
	return ok && recordsEqual(t.Members, other.Members)
}
func (t Structural) Member(name string, _ FieldTable) (Type, bool) {
	return lookupIn(t.Members, name)
}

// Module is the namespace of an imported compilation unit.
type Module struct {
	Exports map[string]Type
}

func (Module) isType()      {}
func (t Module) Bind() Type { return t }
func (t Module) String() string {
	return "Module{" + showRecord(t.Exports) + "}"
}
func (t Module) Equal(o Type) bool {
	other, ok := o.(Module)
	return ok && recordsEqual(t.Exports, other.Exports)
}
func (t Module) Member(name string, fields FieldTable) (Type, bool) {
	if ty, ok := t.Exports[name]; ok {
		return ty, true
	}
	return lookupIn(fields.Fields(t), name)
}

// Union is a value of one of at least two distinct alternatives.
// Build unions with NewUnion or Consistency.Join so that the invariant holds.
type Union struct {
	Alternatives []Type
}

// NewUnion flattens and deduplicates alts. A single remaining alternative is
// returned as is; no alternatives at all is Bot.
func NewUnion(alts ...Type) Type {
	var out []Type
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(Union); ok {
			for _, alt := range u.Alternatives {
				add(alt)
			}
			return
		}
		if !slices.ContainsFunc(out, t.Equal) {
			out = append(out, t)
		}
	}
	for _, alt := range alts {
		add(alt)
	}
	switch len(out) {
	case 0:
		return Bot{}
	case 1:
		return out[0]
	}
	return Union{Alternatives: out}
}

func (Union) isType()      {}
func (t Union) Bind() Type { return t }
func (t Union) String() string {
	return "Union[" + joinTypes(t.Alternatives) + "]"
}

// Equal ignores the order of alternatives.
func (t Union) Equal(o Type) bool {
	other, ok := o.(Union)
	if !ok || len(other.Alternatives) != len(t.Alternatives) {
		return false
	}
	for _, alt := range t.Alternatives {
		if !slices.ContainsFunc(other.Alternatives, alt.Equal) {
			return false
		}
	}
	for _, alt := range other.Alternatives {
		if !slices.ContainsFunc(t.Alternatives, alt.Equal) {
			return false
		}
	}
	return true
}

// Member succeeds only if every alternative has the member; the result is the
// union of the alternatives' member types.
func (t Union) Member(name string, fields FieldTable) (Type, bool) {
	found := make([]Type, 0, len(t.Alternatives))
	for _, alt := range t.Alternatives {
		m, ok := alt.Member(name, fields)
		if !ok {
			return nil, false
		}
		found = append(found, m)
	}
	return NewUnion(found...), true
}

// List is a homogeneous list.
type List struct {
	Elts Type
}

func (List) isType()          {}
func (t List) Bind() Type     { return t }
func (t List) String() string { return "List[" + t.Elts.String() + "]" }
func (t List) Equal(o Type) bool {
	other, ok := o.(List)
	return ok && t.Elts.Equal(other.Elts)
}
func (t List) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// Set is a homogeneous set.
type Set struct {
	Elts Type
}

func (Set) isType()          {}
func (t Set) Bind() Type     { return t }
func (t Set) String() string { return "Set[" + t.Elts.String() + "]" }
func (t Set) Equal(o Type) bool {
	other, ok := o.(Set)
	return ok && t.Elts.Equal(other.Elts)
}
func (t Set) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// Dict is a mapping from Keys to Values.
type Dict struct {
	Keys, Values Type
}

func (Dict) isType()      {}
func (t Dict) Bind() Type { return t }
func (t Dict) String() string {
	return "Dict[" + t.Keys.String() + ", " + t.Values.String() + "]"
}
func (t Dict) Equal(o Type) bool {
	other, ok := o.(Dict)
	return ok && t.Keys.Equal(other.Keys) && t.Values.Equal(other.Values)
}
func (t Dict) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// Tuple is a fixed-arity heterogeneous product.
type Tuple struct {
	Elts []Type
}

func (Tuple) isType()          {}
func (t Tuple) Bind() Type     { return t }
func (t Tuple) String() string { return "Tuple[" + joinTypes(t.Elts) + "]" }
func (t Tuple) Equal(o Type) bool {
	other, ok := o.(Tuple)
	return ok && typesEqual(t.Elts, other.Elts)
}
func (t Tuple) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// HTuple is a homogeneous tuple of any length.
type HTuple struct {
	Elts Type
}

func (HTuple) isType()          {}
func (t HTuple) Bind() Type     { return t }
func (t HTuple) String() string { return "Tuple[" + t.Elts.String() + ", ...]" }
func (t HTuple) Equal(o Type) bool {
	other, ok := o.(HTuple)
	return ok && t.Elts.Equal(other.Elts)
}
func (t HTuple) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// Function is a callable accepting From and returning To.
type Function struct {
	From ArgTypes
	To   Type
}

func (Function) isType() {}
func (t Function) String() string {
	return "Callable[" + t.From.String() + ", " + t.To.String() + "]"
}
func (t Function) Equal(o Type) bool {
	other, ok := o.(Function)
	return ok && t.From.Equal(other.From) && t.To.Equal(other.To)
}

// Bind drops the receiver parameter.
func (t Function) Bind() Type {
	return Function{From: t.From.Bind(), To: t.To}
}
func (t Function) Member(name string, fields FieldTable) (Type, bool) {
	return lookupIn(fields.Fields(t), name)
}

// TopList is the supertype of every List type.
type TopList struct{}

func (TopList) isType()        {}
func (TopList) String() string { return "List[?]" }
func (TopList) Bind() Type     { return TopList{} }
func (TopList) Equal(o Type) bool {
	_, ok := o.(TopList)
	return ok
}
func (TopList) Member(string, FieldTable) (Type, bool) { return nil, false }

// Alias is a type that is referred to through a dotted path at runtime,
// such as a class exported by another module. When Class is set the
// runtime marker identifies the class object itself rather than its instances.
type Alias struct {
	Path       string
	Underlying Type
	Class      bool
}

func (Alias) isType()          {}
func (t Alias) String() string { return t.Path }
func (t Alias) Bind() Type     { return t }
func (t Alias) Equal(o Type) bool {
	other, ok := o.(Alias)
	return ok && other.Path == t.Path && other.Class == t.Class && t.Underlying.Equal(other.Underlying)
}
func (t Alias) Member(name string, fields FieldTable) (Type, bool) {
	return t.Underlying.Member(name, fields)
}

// Unalias strips any number of Alias layers from t.
func Unalias(t Type) Type {
	for {
		a, ok := t.(Alias)
		if !ok {
			return t
		}
		t = a.Underlying
	}
}

func lookupIn(record map[string]Type, name string) (Type, bool) {
	t, ok := record[name]
	return t, ok
}

func recordsEqual(a, b map[string]Type) bool {
	return maps.EqualFunc(a, b, func(x, y Type) bool { return x.Equal(y) })
}

func typesEqual(a, b []Type) bool {
	return slices.EqualFunc(a, b, func(x, y Type) bool { return x.Equal(y) })
}

func joinTypes(ts []Type) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = t.String()
	}
	return strings.Join(strs, ", ")
}

func showRecord(record map[string]Type) string {
	keys := slices.Sorted(maps.Keys(record))
	strs := make([]string, len(keys))
	for i, k := range keys {
		strs[i] = k + ": " + record[k].String()
	}
	return strings.Join(strs, ", ")
}
