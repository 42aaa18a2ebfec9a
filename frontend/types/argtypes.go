package types

import (
	"slices"
	"strings"
)

// ArgTypes is the calling convention on the left of a function arrow.
//
// It describes how the function may be called, not the types of the
// parameters as seen from inside its body.
type ArgTypes interface {
	String() string
	Equal(other ArgTypes) bool
	// Bind drops the first parameter, which receives the method's receiver.
	Bind() ArgTypes

	isArgTypes()
}

var (
	_ ArgTypes = Arbitrary{}
	_ ArgTypes = Positional{}
	_ ArgTypes = Named{}
	_ ArgTypes = ApproxNamed{}
)

// Arbitrary accepts any call shape.
type Arbitrary struct{}

func (Arbitrary) isArgTypes()      {}
func (Arbitrary) String() string   { return "..." }
func (a Arbitrary) Bind() ArgTypes { return a }
func (Arbitrary) Equal(o ArgTypes) bool {
	_, ok := o.(Arbitrary)
	return ok
}

// Positional accepts exactly len(Types) positional arguments.
type Positional struct {
	Types []Type
}

func (Positional) isArgTypes()      {}
func (a Positional) String() string { return "[" + joinTypes(a.Types) + "]" }
func (a Positional) Equal(o ArgTypes) bool {
	other, ok := o.(Positional)
	return ok && typesEqual(a.Types, other.Types)
}

// Bind on a parameterless convention leaves it unchanged; calling it bound
// is then reported as an arity mismatch at the call site.
func (a Positional) Bind() ArgTypes {
	if len(a.Types) == 0 {
		return a
	}
	return Positional{Types: a.Types[1:]}
}

// Binding is a named parameter.
type Binding struct {
	Name string
	Type Type
}

func (b Binding) String() string { return b.Name + ": " + b.Type.String() }

// Named accepts arguments bound exactly to Bindings, positionally or by keyword.
type Named struct {
	Bindings []Binding
}

func (Named) isArgTypes()      {}
func (a Named) String() string { return "[" + showBindings(a.Bindings) + "]" }
func (a Named) Equal(o ArgTypes) bool {
	other, ok := o.(Named)
	return ok && bindingsEqual(a.Bindings, other.Bindings)
}
func (a Named) Bind() ArgTypes {
	if len(a.Bindings) == 0 {
		return a
	}
	return Named{Bindings: a.Bindings[1:]}
}

// ApproxNamed is like Named, but gives up checking once the call involves
// *args or **kwargs, and tolerates missing or unknown keyword arguments, so
// that defaults and variadic parameters need not be modelled.
type ApproxNamed struct {
	Bindings []Binding
}

func (ApproxNamed) isArgTypes() {}
func (a ApproxNamed) String() string {
	if len(a.Bindings) == 0 {
		return "[...]"
	}
	return "[" + showBindings(a.Bindings) + ", ...]"
}
func (a ApproxNamed) Equal(o ArgTypes) bool {
	other, ok := o.(ApproxNamed)
	return ok && bindingsEqual(a.Bindings, other.Bindings)
}
func (a ApproxNamed) Bind() ArgTypes {
	if len(a.Bindings) == 0 {
		return ApproxNamed{}
	}
	return ApproxNamed{Bindings: a.Bindings[1:]}
}

// ParamTypes lists the parameter types of a, in order. It is nil for Arbitrary.
func ParamTypes(a ArgTypes) []Type {
	switch a := a.(type) {
	case Positional:
		return a.Types
	case Named:
		return bindingTypes(a.Bindings)
	case ApproxNamed:
		return bindingTypes(a.Bindings)
	}
	return nil
}

func bindingTypes(bs []Binding) []Type {
	out := make([]Type, len(bs))
	for i, b := range bs {
		out[i] = b.Type
	}
	return out
}

func bindingsEqual(a, b []Binding) bool {
	return slices.EqualFunc(a, b, func(x, y Binding) bool {
		return x.Name == y.Name && x.Type.Equal(y.Type)
	})
}

func showBindings(bs []Binding) string {
	strs := make([]string, len(bs))
	for i, b := range bs {
		strs[i] = b.String()
	}
	return strings.Join(strs, ", ")
}
