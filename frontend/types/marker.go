package types

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

type MarkerKind int

const (
	// MarkerName is a runtime class or builtin referred to by name, e.g. int.
	MarkerName MarkerKind = iota
	// MarkerPath is a dotted path to a runtime class, e.g. mod.Cls.
	MarkerPath
	// MarkerClass identifies a class object itself rather than its instances.
	MarkerClass
	// MarkerUnion accepts values matching any of its alternatives.
	MarkerUnion
	// MarkerMembers accepts values carrying every listed attribute.
	MarkerMembers
)

// Marker is the runtime representation of a static type, which the code
// generator embeds into checks at value-crossing boundaries.
type Marker struct {
	Kind         MarkerKind
	Name         string
	Alternatives []Marker
	Members      []string
}

// ErrNoMarker is returned for types that must never reach the runtime.
var ErrNoMarker = errors.New("type has no runtime representation")

func (m Marker) String() string {
	switch m.Kind {
	case MarkerClass:
		return "typeMarker(" + m.Name + ")"
	case MarkerUnion:
		alts := make([]string, len(m.Alternatives))
		for i, alt := range m.Alternatives {
			alts[i] = alt.String()
		}
		return "union([" + strings.Join(alts, ", ") + "])"
	case MarkerMembers:
		quoted := make([]string, len(m.Members))
		for i, name := range m.Members {
			quoted[i] = "'" + name + "'"
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}
	return m.Name
}

func named(name string) (Marker, error) {
	return Marker{Kind: MarkerName, Name: name}, nil
}

func (Dyn) Marker() (Marker, error)      { return named("object") }
func (Bot) Marker() (Marker, error)      { return Marker{}, ErrNoMarker }
func (Module) Marker() (Marker, error)   { return named("object") }
func (List) Marker() (Marker, error)     { return named("list") }
func (TopList) Marker() (Marker, error)  { return named("list") }
func (Set) Marker() (Marker, error)      { return named("set") }
func (Dict) Marker() (Marker, error)     { return named("dict") }
func (Tuple) Marker() (Marker, error)    { return named("tuple") }
func (HTuple) Marker() (Marker, error)   { return named("tuple") }
func (Function) Marker() (Marker, error) { return named("callable") }

func (t Primitive) Marker() (Marker, error) { return named(t.Tag()) }
func (t Instance) Marker() (Marker, error)  { return named(t.Class.Name) }

func (c *Class) Marker() (Marker, error) {
	return Marker{Kind: MarkerClass, Name: c.Name}, nil
}

func (t Structural) Marker() (Marker, error) {
	return Marker{Kind: MarkerMembers, Members: slices.Sorted(maps.Keys(t.Members))}, nil
}

func (t Union) Marker() (Marker, error) {
	alts := make([]Marker, len(t.Alternatives))
	for i, alt := range t.Alternatives {
		m, err := alt.Marker()
		if err != nil {
			return Marker{}, err
		}
		alts[i] = m
	}
	return Marker{Kind: MarkerUnion, Alternatives: alts}, nil
}

func (t Alias) Marker() (Marker, error) {
	if t.Class {
		return Marker{Kind: MarkerClass, Name: t.Path}, nil
	}
	return Marker{Kind: MarkerPath, Name: t.Path}, nil
}
