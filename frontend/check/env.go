package check

import (
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/gradual/frontend/types"
)

// Env maps the identifiers of a scope to their static types.
//
// Env is persistent: With and Merge return new environments and leave the
// receiver untouched, so scopes never share bindings except by explicit copy.
// The zero Env is empty and ready to use.
type Env struct {
	m *immutable.Map[string, types.Type]
}

func NewEnv() Env {
	return Env{m: immutable.NewMap[string, types.Type](nil)}
}

// EnvOf builds an Env from a map.
func EnvOf(bindings map[string]types.Type) Env {
	b := immutable.NewMapBuilder[string, types.Type](nil)
	for name, t := range bindings {
		b.Set(name, t)
	}
	return Env{m: b.Map()}
}

func (e Env) Lookup(name string) (types.Type, bool) {
	if e.m == nil {
		return nil, false
	}
	return e.m.Get(name)
}

// TypeOf is the type of name, or Dyn if it is not bound.
func (e Env) TypeOf(name string) types.Type {
	if t, ok := e.Lookup(name); ok {
		return t
	}
	return types.Dyn{}
}

func (e Env) With(name string, t types.Type) Env {
	if e.m == nil {
		e = NewEnv()
	}
	return Env{m: e.m.Set(name, t)}
}

// Merge returns e extended with every binding of other, other winning on conflicts.
func (e Env) Merge(other Env) Env {
	if other.m == nil {
		return e
	}
	merged := e
	itr := other.m.Iterator()
	for !itr.Done() {
		name, t, _ := itr.Next()
		merged = merged.With(name, t)
	}
	return merged
}

func (e Env) Len() int {
	if e.m == nil {
		return 0
	}
	return e.m.Len()
}

// Names returns the bound identifiers in sorted order.
func (e Env) Names() []string {
	if e.m == nil {
		return nil
	}
	names := make([]string, 0, e.m.Len())
	itr := e.m.Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (e Env) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, name := range e.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name + ": " + e.TypeOf(name).String())
	}
	sb.WriteString("}")
	return sb.String()
}
