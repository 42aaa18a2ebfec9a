package types

import (
	"maps"
	"slices"
)

// Consistency decides the relations between types used by the checker:
// assignability, joins, operator typing and call applicability.
//
// Structural comparisons look members up through Fields.
type Consistency struct {
	Fields FieldTable
}

func NewConsistency(fields FieldTable) *Consistency {
	if fields == nil {
		fields = DefaultFields
	}
	return &Consistency{Fields: fields}
}

// Assignable reports whether a value of type source may be stored where
// target is expected.
//
// Dyn flows both ways. Bot flows into anything but nothing except Dyn flows
// into Bot. Containers are covariant, which is a deliberate simplification.
func (c *Consistency) Assignable(target, source Type) bool {
	if target.Equal(source) {
		return true
	}
	switch source.(type) {
	case Dyn, Bot:
		return true
	}
	switch t := target.(type) {
	case Dyn:
		return true
	case Bot:
		return false
	case Alias:
		return c.Assignable(t.Underlying, source)
	}
	switch s := source.(type) {
	case Alias:
		return c.Assignable(target, s.Underlying)
	case Union:
		for _, alt := range s.Alternatives {
			if !c.Assignable(target, alt) {
				return false
			}
		}
		return true
	}

	switch t := target.(type) {
	case Union:
		return slices.ContainsFunc(t.Alternatives, func(alt Type) bool {
			return c.Assignable(alt, source)
		})
	case Primitive:
		s, ok := source.(Primitive)
		return ok && primitiveWidens(t, s)
	case *Class:
		s, ok := source.(*Class)
		return ok && s.SubtypeOf(t)
	case Instance:
		s, ok := source.(Instance)
		return ok && s.Class.SubtypeOf(t.Class)
	case Structural:
		for name, want := range t.Members {
			got, ok := source.Member(name, c.Fields)
			if !ok || !c.Assignable(want, got) {
				return false
			}
		}
		return true
	case List:
		s, ok := source.(List)
		return ok && c.Assignable(t.Elts, s.Elts)
	case TopList:
		_, ok := source.(List)
		return ok
	case Set:
		s, ok := source.(Set)
		return ok && c.Assignable(t.Elts, s.Elts)
	case Dict:
		s, ok := source.(Dict)
		return ok && c.Assignable(t.Keys, s.Keys) && c.Assignable(t.Values, s.Values)
	case Tuple:
		s, ok := source.(Tuple)
		return ok && len(s.Elts) == len(t.Elts) && c.allAssignable(t.Elts, s.Elts)
	case HTuple:
		switch s := source.(type) {
		case HTuple:
			return c.Assignable(t.Elts, s.Elts)
		case Tuple:
			for _, elt := range s.Elts {
				if !c.Assignable(t.Elts, elt) {
					return false
				}
			}
			return true
		}
		return false
	case Function:
		s, ok := source.(Function)
		return ok && c.argsAssignable(t.From, s.From) && c.Assignable(t.To, s.To)
	}
	return false
}

// primitiveWidens follows the numeric tower bool < int < float.
func primitiveWidens(target, source Primitive) bool {
	switch target.Kind {
	case KindFloat:
		return source.Kind == KindInt || source.Kind == KindSingletonInt || source.Kind == KindBool
	case KindInt:
		return source.Kind == KindSingletonInt || source.Kind == KindBool
	}
	return false
}

func (c *Consistency) allAssignable(targets, sources []Type) bool {
	for i := range targets {
		if !c.Assignable(targets[i], sources[i]) {
			return false
		}
	}
	return true
}

// argsAssignable: may a function called with convention source be used where
// one called with convention target is expected. Parameters are contravariant.
func (c *Consistency) argsAssignable(target, source ArgTypes) bool {
	if _, ok := target.(Arbitrary); ok {
		return true
	}
	if _, ok := source.(Arbitrary); ok {
		return true
	}
	tparams, sparams := ParamTypes(target), ParamTypes(source)
	_, tapprox := target.(ApproxNamed)
	_, sapprox := source.(ApproxNamed)
	if tapprox || sapprox {
		n := min(len(tparams), len(sparams))
		return c.allAssignable(sparams[:n], tparams[:n])
	}
	if len(tparams) != len(sparams) {
		return false
	}
	if tn, ok := target.(Named); ok {
		if sn, ok := source.(Named); ok {
			for i := range tn.Bindings {
				if tn.Bindings[i].Name != sn.Bindings[i].Name {
					return false
				}
			}
		}
	}
	return c.allAssignable(sparams, tparams)
}

// Join is the least upper bound of ts, used to merge branches and successive
// assignments. Bot is its identity and Dyn absorbs everything. Unrelated types
// form a Union; unions are flattened and alternatives strictly subsumed by
// another are dropped. Of two types that accept each other without being
// equal, the less precise one is kept. Joining nothing at all is Dyn.
func (c *Consistency) Join(ts ...Type) Type {
	if len(ts) == 0 {
		return Dyn{}
	}
	var alts []Type
	var add func(t Type) bool
	add = func(t Type) bool {
		switch t := t.(type) {
		case Bot:
			return true
		case Dyn:
			return false
		case Union:
			for _, alt := range t.Alternatives {
				if !add(alt) {
					return false
				}
			}
			return true
		}
		for {
			i := slices.IndexFunc(alts, func(existing Type) bool {
				return c.Assignable(existing, t)
			})
			if i < 0 {
				break
			}
			existing := alts[i]
			if !c.Assignable(t, existing) {
				return true
			}
			t = lessPrecise(existing, t)
			alts = slices.Delete(alts, i, i+1)
		}
		alts = slices.DeleteFunc(alts, func(existing Type) bool {
			return c.Assignable(t, existing)
		})
		alts = append(alts, t)
		return true
	}
	for _, t := range ts {
		if !add(t) {
			return Dyn{}
		}
	}
	switch len(alts) {
	case 0:
		return Bot{}
	case 1:
		return alts[0]
	}
	return Union{Alternatives: alts}
}

// lessPrecise picks one of two mutually assignable types regardless of their
// order: the one mentioning Dyn more often, else the one that is not an
// Alias, else the first by name.
func lessPrecise(a, b Type) Type {
	if a.Equal(b) {
		return a
	}
	if da, db := dynCount(a), dynCount(b); da != db {
		if da > db {
			return a
		}
		return b
	}
	_, aliasA := a.(Alias)
	_, aliasB := b.(Alias)
	if aliasA != aliasB {
		if aliasA {
			return b
		}
		return a
	}
	if b.String() < a.String() {
		return b
	}
	return a
}

// dynCount is the number of Dyn and Arbitrary occurrences in t.
func dynCount(t Type) int {
	sum := func(ts ...Type) int {
		n := 0
		for _, t := range ts {
			n += dynCount(t)
		}
		return n
	}
	switch t := t.(type) {
	case Dyn:
		return 1
	case List:
		return dynCount(t.Elts)
	case Set:
		return dynCount(t.Elts)
	case HTuple:
		return dynCount(t.Elts)
	case Dict:
		return sum(t.Keys, t.Values)
	case Tuple:
		return sum(t.Elts...)
	case Union:
		return sum(t.Alternatives...)
	case Alias:
		return dynCount(t.Underlying)
	case Structural:
		return sum(slices.Collect(maps.Values(t.Members))...)
	case Function:
		n := dynCount(t.To)
		if _, arbitrary := t.From.(Arbitrary); arbitrary {
			n++
		}
		return n + sum(ParamTypes(t.From)...)
	}
	return 0
}

// IterableType is the element type produced by iterating over t.
func (c *Consistency) IterableType(t Type) (Type, bool) {
	switch t := Unalias(t).(type) {
	case List:
		return t.Elts, true
	case Dyn:
		return Dyn{}, true
	case Bot:
		return Bot{}, true
	}
	return nil, false
}

// MemberAssignable reports whether the elements of iterable may be bound to a
// loop target of type target.
func (c *Consistency) MemberAssignable(target, iterable Type) bool {
	elt, ok := c.IterableType(iterable)
	return ok && c.Assignable(target, elt)
}

// InstanceAssignable reports whether instances of the exception class(es)
// excType may be bound to a variable of type target.
func (c *Consistency) InstanceAssignable(target, excType Type) bool {
	switch e := Unalias(excType).(type) {
	case Dyn, Bot:
		return true
	case *Class:
		return c.Assignable(target, Instance{Class: e})
	case Tuple:
		for _, elt := range e.Elts {
			if !c.InstanceAssignable(target, elt) {
				return false
			}
		}
		return true
	case HTuple:
		return c.InstanceAssignable(target, e.Elts)
	case Union:
		for _, alt := range e.Alternatives {
			if !c.InstanceAssignable(target, alt) {
				return false
			}
		}
		return true
	}
	return false
}
