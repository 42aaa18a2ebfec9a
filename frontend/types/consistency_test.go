package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTypes() map[string]Type {
	h := NewHierarchy()
	cls := h.NewClass("C")
	cls.TryInitialize()
	return map[string]Type{
		"int":        Int(),
		"float":      Float(),
		"bool":       Bool(),
		"str":        Str(),
		"void":       Void(),
		"singleton":  SingletonInt(4),
		"class":      cls,
		"instance":   Instance{Class: cls},
		"structural": Structural{Members: map[string]Type{"real": Int()}},
		"module":     Module{Exports: map[string]Type{"x": Int()}},
		"union":      Union{Alternatives: []Type{Int(), Str()}},
		"list":       List{Elts: Int()},
		"dyn list":   List{Elts: Dyn{}},
		"set":        Set{Elts: Str()},
		"dict":       Dict{Keys: Str(), Values: Int()},
		"tuple":      Tuple{Elts: []Type{Int(), Str()}},
		"htuple":     HTuple{Elts: Int()},
		"function":   Function{From: Named{Bindings: []Binding{{"x", Int()}}}, To: Str()},
		"toplist":    TopList{},
		"alias":      Alias{Path: "m.T", Underlying: Int()},
	}
}

func TestAssignableProperties(t *testing.T) {
	c := NewConsistency(nil)
	for name, ty := range sampleTypes() {
		t.Run(name, func(t *testing.T) {
			assert.True(t, c.Assignable(ty, ty), "reflexive")
			assert.True(t, c.Assignable(Dyn{}, ty), "into Dyn")
			assert.True(t, c.Assignable(ty, Dyn{}), "from Dyn")
			assert.True(t, c.Assignable(ty, Bot{}), "from Bot")
			assert.False(t, c.Assignable(Bot{}, ty), "into Bot")
			assert.True(t, c.Join(Bot{}, ty).Equal(ty), "join with Bot")
			assert.True(t, c.Join(ty, ty).Equal(ty), "join idempotent")
		})
	}
	assert.True(t, c.Assignable(Bot{}, Bot{}))
	assert.True(t, c.Assignable(Bot{}, Dyn{}))
}

func TestJoinCommutes(t *testing.T) {
	c := NewConsistency(nil)
	samples := sampleTypes()
	for an, a := range samples {
		for bn, b := range samples {
			ab, ba := c.Join(a, b), c.Join(b, a)
			assert.True(t, ab.Equal(ba), "%s/%s: %s != %s", an, bn, ab, ba)
		}
	}
}

func TestJoin(t *testing.T) {
	c := NewConsistency(nil)
	cases := map[string]struct {
		in   []Type
		want Type
	}{
		"nothing":         {nil, Dyn{}},
		"only bot":        {[]Type{Bot{}, Bot{}}, Bot{}},
		"dyn absorbs":     {[]Type{Int(), Dyn{}, Str()}, Dyn{}},
		"unrelated":       {[]Type{Int(), Str()}, Union{Alternatives: []Type{Int(), Str()}}},
		"widening":        {[]Type{Bool(), Int()}, Int()},
		"singleton":       {[]Type{SingletonInt(1), SingletonInt(2)}, Union{Alternatives: []Type{SingletonInt(1), SingletonInt(2)}}},
		"subsumed":        {[]Type{SingletonInt(1), Int()}, Int()},
		"flattens unions": {[]Type{Union{Alternatives: []Type{Int(), Str()}}, Str(), Void()}, Union{Alternatives: []Type{Int(), Str(), Void()}}},
		"lists":           {[]Type{List{Elts: Bot{}}, List{Elts: Int()}}, List{Elts: Int()}},
		"dyn list":        {[]Type{List{Elts: Int()}, List{Elts: Dyn{}}}, List{Elts: Dyn{}}},
		"dyn list first":  {[]Type{List{Elts: Dyn{}}, List{Elts: Int()}}, List{Elts: Dyn{}}},
		"dyn list merges": {[]Type{List{Elts: Int()}, List{Elts: Str()}, List{Elts: Dyn{}}}, List{Elts: Dyn{}}},
		"alias":           {[]Type{Alias{Path: "m.T", Underlying: Int()}, Int()}, Int()},
		"alias last":      {[]Type{Int(), Alias{Path: "m.T", Underlying: Int()}}, Int()},
	}
	for name, c2 := range cases {
		t.Run(name, func(t *testing.T) {
			got := c.Join(c2.in...)
			assert.True(t, c2.want.Equal(got), "want %s, got %s", c2.want, got)
		})
	}
}

func TestAssignable(t *testing.T) {
	c := NewConsistency(nil)
	h := NewHierarchy()
	base, derived, other := h.NewClass("Base"), h.NewClass("Derived"), h.NewClass("Other")
	require.NoError(t, derived.Inherit(base))
	require.NoError(t, base.SetField("a", Int()))
	for _, cls := range []*Class{base, derived, other} {
		require.True(t, cls.TryInitialize())
	}
	hasA := Structural{Members: map[string]Type{"a": Int()}}
	intStr := Union{Alternatives: []Type{Int(), Str()}}

	cases := map[string]struct {
		target, source Type
		ok             bool
	}{
		"int to float":               {Float(), Int(), true},
		"float to int":               {Int(), Float(), false},
		"bool to int":                {Int(), Bool(), true},
		"singleton to int":           {Int(), SingletonInt(3), true},
		"int to singleton":           {SingletonInt(3), Int(), false},
		"str to int":                 {Int(), Str(), false},
		"subclass instance":          {Instance{Class: base}, Instance{Class: derived}, true},
		"superclass instance":        {Instance{Class: derived}, Instance{Class: base}, false},
		"subclass object":            {base, derived, true},
		"structural accepts field":   {hasA, Instance{Class: derived}, true},
		"structural rejects missing": {hasA, Instance{Class: other}, false},
		"structural builtin fields":  {Structural{Members: map[string]Type{"real": Int()}}, Int(), true},
		"into union":                 {intStr, Str(), true},
		"union into member":          {Int(), intStr, false},
		"union into wider union":     {Union{Alternatives: []Type{Int(), Str(), Void()}}, intStr, true},
		"list covariance":            {List{Elts: Float()}, List{Elts: Int()}, true},
		"list element mismatch":      {List{Elts: Int()}, List{Elts: Str()}, false},
		"toplist":                    {TopList{}, List{Elts: Str()}, true},
		"toplist rejects dict":       {TopList{}, Dict{Keys: Int(), Values: Int()}, false},
		"tuple arity":                {Tuple{Elts: []Type{Int()}}, Tuple{Elts: []Type{Int(), Int()}}, false},
		"htuple from tuple":          {HTuple{Elts: Int()}, Tuple{Elts: []Type{Int(), Bool()}}, true},
		"tuple from htuple":          {Tuple{Elts: []Type{Int()}}, HTuple{Elts: Int()}, false},
		"dict":                       {Dict{Keys: Str(), Values: Float()}, Dict{Keys: Str(), Values: Int()}, true},
		"alias target":               {Alias{Path: "T", Underlying: Float()}, Int(), true},
		"alias source":               {Int(), Alias{Path: "T", Underlying: Str()}, false},
		"function contravariant": {
			Function{From: Positional{Types: []Type{Int()}}, To: Dyn{}},
			Function{From: Positional{Types: []Type{Float()}}, To: Dyn{}},
			true,
		},
		"function parameter too narrow": {
			Function{From: Positional{Types: []Type{Float()}}, To: Dyn{}},
			Function{From: Positional{Types: []Type{Int()}}, To: Dyn{}},
			false,
		},
		"function covariant return": {
			Function{From: Positional{}, To: Float()},
			Function{From: Positional{}, To: Int()},
			true,
		},
		"function arity": {
			Function{From: Positional{Types: []Type{Int()}}, To: Dyn{}},
			Function{From: Positional{}, To: Dyn{}},
			false,
		},
		"arbitrary accepts any shape": {
			Function{From: Arbitrary{}, To: Int()},
			Function{From: Named{Bindings: []Binding{{"x", Str()}}}, To: Int()},
			true,
		},
		"named parameter names": {
			Function{From: Named{Bindings: []Binding{{"x", Int()}}}, To: Dyn{}},
			Function{From: Named{Bindings: []Binding{{"y", Int()}}}, To: Dyn{}},
			false,
		},
		"approx named prefix": {
			Function{From: Positional{Types: []Type{Int()}}, To: Dyn{}},
			Function{From: ApproxNamed{Bindings: []Binding{{"x", Int()}, {"y", Str()}}}, To: Dyn{}},
			true,
		},
	}
	for name, c2 := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c2.ok, c.Assignable(c2.target, c2.source))
		})
	}
}

func TestIterableType(t *testing.T) {
	c := NewConsistency(nil)

	elt, ok := c.IterableType(List{Elts: Int()})
	assert.True(t, ok)
	assert.Equal(t, Int(), elt)

	elt, ok = c.IterableType(Dyn{})
	assert.True(t, ok)
	assert.Equal(t, Dyn{}, elt)

	elt, ok = c.IterableType(Bot{})
	assert.True(t, ok)
	assert.Equal(t, Bot{}, elt)

	_, ok = c.IterableType(Int())
	assert.False(t, ok)

	assert.True(t, c.MemberAssignable(Float(), List{Elts: Int()}))
	assert.False(t, c.MemberAssignable(Str(), List{Elts: Int()}))
	assert.False(t, c.MemberAssignable(Dyn{}, Str()))
}

func TestInstanceAssignable(t *testing.T) {
	c := NewConsistency(nil)
	h := NewHierarchy()
	exc, valueErr, keyErr := h.NewClass("Exception"), h.NewClass("ValueError"), h.NewClass("KeyError")
	require.NoError(t, valueErr.Inherit(exc))
	require.NoError(t, keyErr.Inherit(exc))

	assert.True(t, c.InstanceAssignable(Instance{Class: exc}, valueErr))
	assert.False(t, c.InstanceAssignable(Instance{Class: valueErr}, exc))
	assert.True(t, c.InstanceAssignable(Instance{Class: exc}, Tuple{Elts: []Type{valueErr, keyErr}}))
	assert.False(t, c.InstanceAssignable(Instance{Class: keyErr}, Tuple{Elts: []Type{valueErr, keyErr}}))
	assert.True(t, c.InstanceAssignable(Int(), Dyn{}))
	assert.False(t, c.InstanceAssignable(Dyn{}, Int()))
}
