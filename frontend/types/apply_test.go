package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func args(ts ...Type) CallShape { return CallShape{Args: ts} }

func TestApplyPositional(t *testing.T) {
	c := NewConsistency(nil)
	f := Function{From: Positional{Types: []Type{Int(), Str()}}, To: Float()}

	got, err := c.Apply(f, args(Int(), Str()))
	require.NoError(t, err)
	assert.Equal(t, Float(), got)

	_, err = c.Apply(f, args(Str(), Int()))
	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, Int(), callErr.Expected)
	assert.Equal(t, Str(), callErr.Given)

	_, err = c.Apply(f, args(Int()))
	assert.ErrorContains(t, err, "expects 2 arguments, but was given 1")

	_, err = c.Apply(f, CallShape{Args: []Type{Int()}, Keywords: []Keyword{{"y", Str()}}})
	assert.ErrorContains(t, err, "only accepts positional arguments")
}

func TestApplyNamed(t *testing.T) {
	c := NewConsistency(nil)
	f := Function{From: Named{Bindings: []Binding{{"x", Int()}, {"y", Str()}}}, To: Void()}

	cases := map[string]struct {
		call CallShape
		err  string
	}{
		"positional":   {args(Int(), Str()), ""},
		"keywords":     {CallShape{Keywords: []Keyword{{"y", Str()}, {"x", Int()}}}, ""},
		"mixed":        {CallShape{Args: []Type{Int()}, Keywords: []Keyword{{"y", Str()}}}, ""},
		"too many":     {args(Int(), Str(), Str()), "at most 2 arguments"},
		"missing":      {args(Int()), "missing an argument for parameter y"},
		"unknown":      {CallShape{Args: []Type{Int(), Str()}, Keywords: []Keyword{{"z", Str()}}}, "no parameter named z"},
		"multiple":     {CallShape{Args: []Type{Int(), Str()}, Keywords: []Keyword{{"x", Int()}}}, "multiple values for parameter x"},
		"keyword type": {CallShape{Args: []Type{Int()}, Keywords: []Keyword{{"y", Int()}}}, "expected argument y to have type str"},
		"starargs":     {CallShape{Starargs: List{Elts: Dyn{}}}, "cannot be called with *args"},
	}
	for name, c2 := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := c.Apply(f, c2.call)
			if c2.err == "" {
				require.NoError(t, err)
				assert.Equal(t, Void(), got)
				return
			}
			assert.ErrorContains(t, err, c2.err)
		})
	}
}

func TestApplyApproxNamed(t *testing.T) {
	c := NewConsistency(nil)
	f := Function{From: ApproxNamed{Bindings: []Binding{{"x", Int()}, {"y", Str()}}}, To: Int()}

	for name, call := range map[string]CallShape{
		"fewer":          args(Int()),
		"unknown kw":     {Keywords: []Keyword{{"z", Float()}}},
		"extra":          args(Int(), Str(), Float()),
		"kwargs give up": {Args: []Type{Str()}, Kwargs: Dict{Keys: Str(), Values: Dyn{}}},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := c.Apply(f, call)
			require.NoError(t, err)
			assert.Equal(t, Int(), got)
		})
	}

	_, err := c.Apply(f, args(Str()))
	assert.Error(t, err)
}

func TestApplyDynamic(t *testing.T) {
	c := NewConsistency(nil)
	wild := CallShape{Args: []Type{Int(), Str()}, Keywords: []Keyword{{"k", Void()}}, Starargs: Dyn{}}

	got, err := c.Apply(Dyn{}, wild)
	require.NoError(t, err)
	assert.Equal(t, Dyn{}, got)

	got, err = c.Apply(Bot{}, wild)
	require.NoError(t, err)
	assert.Equal(t, Bot{}, got)

	got, err = c.Apply(Function{From: Arbitrary{}, To: Str()}, wild)
	require.NoError(t, err)
	assert.Equal(t, Str(), got)

	_, err = c.Apply(Int(), args())
	assert.ErrorContains(t, err, "Cannot call value of type int")
}

func TestApplyClass(t *testing.T) {
	c := NewConsistency(nil)
	h := NewHierarchy()
	point := h.NewClass("Point")
	require.NoError(t, point.SetMember("__init__", Function{
		From: Named{Bindings: []Binding{{"self", Dyn{}}, {"x", Int()}}},
		To:   Void(),
	}))
	require.True(t, point.TryInitialize())

	got, err := c.Apply(point, args(Int()))
	require.NoError(t, err)
	assert.Equal(t, Instance{Class: point}, got)

	_, err = c.Apply(point, args(Str()))
	assert.Error(t, err)

	plain := h.NewClass("Plain")
	require.True(t, plain.TryInitialize())
	got, err = c.Apply(plain, args(Int(), Int()))
	require.NoError(t, err)
	assert.Equal(t, Instance{Class: plain}, got)
}
