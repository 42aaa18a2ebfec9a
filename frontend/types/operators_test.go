package types

import (
	"testing"

	"github.com/cottand/gradual/frontend/op"
	"github.com/stretchr/testify/assert"
)

func TestApplyBinop(t *testing.T) {
	c := NewConsistency(nil)
	cases := []struct {
		op          op.Op
		left, right Type
		want        Type // nil when the combination is rejected
	}{
		{op.Add, Int(), Int(), Int()},
		{op.Add, Int(), Float(), Float()},
		{op.Add, Bool(), Bool(), Int()},
		{op.Sub, SingletonInt(1), Int(), Int()},
		{op.Div, Int(), Int(), Float()},
		{op.FloorDiv, Float(), Int(), Float()},
		{op.Pow, Bool(), Float(), Float()},
		{op.LShift, Int(), Bool(), Int()},
		{op.LShift, Float(), Int(), nil},
		{op.BitAnd, Bool(), Bool(), Bool()},
		{op.BitOr, Bool(), Int(), Int()},
		{op.Add, Str(), Str(), Str()},
		{op.Mult, Str(), Int(), Str()},
		{op.Mult, Bool(), Str(), Str()},
		{op.Sub, Str(), Str(), nil},
		{op.Add, Str(), Int(), nil},
		{op.Mult, Str(), Float(), nil},
		{op.Add, List{Elts: Int()}, List{Elts: Str()}, List{Elts: Union{Alternatives: []Type{Int(), Str()}}}},
		{op.Mult, Int(), List{Elts: Str()}, List{Elts: Str()}},
		{op.Sub, List{Elts: Int()}, List{Elts: Int()}, nil},
		{op.Add, Dyn{}, Str(), Dyn{}},
		{op.MatMult, Int(), Dyn{}, Dyn{}},
		{op.Add, Bot{}, Int(), Bot{}},
		{op.Add, Alias{Path: "T", Underlying: Int()}, Int(), Int()},
		{op.Add, Void(), Int(), nil},
		{op.MatMult, Int(), Int(), nil},
	}
	for _, c2 := range cases {
		t.Run(c2.left.String()+" "+c2.op.Symbol()+" "+c2.right.String(), func(t *testing.T) {
			got, ok := c.ApplyBinop(c2.op, c2.left, c2.right)
			if c2.want == nil {
				assert.False(t, ok, "got %v", got)
				return
			}
			if assert.True(t, ok) {
				assert.True(t, c2.want.Equal(got), "want %s, got %s", c2.want, got)
			}
		})
	}
}

func TestApplyUnop(t *testing.T) {
	c := NewConsistency(nil)
	cases := []struct {
		op      op.Op
		operand Type
		want    Type
	}{
		{op.USub, Int(), Int()},
		{op.USub, Bool(), Int()},
		{op.UAdd, Float(), Float()},
		{op.Invert, Int(), Int()},
		{op.Invert, Float(), nil},
		{op.Not, Str(), Bool()},
		{op.Not, Dyn{}, Bool()},
		{op.USub, Dyn{}, Dyn{}},
		{op.USub, Bot{}, Bot{}},
		{op.USub, Str(), nil},
	}
	for _, c2 := range cases {
		t.Run(c2.op.Symbol()+c2.operand.String(), func(t *testing.T) {
			got, ok := c.ApplyUnop(c2.op, c2.operand)
			if c2.want == nil {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, c2.want, got)
		})
	}
}
