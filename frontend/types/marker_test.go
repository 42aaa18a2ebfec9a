package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker(t *testing.T) {
	h := NewHierarchy()
	cls := h.NewClass("Point")

	cases := map[string]Type{
		"object":                Dyn{},
		"int":                   SingletonInt(2),
		"str":                   Str(),
		"list":                  List{Elts: Int()},
		"tuple":                 HTuple{Elts: Int()},
		"callable":              Function{From: Arbitrary{}, To: Dyn{}},
		"Point":                 Instance{Class: cls},
		"typeMarker(Point)":     cls,
		"['a', 'b']":            Structural{Members: map[string]Type{"b": Int(), "a": Int()}},
		"union([int, str])":     Union{Alternatives: []Type{Int(), Str()}},
		"mod.Point":             Alias{Path: "mod.Point", Underlying: Instance{Class: cls}},
		"typeMarker(mod.Point)": Alias{Path: "mod.Point", Underlying: cls, Class: true},
	}
	for want, ty := range cases {
		t.Run(want, func(t *testing.T) {
			m, err := ty.Marker()
			require.NoError(t, err)
			assert.Equal(t, want, m.String())
		})
	}

	_, err := Bot{}.Marker()
	assert.ErrorIs(t, err, ErrNoMarker)
}
