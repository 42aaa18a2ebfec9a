package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mroNames(t *testing.T, c *Class) []string {
	t.Helper()
	mro, err := c.MRO()
	require.NoError(t, err)
	names := make([]string, len(mro))
	for i, cls := range mro {
		if class, ok := cls.(*Class); ok {
			names[i] = class.Name
		} else {
			names[i] = cls.String()
		}
	}
	return names
}

func TestMRODiamond(t *testing.T) {
	h := NewHierarchy()
	a, b, c, d := h.NewClass("A"), h.NewClass("B"), h.NewClass("C"), h.NewClass("D")
	require.NoError(t, b.Inherit(a))
	require.NoError(t, c.Inherit(a))
	require.NoError(t, d.Inherit(b))
	require.NoError(t, d.Inherit(c))

	assert.Equal(t, []string{"D", "B", "C", "A"}, mroNames(t, d))

	for _, cls := range []*Class{a, b, c, d} {
		assert.True(t, cls.TryInitialize())
	}
	// memoized result is the same
	assert.Equal(t, []string{"D", "B", "C", "A"}, mroNames(t, d))
}

func TestMRODynTail(t *testing.T) {
	h := NewHierarchy()
	a, b := h.NewClass("A"), h.NewClass("B")
	require.NoError(t, a.Inherit(Dyn{}))
	require.NoError(t, b.Inherit(a))

	assert.Equal(t, []string{"B", "A", "Dyn"}, mroNames(t, b))
	assert.True(t, b.SubtypeOf(h.NewClass("Unrelated")))
}

func TestMROInconsistent(t *testing.T) {
	h := NewHierarchy()
	x, y := h.NewClass("X"), h.NewClass("Y")
	a, b := h.NewClass("A"), h.NewClass("B")
	require.NoError(t, a.Inherit(x))
	require.NoError(t, a.Inherit(y))
	require.NoError(t, b.Inherit(y))
	require.NoError(t, b.Inherit(x))
	z := h.NewClass("Z")
	require.NoError(t, z.Inherit(a))
	require.NoError(t, z.Inherit(b))

	_, err := z.MRO()
	assert.ErrorIs(t, err, ErrInconsistentMRO)
}

func TestInherit(t *testing.T) {
	h := NewHierarchy()
	a, b := h.NewClass("A"), h.NewClass("B")
	require.NoError(t, b.Inherit(a))

	assert.ErrorIs(t, a.Inherit(b), ErrInheritanceCycle)
	c, d := h.NewClass("C"), h.NewClass("D")
	require.NoError(t, c.Inherit(Dyn{}))
	require.NoError(t, c.Inherit(a))
	require.NoError(t, d.Inherit(b))
	require.NoError(t, d.Inherit(c))
	assert.ErrorIs(t, a.Inherit(d), ErrInheritanceCycle)
	assert.Error(t, a.Inherit(Int()))
	assert.Error(t, a.Inherit(NewHierarchy().NewClass("Foreign")))

	assert.True(t, a.TryInitialize())
	assert.ErrorIs(t, a.SetMember("m", Int()), ErrClassFrozen)
	assert.ErrorIs(t, a.Inherit(Dyn{}), ErrClassFrozen)
}

func TestTryInitialize(t *testing.T) {
	h := NewHierarchy()
	a, b := h.NewClass("A"), h.NewClass("B")
	require.NoError(t, b.Inherit(a))
	require.NoError(t, b.Inherit(Dyn{}))

	assert.False(t, b.TryInitialize())
	assert.True(t, a.TryInitialize())
	assert.True(t, b.TryInitialize())
	assert.True(t, b.Initialized())
}

func TestClassLookup(t *testing.T) {
	h := NewHierarchy()
	base, derived := h.NewClass("Base"), h.NewClass("Derived")
	require.NoError(t, derived.Inherit(base))

	method := Function{From: Positional{Types: []Type{Dyn{}, Int()}}, To: Str()}
	require.NoError(t, base.SetMember("m", method))
	require.NoError(t, base.SetField("f", Int()))
	require.NoError(t, derived.SetField("g", Str()))

	t.Run("uninitialized lookups are Bot", func(t *testing.T) {
		got, ok := Instance{Class: derived}.Member("missing", DefaultFields)
		assert.True(t, ok)
		assert.Equal(t, Bot{}, got)
	})

	require.True(t, base.TryInitialize())
	require.True(t, derived.TryInitialize())

	inst := Instance{Class: derived}
	cases := map[string]Type{
		"f":        Int(),
		"g":        Str(),
		"m":        method.Bind(),
		"__hash__": Function{From: Positional{Types: []Type{}}, To: Int()},
	}
	for name, want := range cases {
		t.Run("instance "+name, func(t *testing.T) {
			got, ok := inst.Member(name, DefaultFields)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "%s != %s", want, got)
		})
	}

	t.Run("class member is unbound", func(t *testing.T) {
		got, ok := derived.Member("m", DefaultFields)
		require.True(t, ok)
		assert.Equal(t, method, got)

		_, ok = derived.Member("f", DefaultFields)
		assert.False(t, ok)
	})

	t.Run("initialized lookups fail", func(t *testing.T) {
		_, ok := inst.Member("missing", DefaultFields)
		assert.False(t, ok)
	})

	t.Run("metaclass members", func(t *testing.T) {
		meta := h.NewClass("Meta")
		require.NoError(t, meta.SetMember("create", Function{From: Positional{Types: []Type{Dyn{}}}, To: Int()}))
		require.True(t, meta.TryInitialize())
		cls := h.NewClass("WithMeta")
		require.NoError(t, cls.SetMetaclass(meta))
		require.True(t, cls.TryInitialize())

		got, ok := cls.Member("create", DefaultFields)
		require.True(t, ok)
		assert.Equal(t, Function{From: Positional{Types: []Type{}}, To: Int()}, got)
	})

	t.Run("dyn ancestor answers Dyn", func(t *testing.T) {
		open := h.NewClass("Open")
		require.NoError(t, open.Inherit(Dyn{}))
		require.True(t, open.TryInitialize())
		got, ok := Instance{Class: open}.Member("anything", DefaultFields)
		require.True(t, ok)
		assert.Equal(t, Dyn{}, got)
	})
}
