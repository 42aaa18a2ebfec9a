package types

import (
	"errors"
	"fmt"

	"github.com/cottand/gradual/internal/log"
	"github.com/cottand/gradual/util"
	"github.com/hashicorp/go-set/v3"
)

var mroLogger = log.DefaultLogger.With("section", "mro")

// ClassID identifies a Class within its Hierarchy.
type ClassID uint32

// dynParent stands for a Dyn base in Class.inherits.
const dynParent ClassID = 0

var (
	ErrClassFrozen      = errors.New("class is already initialized")
	ErrInconsistentMRO  = errors.New("cannot create a consistent method resolution order")
	ErrInheritanceCycle = errors.New("inheritance would create a cycle")
)

// Hierarchy is the arena owning the nominal classes of one compilation,
// and the memo of their linearizations.
//
// It is not safe for concurrent use.
type Hierarchy struct {
	classes []*Class
	mros    map[ClassID][]ClassID
	// mroDyn records which memoized linearizations end in Dyn
	mroDyn map[ClassID]bool
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		mros:   make(map[ClassID][]ClassID),
		mroDyn: make(map[ClassID]bool),
	}
}

// NewClass registers an empty, uninitialized class.
func (h *Hierarchy) NewClass(name string) *Class {
	c := &Class{
		Name:    name,
		id:      ClassID(len(h.classes) + 1),
		h:       h,
		members: make(map[string]Type),
		fields:  make(map[string]Type),
	}
	h.classes = append(h.classes, c)
	return c
}

func (h *Hierarchy) class(id ClassID) *Class {
	return h.classes[id-1]
}

// Class is a nominal class, supporting multiple inheritance.
//
// A Class is built incrementally (Inherit, SetMember, SetField, SetMetaclass)
// and frozen once TryInitialize succeeds. It is shared by reference by every
// Instance and subclass that refers to it.
type Class struct {
	Name string

	id       ClassID
	h        *Hierarchy
	inherits []ClassID
	// members are class-level, such as methods
	members map[string]Type
	// fields are set on instances
	fields      map[string]Type
	initialized bool
	// instanceOf is the metaclass, may be nil
	instanceOf *Class
}

func (*Class) isType()          {}
func (c *Class) String() string { return "Type[" + c.Name + "]" }
func (c *Class) Bind() Type     { return c }
func (c *Class) Equal(o Type) bool {
	other, ok := o.(*Class)
	return ok && other == c
}

func (c *Class) ID() ClassID       { return c.id }
func (c *Class) Initialized() bool { return c.initialized }

// Parents returns the declared bases of c, each a *Class or Dyn.
func (c *Class) Parents() []Type {
	out := make([]Type, len(c.inherits))
	for i, id := range c.inherits {
		if id == dynParent {
			out[i] = Dyn{}
		} else {
			out[i] = c.h.class(id)
		}
	}
	return out
}

// Inherit appends a base, which must be a *Class of the same Hierarchy or Dyn.
func (c *Class) Inherit(parent Type) error {
	if c.initialized {
		return fmt.Errorf("%s: %w", c.Name, ErrClassFrozen)
	}
	switch p := parent.(type) {
	case Dyn:
		c.inherits = append(c.inherits, dynParent)
		return nil
	case *Class:
		if p.h != c.h {
			return fmt.Errorf("%s: base %s belongs to a different hierarchy", c.Name, p.Name)
		}
		if p.descendsFrom(c) {
			return fmt.Errorf("%s(%s): %w", c.Name, p.Name, ErrInheritanceCycle)
		}
		c.inherits = append(c.inherits, p.id)
		return nil
	default:
		return fmt.Errorf("%s: cannot inherit from a value of type %s", c.Name, parent)
	}
}

func (c *Class) SetMember(name string, t Type) error {
	if c.initialized {
		return fmt.Errorf("%s.%s: %w", c.Name, name, ErrClassFrozen)
	}
	c.members[name] = t
	return nil
}

func (c *Class) SetField(name string, t Type) error {
	if c.initialized {
		return fmt.Errorf("%s.%s: %w", c.Name, name, ErrClassFrozen)
	}
	c.fields[name] = t
	return nil
}

func (c *Class) SetMetaclass(meta *Class) error {
	if c.initialized {
		return fmt.Errorf("%s: %w", c.Name, ErrClassFrozen)
	}
	c.instanceOf = meta
	return nil
}

// TryInitialize freezes c if every base is Dyn or itself initialized,
// and reports whether c is initialized.
func (c *Class) TryInitialize() bool {
	if c.initialized {
		return true
	}
	for _, id := range c.inherits {
		if id != dynParent && !c.h.class(id).initialized {
			return false
		}
	}
	c.initialized = true
	return true
}

// SubtypeOf reports whether other is c or one of its ancestors.
// A Dyn ancestor may stand for any class, so it makes c a subtype of everything.
func (c *Class) SubtypeOf(other *Class) bool {
	if other == c {
		return true
	}
	for _, id := range c.inherits {
		if id == dynParent || c.h.class(id).SubtypeOf(other) {
			return true
		}
	}
	return false
}

// descendsFrom follows declared class bases only, ignoring Dyn ones.
func (c *Class) descendsFrom(other *Class) bool {
	var pending util.Stack[ClassID]
	pending.Push(c.id)
	visited := set.New[ClassID](0)
	for {
		id, ok := pending.Pop()
		if !ok {
			return false
		}
		if id == other.id && c.h == other.h {
			return true
		}
		if !visited.Insert(id) {
			continue
		}
		for _, parent := range c.h.class(id).inherits {
			if parent != dynParent {
				pending.Push(parent)
			}
		}
	}
}

// MRO is the C3 linearization of c: c itself, then its ancestors.
// If any ancestor branch ends in Dyn, a trailing Dyn is appended.
//
// The result is memoized once c is initialized.
func (c *Class) MRO() ([]Type, error) {
	ids, dyn, err := c.h.linearize(c.id)
	if err != nil {
		return nil, err
	}
	out := make([]Type, 0, len(ids)+1)
	for _, id := range ids {
		out = append(out, c.h.class(id))
	}
	if dyn {
		out = append(out, Dyn{})
	}
	return out, nil
}

func (h *Hierarchy) linearize(id ClassID) ([]ClassID, bool, error) {
	if mro, ok := h.mros[id]; ok {
		return mro, h.mroDyn[id], nil
	}
	c := h.class(id)
	var (
		seqs    [][]ClassID
		direct  []ClassID
		seen    = set.New[ClassID](len(c.inherits))
		gotoDyn bool
	)
	for _, parent := range c.inherits {
		if parent == dynParent {
			gotoDyn = true
			continue
		}
		if !seen.Insert(parent) {
			continue
		}
		parentMRO, parentDyn, err := h.linearize(parent)
		if err != nil {
			return nil, false, err
		}
		gotoDyn = gotoDyn || parentDyn
		seqs = append(seqs, parentMRO)
		direct = append(direct, parent)
	}
	seqs = append(seqs, direct)

	merged, err := c3merge(seqs)
	if err != nil {
		mroLogger.Debug("linearization failed", "class", c.Name, "error", err)
		return nil, false, fmt.Errorf("%s: %w", c.Name, err)
	}
	mro := append([]ClassID{id}, merged...)
	if c.initialized {
		h.mros[id] = mro
		h.mroDyn[id] = gotoDyn
	}
	return mro, gotoDyn, nil
}

// c3merge repeatedly takes the first head that appears in no sequence's tail.
func c3merge(seqs [][]ClassID) ([]ClassID, error) {
	// copy the outer slice, as heads are dropped below
	pending := make([][]ClassID, 0, len(seqs))
	for _, s := range seqs {
		if len(s) > 0 {
			pending = append(pending, s)
		}
	}
	var out []ClassID
	for len(pending) > 0 {
		tails := set.New[ClassID](len(pending))
		for _, s := range pending {
			tails.InsertSlice(s[1:])
		}
		var head ClassID
		found := false
		for _, s := range pending {
			if !tails.Contains(s[0]) {
				head, found = s[0], true
				break
			}
		}
		if !found {
			return nil, ErrInconsistentMRO
		}
		out = append(out, head)

		next := pending[:0]
		for _, s := range pending {
			if s[0] == head {
				s = s[1:]
			}
			if len(s) > 0 {
				next = append(next, s)
			}
		}
		pending = next
	}
	return out, nil
}

// mroOrGiveUp returns the linearization of c, or ok=false when it cannot be
// computed, in which case callers fall back like an unresolved lookup.
func (c *Class) mroOrGiveUp() (mro []Type, ok bool) {
	mro, err := c.MRO()
	if err != nil {
		return nil, false
	}
	return mro, true
}

// unresolved is what a failed lookup yields: Bot while the class is still
// being built, a definite failure afterward.
func (c *Class) unresolved() (Type, bool) {
	if c.initialized {
		return nil, false
	}
	return Bot{}, true
}

// Member looks up a class-level attribute: class members along the MRO, then
// members of the metaclass, then the members every object has.
func (c *Class) Member(name string, fields FieldTable) (Type, bool) {
	mro, ok := c.mroOrGiveUp()
	if !ok {
		return c.unresolved()
	}
	for _, cls := range mro {
		switch cls := cls.(type) {
		case *Class:
			if t, ok := cls.members[name]; ok {
				return t, true
			}
		case Dyn:
			return Dyn{}, true
		}
	}
	for _, cls := range mro {
		if cls, isClass := cls.(*Class); isClass && cls.instanceOf != nil {
			if t, ok := cls.instanceOf.Member(name, fields); ok {
				return t.Bind(), true
			}
		}
	}
	if t, ok := fields.Basics(c)[name]; ok {
		return t, true
	}
	return c.unresolved()
}

// instanceMember looks up an attribute on instances of c: instance fields along
// the MRO, then bound class members along the MRO, then bound basic members.
func (c *Class) instanceMember(name string, fields FieldTable, self Instance) (Type, bool) {
	mro, ok := c.mroOrGiveUp()
	if !ok {
		return c.unresolved()
	}
	for _, cls := range mro {
		if cls, isClass := cls.(*Class); isClass {
			if t, ok := cls.fields[name]; ok {
				return t, true
			}
		}
	}
	for _, cls := range mro {
		switch cls := cls.(type) {
		case *Class:
			if t, ok := cls.members[name]; ok {
				return t.Bind(), true
			}
		case Dyn:
			return Dyn{}, true
		}
	}
	if t, ok := fields.Basics(self)[name]; ok {
		return t.Bind(), true
	}
	return c.unresolved()
}
