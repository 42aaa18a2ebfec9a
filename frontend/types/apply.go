package types

import "fmt"

// CallShape is what a call site passes to its callee.
type CallShape struct {
	Args     []Type
	Keywords []Keyword
	// Starargs is the type of a *args argument, nil if there is none
	Starargs Type
	// Kwargs is the type of a **kwargs argument, nil if there is none
	Kwargs Type
}

type Keyword struct {
	Name string
	Type Type
}

func (s CallShape) variadic() bool {
	return s.Starargs != nil || s.Kwargs != nil
}

// CallError explains why a call does not fit its callee.
type CallError struct {
	Callee Type
	Reason string
	// Param, Expected and Given are set for argument type mismatches
	Param    string
	Expected Type
	Given    Type
}

func (e *CallError) Error() string {
	if e.Expected != nil {
		return fmt.Sprintf("Function of type %s expected argument %s to have type %s, but was given a value of type %s",
			e.Callee, e.Param, e.Expected, e.Given)
	}
	return e.Reason
}

// Apply checks a call of a value of type callee and returns the type of the
// call's result.
//
// Dyn and Bot callees accept anything and propagate themselves. Calling a
// class constructs an instance, checking its __init__ if it has one.
func (c *Consistency) Apply(callee Type, call CallShape) (Type, error) {
	switch f := Unalias(callee).(type) {
	case Dyn:
		return Dyn{}, nil
	case Bot:
		return Bot{}, nil
	case Function:
		if err := c.applyArgs(f, call); err != nil {
			return nil, err
		}
		return f.To, nil
	case *Class:
		self := Instance{Class: f}
		if init, ok := self.Member("__init__", c.Fields); ok {
			if initFn, ok := Unalias(init).(Function); ok {
				if err := c.applyArgs(initFn, call); err != nil {
					return nil, err
				}
			}
		}
		return self, nil
	}
	return nil, &CallError{Callee: callee, Reason: fmt.Sprintf("Cannot call value of type %s", callee)}
}

func (c *Consistency) applyArgs(f Function, call CallShape) error {
	switch from := f.From.(type) {
	case Arbitrary:
		return nil
	case Positional:
		if len(call.Keywords) > 0 || call.variadic() {
			return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s only accepts positional arguments", f)}
		}
		if len(call.Args) != len(from.Types) {
			return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s expects %d arguments, but was given %d", f, len(from.Types), len(call.Args))}
		}
		for i, param := range from.Types {
			if !c.Assignable(param, call.Args[i]) {
				return &CallError{Callee: f, Param: fmt.Sprintf("#%d", i+1), Expected: param, Given: call.Args[i]}
			}
		}
		return nil
	case Named:
		if call.variadic() {
			return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s cannot be called with *args or **kwargs", f)}
		}
		return c.applyNamed(f, from.Bindings, call, true)
	case ApproxNamed:
		if call.variadic() {
			return nil
		}
		return c.applyNamed(f, from.Bindings, call, false)
	}
	return &CallError{Callee: f, Reason: fmt.Sprintf("Unknown calling convention %T", f.From)}
}

// applyNamed binds positional then keyword arguments to bindings. When strict,
// every binding must be bound exactly once and no unknown keyword may appear.
func (c *Consistency) applyNamed(f Function, bindings []Binding, call CallShape, strict bool) error {
	bound := make([]bool, len(bindings))
	for i, arg := range call.Args {
		if i >= len(bindings) {
			if strict {
				return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s expects at most %d arguments, but was given %d", f, len(bindings), len(call.Args))}
			}
			break
		}
		if !c.Assignable(bindings[i].Type, arg) {
			return &CallError{Callee: f, Param: bindings[i].Name, Expected: bindings[i].Type, Given: arg}
		}
		bound[i] = true
	}
	for _, kw := range call.Keywords {
		idx := -1
		for i, b := range bindings {
			if b.Name == kw.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			if strict {
				return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s has no parameter named %s", f, kw.Name)}
			}
			continue
		}
		if bound[idx] {
			return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s was given multiple values for parameter %s", f, kw.Name)}
		}
		if !c.Assignable(bindings[idx].Type, kw.Type) {
			return &CallError{Callee: f, Param: kw.Name, Expected: bindings[idx].Type, Given: kw.Type}
		}
		bound[idx] = true
	}
	if strict {
		for i, ok := range bound {
			if !ok {
				return &CallError{Callee: f, Reason: fmt.Sprintf("Function of type %s is missing an argument for parameter %s", f, bindings[i].Name)}
			}
		}
	}
	return nil
}
