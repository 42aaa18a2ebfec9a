// Package check infers the types of the variables of a module and checks
// every statement and expression of it against them.
//
// Checking stops at the first error found.
package check

import (
	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/typeparser"
	"github.com/cottand/gradual/frontend/types"
	"github.com/cottand/gradual/internal/log"
)

var (
	logger      = ast.NodeLogger(log.DefaultLogger.With("section", "check"))
	inferLogger = ast.NodeLogger(log.DefaultLogger.With("section", "infer"))
)

// DefaultMaxInferenceIterations bounds the passes inference makes over a
// scope when Settings does not.
const DefaultMaxInferenceIterations = 64

type Settings struct {
	// MaxInferenceIterations bounds the passes inference makes over a
	// single scope before giving up with an UnresolvedInference error.
	MaxInferenceIterations int
	// Fields resolves the attributes of builtin types, types.DefaultFields if nil.
	Fields types.FieldTable
	// Classes are the classes annotations may name.
	Classes map[string]types.Type
	// Builtins is the scope enclosing every module, Builtins() if nil.
	Builtins *Env
}

func (s Settings) maxIterations() int {
	if s.MaxInferenceIterations <= 0 {
		return DefaultMaxInferenceIterations
	}
	return s.MaxInferenceIterations
}

type Checker struct {
	settings    Settings
	cons        *types.Consistency
	annotations *typeparser.Parser
	builtins    Env
}

func New(settings Settings) *Checker {
	cons := types.NewConsistency(settings.Fields)
	builtins := Builtins()
	if settings.Builtins != nil {
		builtins = *settings.Builtins
	}
	return &Checker{
		settings:    settings,
		cons:        cons,
		annotations: typeparser.New(settings.Classes),
		builtins:    builtins,
	}
}

// Check infers the module scope of m and checks its body, decorating the
// expressions of m with their static types. The returned Env holds the
// variables bound at the top level of m.
func (c *Checker) Check(m *ast.Module) (Env, error) {
	const owner = "at the top level"
	local, err := c.declarations(m.Body, owner)
	if err != nil {
		return Env{}, err
	}
	scope, err := c.inferTypes(c.builtins, local, m.Body, owner, m)
	if err != nil {
		return Env{}, err
	}
	logger.Debug("inferred module scope", "scope", scope.String())

	if err := c.checkStmts(m.Body, frame{env: c.builtins.Merge(scope)}); err != nil {
		return Env{}, err
	}
	logger.Info("checked module", "bindings", scope.Len())
	return scope, nil
}
