// Package gradual loads and checks compilation units: single modules whose
// syntax tree was dumped as JSON by the host language's parser.
package gradual

import (
	"io/fs"
	"strings"
	"testing/fstest"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/ast/astjson"
	"github.com/cottand/gradual/frontend/check"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/internal/log"
	"github.com/pkg/errors"
)

var unitLogger = log.DefaultLogger.With("section", "unit")

// Unit is a single module, checked on its own.
// A Unit that failed to decode or check keeps the errors found in Errors.
type Unit struct {
	path   string
	module *ast.Module
	// scope holds the top-level bindings of module once checked
	scope  check.Env
	errors *ilerr.Errors
}

// LoadUnit reads the syntax tree at path in fsys and checks it.
//
// The returned error is only set when the file could not be read at all;
// a tree that does not decode or does not check is reported in Unit.Errors.
func LoadUnit(fsys fs.FS, path string, settings check.Settings) (*Unit, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	unit := &Unit{path: path}

	module, err := astjson.DecodeBytes(data)
	if err != nil {
		unit.errors = unit.errors.With(ilerr.New(ilerr.NewDecode{Positioner: ast.Range{}, Path: path, From: err}))
		unitLogger.Info("could not decode unit", "path", path, "error", err)
		return unit, nil
	}
	unit.module = module

	scope, err := check.New(settings).Check(module)
	if err != nil {
		var checkErr ilerr.CheckError
		if !errors.As(err, &checkErr) {
			return nil, errors.Wrapf(err, "checking %s", path)
		}
		unit.errors = unit.errors.With(checkErr)
	}
	unit.scope = scope
	unitLogger.Info("checked unit", "path", path, "bindings", scope.Len(), "errors", unit.errors)
	return unit, nil
}

// NewUnitFromBytes checks a single in-memory syntax tree, meant for testing.
func NewUnitFromBytes(data []byte, settings check.Settings) (*Unit, error) {
	const name = "test.json"
	filesystem := fstest.MapFS{
		name: &fstest.MapFile{Data: data},
	}
	return LoadUnit(filesystem, name, settings)
}

func (u *Unit) Path() string { return u.path }

// Module is the decorated syntax tree, nil if it could not be decoded.
func (u *Unit) Module() *ast.Module { return u.module }

// Scope holds the identifiers bound at the top level of the unit.
// It is empty when checking failed.
func (u *Unit) Scope() check.Env { return u.scope }

func (u *Unit) Errors() *ilerr.Errors { return u.errors }

// DisplayScope lists the top-level bindings of the unit as "name: type"
// lines, sorted by name.
func (u *Unit) DisplayScope() string {
	sb := strings.Builder{}
	for _, name := range u.scope.Names() {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(u.scope.TypeOf(name).String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
