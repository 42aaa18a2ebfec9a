// Package astjson reads syntax trees dumped as JSON from the host language's
// standard ast module.
//
// Every node is an object whose "_type" names its grammar class, carrying
// lineno and col_offset (and end_lineno and end_col_offset where available)
// and the fields of the grammar under their usual names. Both the literal
// nodes of older grammars (Num, Str, Index...) and Constant and bare slices
// are accepted.
package astjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cottand/gradual/frontend/ast"
	"github.com/cottand/gradual/frontend/op"
	"github.com/pkg/errors"
)

// Decode reads a single Module from r.
func Decode(r io.Reader) (*ast.Module, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "malformed JSON")
	}
	d := &decoder{}
	n, ok := d.node(raw)
	if !ok && d.err == nil {
		return nil, errors.New("empty syntax tree")
	}
	if d.err != nil {
		return nil, d.err
	}
	if n.kind != "Module" {
		return nil, errors.Errorf("expected a Module at the root, found %s", n.kind)
	}
	m := &ast.Module{Range: n.rng(), Body: d.stmts(n, "body")}
	if d.err != nil {
		return nil, d.err
	}
	return m, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*ast.Module, error) {
	return Decode(bytes.NewReader(data))
}

// node is a JSON object standing for a grammar node.
type node struct {
	kind   string
	fields map[string]any
}

func (n node) get(field string) any { return n.fields[field] }

func (n node) int(field string) int {
	num, ok := n.fields[field].(json.Number)
	if !ok {
		return 0
	}
	i, _ := num.Int64()
	return int(i)
}

func (n node) str(field string) string {
	s, _ := n.fields[field].(string)
	return s
}

func (n node) rng() ast.Range {
	return ast.Range{
		PosStart: ast.Position{Line: n.int("lineno"), Col: n.int("col_offset")},
		PosEnd:   ast.Position{Line: n.int("end_lineno"), Col: n.int("end_col_offset")},
	}
}

// decoder stops at the first error, after which every method returns zero values.
type decoder struct {
	err error
}

func (d *decoder) failf(n node, format string, args ...any) {
	if d.err == nil {
		d.err = errors.Errorf("%s: %s", n.rng().Pos(), fmt.Sprintf(format, args...))
	}
}

// node is ok when v is a well-formed node. A JSON null is not ok but not an error.
func (d *decoder) node(v any) (node, bool) {
	if v == nil || d.err != nil {
		return node{}, false
	}
	fields, isObject := v.(map[string]any)
	if !isObject {
		d.err = errors.Errorf("expected a node, found %T", v)
		return node{}, false
	}
	kind, _ := fields["_type"].(string)
	if kind == "" {
		d.err = errors.New("node without a _type")
		return node{}, false
	}
	return node{kind: kind, fields: fields}, true
}

func (d *decoder) list(n node, field string) []any {
	switch l := n.get(field).(type) {
	case nil:
		return nil
	case []any:
		return l
	}
	d.failf(n, "field %s of %s is not a list", field, n.kind)
	return nil
}

func (d *decoder) names(n node, field string) []string {
	var names []string
	for _, v := range d.list(n, field) {
		s, ok := v.(string)
		if !ok {
			d.failf(n, "field %s of %s holds a %T, not a name", field, n.kind, v)
			return nil
		}
		names = append(names, s)
	}
	return names
}

func (d *decoder) operator(n node, field string) op.Op {
	opNode, ok := d.node(n.get(field))
	if !ok {
		d.failf(n, "%s without an operator", n.kind)
		return op.Invalid
	}
	o, ok := op.Lookup(opNode.kind)
	if !ok {
		d.failf(n, "unknown operator %s", opNode.kind)
	}
	return o
}

func (d *decoder) ctx(n node) ast.ExprContext {
	ctx, ok := d.node(n.get("ctx"))
	if !ok {
		return ast.Load
	}
	switch ctx.kind {
	case "Store", "AugStore":
		return ast.Store
	case "Del":
		return ast.Del
	}
	return ast.Load
}
