package ast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Slog wraps a Node as a slog.LogValuer so that expressions are only
// rendered when the record is actually logged.
func Slog(n Node) slog.LogValuer {
	return nodeLogValuer{n}
}

type nodeLogValuer struct{ Node }

func (l nodeLogValuer) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("pos", l.Pos().String())}
	if expr, ok := l.Node.(Expr); ok {
		attrs = append(attrs, slog.String("expr", ExprString(expr)))
		if t := expr.StaticType(); t != nil {
			attrs = append(attrs, slog.String("type", t.String()))
		}
	} else {
		attrs = append(attrs, slog.String("node", Kind(l.Node)))
	}
	return slog.GroupValue(attrs...)
}

// Kind is the grammar name of the node, e.g. "FunctionDef".
func Kind(n Node) string {
	name := fmt.Sprintf("%T", n)
	return name[strings.LastIndexByte(name, '.')+1:]
}

// NodeHandler is a slog.Handler capable of lazy-printing syntax tree attributes
func NodeHandler(underlying slog.Handler) slog.Handler {
	return &nodeLogHandler{underlying: underlying}
}

func NodeLogger(underlying *slog.Logger) *slog.Logger {
	return slog.New(NodeHandler(underlying.Handler()))
}

type nodeLogHandler struct {
	underlying slog.Handler
}

func wrapNodeAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindAny {
		if asNode, isNode := attr.Value.Any().(Node); isNode {
			attr.Value = slog.AnyValue(Slog(asNode))
		}
	}
	return attr
}

func (l *nodeLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *nodeLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapNodeAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *nodeLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapNodeAttr(attr)
	}
	return NodeHandler(l.underlying.WithAttrs(wrapped))
}

func (l *nodeLogHandler) WithGroup(name string) slog.Handler {
	return NodeHandler(l.underlying.WithGroup(name))
}
