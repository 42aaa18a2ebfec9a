package ilerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors is the list of errors reported for a unit. The nil *Errors is empty.
type Errors struct {
	errs []CheckError
}

func (r *Errors) With(err ...CheckError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []CheckError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Error lists every error on its own line.
func (r *Errors) Error() string {
	var lines []string
	for _, e := range r.Errors() {
		lines = append(lines, fmt.Sprintf("%v: %s", e.Pos(), FormatWithCode(e)))
	}
	return strings.Join(lines, "\n")
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
				slog.Attr{
					Key:   "pos",
					Value: slog.StringValue(v.Pos().String()),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
