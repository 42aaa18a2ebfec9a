//go:build js && wasm

package gradual

import (
	"fmt"
	"syscall/js"

	"github.com/cottand/gradual/frontend/check"
)

// CheckAndShowScope checks the JSON syntax tree passed as the only argument
// and returns the types of its top-level bindings, or the errors found while
// checking it.
//
// output: { error: string } | { scope: string }
func CheckAndShowScope(_ js.Value, args []js.Value) (ret any) {
	errorObj := func(err string) any {
		return js.ValueOf(map[string]any{
			"error": err,
		})
	}
	defer func() {
		if r := recover(); r != nil {
			ret = errorObj("checker panicked: " + fmt.Sprint(r))
		}
	}()
	if len(args) != 1 {
		return errorObj(fmt.Sprintf("expected 1 argument, got %d", len(args)))
	}

	unit, err := NewUnitFromBytes([]byte(args[0].String()), check.Settings{})
	if err != nil {
		return errorObj(fmt.Sprintf("the checker encountered a failure:\n\n%s", err))
	}
	if unit.Errors().HasError() {
		return errorObj("the module has the following errors:\n" + unit.Errors().Error())
	}
	return js.ValueOf(map[string]any{
		"scope": unit.DisplayScope(),
	})
}
