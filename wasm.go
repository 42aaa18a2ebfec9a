//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cottand/gradual/gradual"
)

func main() {
	js.Global().Set("CheckAndShowScope", js.FuncOf(gradual.CheckAndShowScope))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
