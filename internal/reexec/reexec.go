package reexec

import (
	"fmt"
	"os"
)

var (
	registeredInitializers = make(map[string]func())
	initWasCalled          = false
)

// Register adds an initialization func under the specified name. Panics if
// the name is already registered, since that indicates two packages both
// trying to own the same re-exec entry point.
func Register(name string, initializer func()) {
	if _, exists := registeredInitializers[name]; exists {
		panic(fmt.Sprintf("reexec: func already registered under name %q", name))
	}
	registeredInitializers[name] = initializer
}

// Init is called as the first statement of main(). It returns true, after
// running the matching initializer and exiting the caller's flow back to
// main (which should return immediately), when os.Args[0] names a
// registered entry point.
func Init() bool {
	initializer, exists := registeredInitializers[os.Args[0]]
	initWasCalled = true
	if exists {
		initializer()
		return true
	}
	return false
}

func panicIfNotInitialized() {
	if !initWasCalled {
		panic("reexec: a subroutine needed to run a subprocess, but reexec.Init() was not called in main()")
	}
}
