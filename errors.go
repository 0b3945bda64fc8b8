package offsetalloc

import "errors"

var (
	// ErrZeroSize indicates that Reset or Allocate was called with size 0.
	ErrZeroSize = errors.New("offsetalloc: size must be > 0")

	// ErrTooManyAllocs indicates MaxAllocs exceeds what the chosen node
	// index width can address.
	ErrTooManyAllocs = errors.New("offsetalloc: max allocs exceeds node index width")
)

// invariantError is the panic value raised by assertf when debug
// assertions are on (Options.Debug or OFFSETALLOC_DEBUG) and a checked
// invariant is violated. insertNodeIntoBin also panics with one, whatever
// the debug setting, if the node pool has no free slot. It is never
// returned as an error value from the public API.
type invariantError struct {
	what string
}

func (e *invariantError) Error() string { return "offsetalloc: invariant violated: " + e.what }
