package offsetalloc

// defaultMaxAllocs is the node-pool capacity used when Options.MaxAllocs
// is left at its zero value. It matches the language-neutral spec's
// documented default of 65535, which only fits a uint32-indexed
// Allocator: instantiating Allocator[uint16] with the zero value trips
// ErrTooManyAllocs, because 65535 is also the uint16 UNUSED sentinel.
// uint16 callers must pick an explicit MaxAllocs below that ceiling.
const defaultMaxAllocs = 65535

// Options configures a new Allocator. It is the whole of this library's
// configuration surface — there is no environment variable, CLI flag, or
// persisted state that changes allocator behavior (see spec § 6).
type Options[Idx NodeIndex] struct {
	// MaxAllocs bounds the number of simultaneously live regions (used and
	// free). The node pool holds MaxAllocs+1 slots. Zero means
	// defaultMaxAllocs.
	MaxAllocs Idx

	// Debug forces invariant assertions on regardless of the
	// OFFSETALLOC_DEBUG environment variable. The assertion panics on a
	// double free; leave this false in production.
	Debug bool
}
