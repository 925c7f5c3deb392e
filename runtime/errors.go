package runtime

import "fmt"

// The runtime distinguishes three failure tiers:
//
//   - Fatal: a broken header or allocation invariant. Continuing would
//     corrupt collector behavior for the rest of the process, so these
//     panic via fatalf and are never returned as errors.
//   - Domain: out-of-range positional access. Returned to the caller as
//     an *IndexError, which is recoverable.
//   - Soft: absence ("not found", "does not exist") is an expected
//     outcome and is reported with sentinel values (-1, false), never
//     an error.

// IndexError reports a positional access outside the valid range of a
// managed string or sequence.
type IndexError struct {
	Index int // the requested position, as given by the caller
	Len   int // the logical length of the value at the time of access
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d", e.Index, e.Len)
}

// indexError is a convenience constructor used by Index implementations.
func indexError(index, length int) *IndexError {
	return &IndexError{Index: index, Len: length}
}

// fatalf reports an unrecoverable runtime invariant violation.
// It never returns.
func fatalf(format string, args ...interface{}) {
	panic("runtime: " + fmt.Sprintf(format, args...))
}
