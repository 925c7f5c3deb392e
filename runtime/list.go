package runtime

// ---------------------------------------------------------------------------
// List: the managed growable sequence
// ---------------------------------------------------------------------------

// List is an append-only, indexable managed sequence. It owns its
// backing store exclusively; the elements it holds are shared
// references, not copies. Element order is insertion order — there is
// no sorting or deduplication.
//
// The header records the backing store's allocated size and is updated
// in step with every reallocation, so the collector always sees a
// length consistent with the real allocation shape. The scan mask is
// ScanAll: every slot is a possibly-live reference.
//
// A List has a single logical owner at a time; concurrent appenders
// need external synchronization.
type List[T any] struct {
	header ObjHeader
	elems  []T
}

// initialListCap is the backing store size allocated by the first
// append to an empty list.
const initialListCap = 4

// NewList allocates an empty managed sequence and registers it on the
// default heap. This is the only constructor; the header is fully
// populated before the value becomes visible.
func NewList[T any]() *List[T] {
	l := &List[T]{}
	l.header.initHeader(TagScanned, ScanAll, HeaderSize)
	defaultHeap.adopt(l, kindList)
	return l
}

// ListOf allocates a managed sequence holding the given items in order.
func ListOf[T any](items ...T) *List[T] {
	l := NewList[T]()
	for _, item := range items {
		l.Append(item)
	}
	return l
}

// Header returns the collector-facing header.
func (l *List[T]) Header() *ObjHeader { return &l.header }

// References appends each element that is itself a managed value.
// The backing store is scanned in full, per the ScanAll mask.
func (l *List[T]) References(buf []Managed) []Managed {
	for _, e := range l.elems {
		if m, ok := any(e).(Managed); ok {
			buf = append(buf, m)
		}
	}
	return buf
}

// Len returns the number of elements in O(1).
func (l *List[T]) Len() int { return len(l.elems) }

// Append adds item at the end, reallocating the backing store with
// geometric growth when capacity is exhausted. The old store is
// released and the new one owned going forward; the copy completes
// before the element count changes, so the sequence is never observable
// in a partially-copied state.
func (l *List[T]) Append(item T) {
	if len(l.elems) == cap(l.elems) {
		newCap := cap(l.elems) * 2
		if newCap == 0 {
			newCap = initialListCap
		}
		grown := make([]T, len(l.elems), newCap)
		copy(grown, l.elems)
		l.elems = grown
		l.header.setObjLen(HeaderSize + newCap*wordSize)
	}
	l.elems = append(l.elems, item)
}

// Index returns the element at position i. Positions outside [0, Len)
// are a domain error.
func (l *List[T]) Index(i int) (T, error) {
	if i < 0 || i >= len(l.elems) {
		var zero T
		return zero, indexError(i, len(l.elems))
	}
	return l.elems[i], nil
}
