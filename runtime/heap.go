package runtime

import "sync"

// ---------------------------------------------------------------------------
// Heap registry
// ---------------------------------------------------------------------------

// objKind tracks what a registered allocation is, for stats only.
// The collector itself never needs it; tags and masks are sufficient.
type objKind uint8

const (
	kindStr objKind = iota
	kindList
)

// Heap is the registry of every live managed allocation. An external
// collector walks it through ForEach, reading each value's header to
// decide whether and where to scan, and calls Release to reclaim.
//
// Registration order is insertion order and is stable until a Release,
// which lets consumers (snapshot encoding) identify objects by position.
type Heap struct {
	mu      sync.Mutex
	objects []Managed
	kinds   []objKind
	index   map[Managed]int
}

// NewHeap creates an empty heap registry.
func NewHeap() *Heap {
	return &Heap{index: make(map[Managed]int)}
}

// defaultHeap adopts every allocation made through the package-level
// constructors. Translated programs share one heap per process.
var defaultHeap = NewHeap()

// DefaultHeap returns the process-wide heap registry.
func DefaultHeap() *Heap { return defaultHeap }

// adopt registers a freshly constructed value. Called only by the
// allocation entry points, after the header is fully populated.
func (h *Heap) adopt(obj Managed, kind objKind) {
	hdr := obj.Header()
	if hdr.ObjLen() < HeaderSize {
		fatalf("adopting object with malformed header (objLen=%d)", hdr.ObjLen())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.index[obj]; ok {
		fatalf("object adopted twice")
	}
	h.index[obj] = len(h.objects)
	h.objects = append(h.objects, obj)
	h.kinds = append(h.kinds, kind)
}

// Live returns the number of registered allocations.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

// ForEach calls fn for each live object in registration order.
// fn must not allocate managed values or release objects.
func (h *Heap) ForEach(fn func(i int, obj Managed)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, obj := range h.objects {
		fn(i, obj)
	}
}

// IndexOf returns the registration position of obj, or -1 if obj is not
// registered on this heap.
func (h *Heap) IndexOf(obj Managed) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i, ok := h.index[obj]; ok {
		return i
	}
	return -1
}

// Release removes obj from the registry. It is the collector's interface
// for reclaiming a dead value; the Go allocator frees the memory once no
// other reference remains. Releasing an unregistered object is a no-op.
func (h *Heap) Release(obj Managed) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i, ok := h.index[obj]
	if !ok {
		return
	}
	delete(h.index, obj)
	copy(h.objects[i:], h.objects[i+1:])
	copy(h.kinds[i:], h.kinds[i+1:])
	h.objects = h.objects[:len(h.objects)-1]
	h.kinds = h.kinds[:len(h.kinds)-1]
	for j := i; j < len(h.objects); j++ {
		h.index[h.objects[j]] = j
	}
}

// Reset drops every registration. Used by tools and tests that stand in
// for a full collection cycle.
func (h *Heap) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects = nil
	h.kinds = nil
	h.index = make(map[Managed]int)
}

// ---------------------------------------------------------------------------
// Stats and auditing
// ---------------------------------------------------------------------------

// HeapStats summarizes the live contents of a heap.
type HeapStats struct {
	Objects int
	Bytes   int // sum of ObjLen over all live objects
	Strings int
	Lists   int
}

// Stats computes a summary of the heap's live objects.
func (h *Heap) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	var s HeapStats
	s.Objects = len(h.objects)
	for i, obj := range h.objects {
		s.Bytes += obj.Header().ObjLen()
		switch h.kinds[i] {
		case kindStr:
			s.Strings++
		case kindList:
			s.Lists++
		}
	}
	return s
}

// CheckHeaders audits every live header against the layout invariants.
// A violation means some code bypassed the allocation entry points;
// that is fatal, since the collector can no longer be trusted to scan
// correctly.
func (h *Heap) CheckHeaders() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, obj := range h.objects {
		hdr := obj.Header()
		if hdr.ObjLen() < HeaderSize {
			fatalf("heap object %d: objLen %d smaller than header size", i, hdr.ObjLen())
		}
		if hdr.Tag() == TagOpaque && hdr.ScanMask() != ZeroMask {
			fatalf("heap object %d: opaque object with scan mask %#x", i, hdr.ScanMask())
		}
	}
}
