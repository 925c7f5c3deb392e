package runtime

// Tag discriminates how a collector must treat a managed value's payload.
type Tag uint8

const (
	// TagOpaque marks a payload that holds no managed references.
	// The collector may skip scanning it entirely.
	TagOpaque Tag = iota

	// TagScanned marks a container whose payload slots may hold managed
	// references. The scan mask selects which slots to follow.
	TagScanned
)

// String returns the tag name for diagnostics.
func (t Tag) String() string {
	switch t {
	case TagOpaque:
		return "Opaque"
	case TagScanned:
		return "Scanned"
	default:
		return "?"
	}
}

// Scan mask sentinels. A mask identifies which payload words are
// possibly-live references.
const (
	// ZeroMask means "no inner references, skip scanning". It is the only
	// valid mask for TagOpaque values.
	ZeroMask uint32 = 0

	// ScanAll means every payload slot is a possibly-live reference.
	// Used by uniform containers such as List.
	ScanAll uint32 = ^uint32(0)
)

// HeaderSize is the accounting size of an ObjHeader in bytes. objLen
// always includes it, so objLen >= HeaderSize holds for every live value.
const HeaderSize = 16

// wordSize is the accounting size of one payload slot in a scanned
// container.
const wordSize = 8

// ObjHeader is the fixed metadata prefix carried by every managed value.
// It is the entire contract between this runtime and an external
// collector: tag says whether to scan, mask says where, objLen says how
// far the allocation extends.
//
// Headers are never constructed by hand. Each managed type has a single
// allocation entry point that calls initHeader, so a partially
// initialized header is never visible.
type ObjHeader struct {
	tag    Tag
	mask   uint32
	objLen int
}

// initHeader populates a header, enforcing the layout invariants.
// A mismatched tag/mask or an impossible length is a fatal invariant
// break, not a recoverable error.
func (h *ObjHeader) initHeader(tag Tag, mask uint32, objLen int) {
	if objLen < HeaderSize {
		fatalf("object length %d smaller than header size %d", objLen, HeaderSize)
	}
	if tag == TagOpaque && mask != ZeroMask {
		fatalf("opaque object with scan mask %#x", mask)
	}
	h.tag = tag
	h.mask = mask
	h.objLen = objLen
}

// setObjLen updates the recorded allocation length. Used by containers
// whose backing store grows; the new length must still cover the header.
func (h *ObjHeader) setObjLen(objLen int) {
	if objLen < HeaderSize {
		fatalf("object length %d smaller than header size %d", objLen, HeaderSize)
	}
	h.objLen = objLen
}

// Tag returns the collector-facing tag.
func (h *ObjHeader) Tag() Tag { return h.tag }

// ScanMask returns the collector-facing scan descriptor.
func (h *ObjHeader) ScanMask() uint32 { return h.mask }

// ObjLen returns the total allocation length in bytes, header included.
func (h *ObjHeader) ObjLen() int { return h.objLen }

// Managed is implemented by every heap value the collector can see.
//
// References appends the managed values directly reachable from the
// receiver to buf and returns the result. Opaque values append nothing.
// Collectors combine this with Header to scan, move, or free values
// without knowing their concrete type.
type Managed interface {
	Header() *ObjHeader
	References(buf []Managed) []Managed
}
