// Package snapshot serializes the contents of a managed heap for
// offline inspection. A snapshot records exactly what the collector
// contract exposes — tag, scan mask, allocation length, opaque payload
// bytes, and resolved inner references — so a dump can be audited
// without access to the process that produced it.
package snapshot

import (
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/glyh/oil/runtime"
)

// cborEncMode uses canonical options for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Record is one managed allocation as seen through its header.
type Record struct {
	Tag    uint8  `cbor:"tag"`
	Mask   uint32 `cbor:"mask"`
	ObjLen int    `cbor:"objLen"`

	// Payload holds the logical bytes of an opaque value. Nil for
	// containers and when payloads are excluded at capture time.
	Payload []byte `cbor:"payload,omitempty"`

	// Refs holds the heap positions of the managed values reachable
	// from this object, in scan order.
	Refs []int `cbor:"refs,omitempty"`
}

// Snapshot is a point-in-time capture of a heap.
type Snapshot struct {
	ID        string    `cbor:"id"`
	CreatedAt time.Time `cbor:"createdAt"`
	Records   []Record  `cbor:"records"`
}

// Options control what Capture includes.
type Options struct {
	// IncludePayloads copies the logical bytes of opaque values into
	// the snapshot. Disable for dumps of sensitive heaps.
	IncludePayloads bool
}

// Capture walks h in registration order and returns a snapshot of its
// live objects. References that point outside h are dropped.
func Capture(h *runtime.Heap, opts Options) *Snapshot {
	var objs []runtime.Managed
	h.ForEach(func(_ int, obj runtime.Managed) {
		objs = append(objs, obj)
	})

	index := make(map[runtime.Managed]int, len(objs))
	for i, obj := range objs {
		index[obj] = i
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   make([]Record, len(objs)),
	}

	for i, obj := range objs {
		hdr := obj.Header()
		rec := Record{
			Tag:    uint8(hdr.Tag()),
			Mask:   hdr.ScanMask(),
			ObjLen: hdr.ObjLen(),
		}

		if opts.IncludePayloads {
			if s, ok := obj.(*runtime.Str); ok {
				rec.Payload = append([]byte(nil), s.Bytes()...)
			}
		}

		for _, ref := range obj.References(nil) {
			if j, ok := index[ref]; ok {
				rec.Refs = append(rec.Refs, j)
			}
		}
		snap.Records[i] = rec
	}
	return snap
}

// Marshal serializes a Snapshot to CBOR bytes.
func Marshal(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// Unmarshal deserializes a Snapshot from CBOR bytes.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return &s, nil
}

// WriteFile marshals s and writes it to path.
func WriteFile(path string, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and unmarshals a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
