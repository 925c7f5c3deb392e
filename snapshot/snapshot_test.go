package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/glyh/oil/runtime"
)

// ---------------------------------------------------------------------------
// Capture
// ---------------------------------------------------------------------------

func TestCaptureRecordsHeaders(t *testing.T) {
	heap := runtime.DefaultHeap()

	s := runtime.NewStr("payload bytes")
	snap := Capture(heap, Options{IncludePayloads: true})

	if len(snap.Records) != heap.Live() {
		t.Fatalf("captured %d records for %d live objects", len(snap.Records), heap.Live())
	}
	if snap.ID == "" {
		t.Error("snapshot should carry an ID")
	}

	rec := snap.Records[heap.IndexOf(s)]
	if rec.Tag != uint8(runtime.TagOpaque) {
		t.Errorf("string record tag = %d", rec.Tag)
	}
	if rec.Mask != runtime.ZeroMask {
		t.Errorf("string record mask = %#x", rec.Mask)
	}
	if rec.ObjLen != s.Header().ObjLen() {
		t.Errorf("string record objLen = %d, want %d", rec.ObjLen, s.Header().ObjLen())
	}
	if !bytes.Equal(rec.Payload, s.Bytes()) {
		t.Errorf("string record payload = %q", rec.Payload)
	}
}

func TestCaptureResolvesReferences(t *testing.T) {
	heap := runtime.DefaultHeap()

	a := runtime.NewStr("ref-a")
	b := runtime.NewStr("ref-b")
	l := runtime.ListOf(a, b)

	snap := Capture(heap, Options{})

	rec := snap.Records[heap.IndexOf(l)]
	if rec.Tag != uint8(runtime.TagScanned) {
		t.Errorf("list record tag = %d", rec.Tag)
	}
	if rec.Mask != runtime.ScanAll {
		t.Errorf("list record mask = %#x", rec.Mask)
	}
	want := []int{heap.IndexOf(a), heap.IndexOf(b)}
	if len(rec.Refs) != 2 || rec.Refs[0] != want[0] || rec.Refs[1] != want[1] {
		t.Errorf("list record refs = %v, want %v", rec.Refs, want)
	}
}

func TestCaptureExcludesPayloads(t *testing.T) {
	heap := runtime.DefaultHeap()
	s := runtime.NewStr("secret")

	snap := Capture(heap, Options{IncludePayloads: false})
	if rec := snap.Records[heap.IndexOf(s)]; rec.Payload != nil {
		t.Errorf("payload should be excluded, got %q", rec.Payload)
	}
}

// ---------------------------------------------------------------------------
// Encoding round trips
// ---------------------------------------------------------------------------

func TestMarshalRoundTrip(t *testing.T) {
	heap := runtime.DefaultHeap()
	runtime.ListOf(runtime.NewStr("x"), runtime.NewStr("y"))

	snap := Capture(heap, Options{IncludePayloads: true})
	data, err := Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.ID != snap.ID {
		t.Errorf("ID = %q, want %q", got.ID, snap.ID)
	}
	if len(got.Records) != len(snap.Records) {
		t.Fatalf("record count = %d, want %d", len(got.Records), len(snap.Records))
	}
	for i := range got.Records {
		g, w := got.Records[i], snap.Records[i]
		if g.Tag != w.Tag || g.Mask != w.Mask || g.ObjLen != w.ObjLen {
			t.Errorf("record %d header mismatch: %+v vs %+v", i, g, w)
		}
		if !bytes.Equal(g.Payload, w.Payload) {
			t.Errorf("record %d payload mismatch", i)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	snap := &Snapshot{ID: "fixed", Records: []Record{{Tag: 1, Mask: ^uint32(0), ObjLen: 32}}}
	a, err := Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("canonical encoding should be deterministic")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not cbor at all")); err == nil {
		t.Error("Unmarshal of garbage should fail")
	}
}

func TestWriteReadFile(t *testing.T) {
	heap := runtime.DefaultHeap()
	runtime.NewStr("file round trip")

	snap := Capture(heap, Options{IncludePayloads: true})
	path := filepath.Join(t.TempDir(), "heap.cbor")

	if err := WriteFile(path, snap); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.ID != snap.ID || len(got.Records) != len(snap.Records) {
		t.Errorf("round trip mismatch: %s/%d vs %s/%d",
			got.ID, len(got.Records), snap.ID, len(snap.Records))
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.cbor")); err == nil {
		t.Error("ReadFile of a missing path should fail")
	}
}
