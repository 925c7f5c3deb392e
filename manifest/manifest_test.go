package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "oil.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[runtime]
check-headers = true
max-heap-bytes = 1048576

[snapshot]
output = "dumps/heap.cbor"
include-payloads = true
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !m.Runtime.CheckHeaders {
		t.Error("check-headers should be true")
	}
	if m.Runtime.MaxHeapBytes != 1048576 {
		t.Errorf("max-heap-bytes = %d", m.Runtime.MaxHeapBytes)
	}
	if m.Snapshot.Output != "dumps/heap.cbor" {
		t.Errorf("output = %q", m.Snapshot.Output)
	}
	if !m.Snapshot.IncludePayloads {
		t.Error("include-payloads should be true")
	}
	if m.Dir == "" || !filepath.IsAbs(m.Dir) {
		t.Errorf("Dir = %q, want absolute", m.Dir)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[runtime]\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Snapshot.Output != "oil.heap" {
		t.Errorf("default output = %q, want %q", m.Snapshot.Output, "oil.heap")
	}
	if m.Runtime.CheckHeaders {
		t.Error("check-headers should default to false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load without oil.toml should fail")
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[runtime\nbroken")
	if _, err := Load(dir); err == nil {
		t.Error("Load of malformed toml should fail")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[snapshot]\noutput = \"found.cbor\"\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad should walk up to the manifest")
	}
	if m.Snapshot.Output != "found.cbor" {
		t.Errorf("output = %q", m.Snapshot.Output)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m != nil {
		t.Error("FindAndLoad with no manifest anywhere should return nil")
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[snapshot]\noutput = \"heap.cbor\"\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(m.Dir, "heap.cbor")
	if got := m.OutputPath(); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	m.Snapshot.Output = "/abs/heap.cbor"
	if got := m.OutputPath(); got != "/abs/heap.cbor" {
		t.Errorf("absolute OutputPath = %q", got)
	}
}
