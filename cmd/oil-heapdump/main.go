// oil-heapdump - build a managed heap from a text file and dump it
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/glyh/oil/manifest"
	"github.com/glyh/oil/pylib"
	"github.com/glyh/oil/runtime"
	"github.com/glyh/oil/snapshot"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	configDir := flag.String("config", ".", "Directory to search for oil.toml (walks up)")
	output := flag.String("o", "", "Snapshot output path (overrides oil.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oil-heapdump [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Reads a text file into the managed heap (one string per line),\n")
		fmt.Fprintf(os.Stderr, "prints heap statistics, and writes a CBOR heap snapshot.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  oil-heapdump notes.txt             # Dump per oil.toml (or defaults)\n")
		fmt.Fprintf(os.Stderr, "  oil-heapdump -o /tmp/h.cbor in.txt # Dump to an explicit path\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("oil-heapdump")

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config; a missing oil.toml means defaults.
	cfg, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading oil.toml: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = &manifest.Manifest{}
		cfg.Snapshot.Output = "oil.heap"
		cfg.Snapshot.IncludePayloads = true
		cfg.Dir, _ = os.Getwd()
	}

	inputPath := runtime.NewStr(flag.Arg(0))
	if !pylib.Exists(inputPath) {
		fmt.Fprintf(os.Stderr, "Error: %s does not exist\n", inputPath.String())
		os.Exit(1)
	}

	data, err := os.ReadFile(inputPath.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputPath.String(), err)
		os.Exit(1)
	}

	// Build the managed view of the file: one Str per line, held by a
	// managed list so the snapshot records the references.
	content := runtime.NewStr(string(data))
	lines := content.SplitLines(false)
	log.Infof("loaded %s: %d bytes, %d lines", inputPath.String(), content.Len(), lines.Len())

	heap := runtime.DefaultHeap()
	if cfg.Runtime.CheckHeaders {
		heap.CheckHeaders()
		log.Info("header audit passed")
	}

	stats := heap.Stats()
	fmt.Printf("heap: %d objects (%d strings, %d lists), %d bytes\n",
		stats.Objects, stats.Strings, stats.Lists, stats.Bytes)
	if cfg.Runtime.MaxHeapBytes > 0 && int64(stats.Bytes) > cfg.Runtime.MaxHeapBytes {
		log.Warningf("live heap %d bytes exceeds configured maximum %d", stats.Bytes, cfg.Runtime.MaxHeapBytes)
	}

	snap := snapshot.Capture(heap, snapshot.Options{
		IncludePayloads: cfg.Snapshot.IncludePayloads,
	})

	outPath := cfg.OutputPath()
	if *output != "" {
		outPath = *output
	}
	if err := snapshot.WriteFile(outPath, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote snapshot %s (%d records) to %s\n", snap.ID, len(snap.Records), outPath)
}
