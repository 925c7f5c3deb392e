// Package pylib is the thin utility layer translated Oil programs use
// at the filesystem boundary. It consumes managed strings through their
// public surface only and never touches header fields.
package pylib

import "github.com/glyh/oil/runtime"

// RstripSlashes removes trailing '/' bytes from path. A path composed
// entirely of slashes is returned unchanged — a root path must not be
// reduced to empty, so this deliberately diverges from the generic
// RStripChars policy of stripping an all-match string down to nothing.
// The empty path is also returned unchanged.
func RstripSlashes(path *runtime.Str) *runtime.Str {
	n := path.Len()
	if n == 0 {
		return path
	}

	data := path.Bytes()
	newLen := n
	for i := n - 1; i >= 0; i-- {
		if data[i] != '/' {
			break
		}
		newLen--
	}

	if newLen == 0 { // it was all slashes, don't strip
		return path
	}
	return path.Slice(0, newLen)
}
