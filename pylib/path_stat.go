package pylib

import (
	"golang.org/x/sys/unix"

	"github.com/glyh/oil/runtime"
)

// Exists reports whether path can be statted. A single stat(2) call,
// read-only, no retry; every failure — missing file, permission denied,
// broken symlink — collapses to false. Absence is an expected outcome,
// never an error.
func Exists(path *runtime.Str) bool {
	var st unix.Stat_t
	return unix.Stat(path.String(), &st) == nil
}
