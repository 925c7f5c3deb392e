// Package runtime implements the managed-object runtime for translated
// Oil programs.
//
// This package contains:
//   - The object header protocol (tag, scan mask, byte length)
//   - The immutable managed string type and its method surface
//   - The growable managed sequence type
//   - The heap registry that exposes allocations to an external collector
//
// Every managed value carries an ObjHeader as its first field, populated
// by a single allocation entry point per type. The header is the entire
// contract an external collector relies on; it is always consistent with
// the real allocation shape, including at the instant of construction.
package runtime
