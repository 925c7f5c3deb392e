package runtime

import (
	"bytes"
	"hash/fnv"
)

// ---------------------------------------------------------------------------
// Str: the managed string type
// ---------------------------------------------------------------------------

// Str is an immutable managed byte string.
//
// The payload is a single owned buffer of logical content plus one
// trailing zero byte, sized exactly at construction. The trailing zero
// is not part of the logical content; it makes the buffer usable as a
// C-style string across foreign boundaries without recomputation.
// Every mutating-looking operation (Strip, Upper, Replace, ...) returns
// a new Str.
//
// Str operates on byte sequences, not code points. Case mapping and
// classification are ASCII-only.
type Str struct {
	header ObjHeader
	data   []byte // logical bytes + trailing NUL, never modified after construction
	hash   uint32 // FNV-1a over the logical bytes, computed at construction
}

// NewStr allocates a managed string holding a copy of s.
// This is the only way (together with AllocStr) to construct a Str;
// the header is fully populated before the value becomes visible.
func NewStr(s string) *Str {
	return newStrFromBytes([]byte(s))
}

// AllocStr allocates a managed string of logical length n with a zeroed
// payload. A negative n is a fatal invariant break.
func AllocStr(n int) *Str {
	if n < 0 {
		fatalf("AllocStr: negative length %d", n)
	}
	return adoptStr(make([]byte, n+1))
}

// newStrFromBytes copies b into a fresh managed string.
func newStrFromBytes(b []byte) *Str {
	data := make([]byte, len(b)+1)
	copy(data, b)
	return adoptStr(data)
}

// adoptStr takes ownership of data (logical bytes + trailing NUL),
// populates the header, and registers the string on the default heap.
func adoptStr(data []byte) *Str {
	if len(data) == 0 || data[len(data)-1] != 0 {
		fatalf("string buffer missing trailing NUL")
	}
	s := &Str{data: data}
	s.header.initHeader(TagOpaque, ZeroMask, HeaderSize+len(data))
	s.hash = hashBytes(data[:len(data)-1])
	defaultHeap.adopt(s, kindStr)
	return s
}

func hashBytes(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}

// Header returns the collector-facing header.
func (s *Str) Header() *ObjHeader { return &s.header }

// References appends nothing: a string payload holds no managed
// references.
func (s *Str) References(buf []Managed) []Managed { return buf }

// Len returns the logical length in O(1), computed from the header
// field rather than by scanning for the terminator.
func (s *Str) Len() int {
	return s.header.ObjLen() - HeaderSize - 1
}

// String returns the logical content as a Go string.
func (s *Str) String() string {
	return string(s.data[:s.Len()])
}

// Bytes returns the logical content. The slice aliases the string's
// owned buffer; callers must treat it as read-only.
func (s *Str) Bytes() []byte {
	n := s.Len()
	return s.data[:n:n]
}

// CStr returns the full buffer including the trailing zero byte, for
// foreign-interop call sites.
func (s *Str) CStr() []byte { return s.data }

// Hash returns the cached content hash. Two strings with identical
// logical bytes hash identically.
func (s *Str) Hash() uint32 { return s.hash }

// Equal reports structural equality: true iff the logical byte
// sequences match, regardless of identity.
func (s *Str) Equal(other *Str) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// ---------------------------------------------------------------------------
// Indexing and slicing
// ---------------------------------------------------------------------------

// Index returns the single byte at position i as a one-byte string.
// Negative indices count from the end (-1 is the last byte). An index
// whose magnitude exceeds the logical length is a domain error.
func (s *Str) Index(i int) (*Str, error) {
	n := s.Len()
	pos := i
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return nil, indexError(i, n)
	}
	return newStrFromBytes(s.data[pos : pos+1]), nil
}

// Slice returns a new string over [begin, end). Negative indices are
// normalized against the logical length and the result is clamped to
// [0, Len]; out-of-range indices never fail. This permissive policy is
// deliberate and distinct from Index's strict bounds check.
func (s *Str) Slice(begin, end int) *Str {
	n := s.Len()
	if begin < 0 {
		begin += n
	}
	if end < 0 {
		end += n
	}
	if begin < 0 {
		begin = 0
	}
	if end > n {
		end = n
	}
	if begin >= end {
		return NewStr("")
	}
	return newStrFromBytes(s.data[begin:end])
}

// SliceFrom returns a new string over [begin, Len).
func (s *Str) SliceFrom(begin int) *Str {
	return s.Slice(begin, s.Len())
}

// ---------------------------------------------------------------------------
// Searching
// ---------------------------------------------------------------------------

// Find returns the leftmost index at or after pos where needle occurs,
// or -1 if absent. An empty needle matches at pos. Absence is an
// expected outcome, not an error.
func (s *Str) Find(needle *Str, pos int) int {
	n := s.Len()
	if pos < 0 {
		pos += n
		if pos < 0 {
			pos = 0
		}
	}
	if pos > n {
		return -1
	}
	i := bytes.Index(s.data[pos:n], needle.Bytes())
	if i < 0 {
		return -1
	}
	return pos + i
}

// RFind returns the rightmost index where needle occurs, or -1.
func (s *Str) RFind(needle *Str) int {
	return bytes.LastIndex(s.Bytes(), needle.Bytes())
}

// Contains reports whether needle occurs anywhere in s.
func (s *Str) Contains(needle *Str) bool {
	return s.Find(needle, 0) >= 0
}

// StartsWith reports whether s begins with prefix. An empty prefix
// always matches.
func (s *Str) StartsWith(prefix *Str) bool {
	return bytes.HasPrefix(s.Bytes(), prefix.Bytes())
}

// EndsWith reports whether s ends with suffix. An empty suffix always
// matches.
func (s *Str) EndsWith(suffix *Str) bool {
	return bytes.HasSuffix(s.Bytes(), suffix.Bytes())
}

// ---------------------------------------------------------------------------
// Stripping and padding
// ---------------------------------------------------------------------------

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// stripLeftPos returns the index of the first byte not matched by keep.
func (s *Str) stripLeftPos(match func(byte) bool) int {
	n := s.Len()
	i := 0
	for i < n && match(s.data[i]) {
		i++
	}
	return i
}

// stripRightPos returns one past the index of the last byte not matched.
func (s *Str) stripRightPos(match func(byte) bool) int {
	i := s.Len()
	for i > 0 && match(s.data[i-1]) {
		i--
	}
	return i
}

// Strip removes leading and trailing ASCII whitespace.
func (s *Str) Strip() *Str {
	return s.Slice(s.stripLeftPos(isSpaceByte), s.stripRightPos(isSpaceByte))
}

// LStrip removes leading ASCII whitespace.
func (s *Str) LStrip() *Str {
	return s.SliceFrom(s.stripLeftPos(isSpaceByte))
}

// RStrip removes trailing ASCII whitespace.
func (s *Str) RStrip() *Str {
	return s.Slice(0, s.stripRightPos(isSpaceByte))
}

func inChars(chars *Str) func(byte) bool {
	set := chars.Bytes()
	return func(c byte) bool { return bytes.IndexByte(set, c) >= 0 }
}

// StripChars removes any run of bytes present in chars from both ends.
// A string consisting only of stripped characters becomes empty.
func (s *Str) StripChars(chars *Str) *Str {
	match := inChars(chars)
	return s.Slice(s.stripLeftPos(match), s.stripRightPos(match))
}

// LStripChars removes any run of bytes present in chars from the left.
func (s *Str) LStripChars(chars *Str) *Str {
	return s.SliceFrom(s.stripLeftPos(inChars(chars)))
}

// RStripChars removes any run of bytes present in chars from the right.
func (s *Str) RStripChars(chars *Str) *Str {
	return s.Slice(0, s.stripRightPos(inChars(chars)))
}

// LJust pads s on the right with fill until the logical length reaches
// width. A fill that is not exactly one byte is a fatal invariant break.
// No-op (returns the receiver) if s is already at least width long.
func (s *Str) LJust(width int, fill *Str) *Str {
	return s.just(width, fill, false)
}

// RJust pads s on the left with fill until the logical length reaches
// width.
func (s *Str) RJust(width int, fill *Str) *Str {
	return s.just(width, fill, true)
}

func (s *Str) just(width int, fill *Str, padLeft bool) *Str {
	if fill.Len() != 1 {
		fatalf("just: fill char must be a single byte, got length %d", fill.Len())
	}
	n := s.Len()
	if n >= width {
		return s
	}
	out := make([]byte, width)
	pad := fill.data[0]
	if padLeft {
		for i := 0; i < width-n; i++ {
			out[i] = pad
		}
		copy(out[width-n:], s.Bytes())
	} else {
		copy(out, s.Bytes())
		for i := n; i < width; i++ {
			out[i] = pad
		}
	}
	return newStrFromBytes(out)
}

// ---------------------------------------------------------------------------
// Replace, join, split
// ---------------------------------------------------------------------------

// Replace returns a copy with every non-overlapping occurrence of old
// replaced by repl, scanning left to right. An empty old is a no-op and
// returns the receiver; nothing is inserted between bytes.
func (s *Str) Replace(old, repl *Str) *Str {
	if old.Len() == 0 {
		return s
	}
	return newStrFromBytes(bytes.ReplaceAll(s.Bytes(), old.Bytes(), repl.Bytes()))
}

// Concat returns the concatenation of s and other.
func (s *Str) Concat(other *Str) *Str {
	out := make([]byte, s.Len()+other.Len())
	copy(out, s.Bytes())
	copy(out[s.Len():], other.Bytes())
	return newStrFromBytes(out)
}

// Join concatenates the items with s as the separator. An empty
// sequence yields the empty string; a one-element sequence yields that
// element's content with no separator applied.
func (s *Str) Join(items *List[*Str]) *Str {
	if items.Len() == 0 {
		return NewStr("")
	}
	sep := s.Bytes()
	size := 0
	for i, item := range items.elems {
		if i > 0 {
			size += len(sep)
		}
		size += item.Len()
	}
	out := make([]byte, 0, size)
	for i, item := range items.elems {
		if i > 0 {
			out = append(out, sep...)
		}
		out = append(out, item.Bytes()...)
	}
	return newStrFromBytes(out)
}

// Split partitions s on every occurrence of sep, keeping empty pieces
// for adjacent, leading, and trailing separators, so that
// sep.Join(s.Split(sep)) reproduces s. An empty separator is a fatal
// invariant break; generated call sites never pass one.
func (s *Str) Split(sep *Str) *List[*Str] {
	if sep.Len() == 0 {
		fatalf("split: empty separator")
	}
	out := NewList[*Str]()
	hay := s.Bytes()
	pat := sep.Bytes()
	for {
		i := bytes.Index(hay, pat)
		if i < 0 {
			out.Append(newStrFromBytes(hay))
			return out
		}
		out.Append(newStrFromBytes(hay[:i]))
		hay = hay[i+len(pat):]
	}
}

// SplitLines splits s on line boundaries: "\n", "\r", and "\r\n". When
// keep is true each piece retains its trailing terminator. A trailing
// terminator does not produce a final empty piece, and the empty string
// yields an empty sequence.
func (s *Str) SplitLines(keep bool) *List[*Str] {
	out := NewList[*Str]()
	data := s.Bytes()
	n := len(data)
	start := 0
	for i := 0; i < n; {
		c := data[i]
		if c != '\n' && c != '\r' {
			i++
			continue
		}
		end := i
		i++
		if c == '\r' && i < n && data[i] == '\n' {
			i++
		}
		if keep {
			end = i
		}
		out.Append(newStrFromBytes(data[start:end]))
		start = i
	}
	if start < n {
		out.Append(newStrFromBytes(data[start:]))
	}
	return out
}

// ---------------------------------------------------------------------------
// Classification and case mapping
// ---------------------------------------------------------------------------

// IsDigit reports whether s is non-empty and every byte is an ASCII
// digit. The empty string has no bytes to satisfy the predicate.
func (s *Str) IsDigit() bool {
	return s.classify(func(c byte) bool { return c >= '0' && c <= '9' })
}

// IsAlpha reports whether s is non-empty and every byte is an ASCII
// letter.
func (s *Str) IsAlpha() bool {
	return s.classify(func(c byte) bool {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	})
}

// IsUpper reports whether s is non-empty and every byte is an uppercase
// ASCII letter.
func (s *Str) IsUpper() bool {
	return s.classify(func(c byte) bool { return c >= 'A' && c <= 'Z' })
}

func (s *Str) classify(pred func(byte) bool) bool {
	n := s.Len()
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if !pred(s.data[i]) {
			return false
		}
	}
	return true
}

// Upper returns a copy with ASCII letters mapped to uppercase.
// Non-alphabetic bytes pass through unchanged.
func (s *Str) Upper() *Str {
	return s.mapBytes(func(c byte) byte {
		if c >= 'a' && c <= 'z' {
			return c - ('a' - 'A')
		}
		return c
	})
}

// Lower returns a copy with ASCII letters mapped to lowercase.
func (s *Str) Lower() *Str {
	return s.mapBytes(func(c byte) byte {
		if c >= 'A' && c <= 'Z' {
			return c + ('a' - 'A')
		}
		return c
	})
}

func (s *Str) mapBytes(f func(byte) byte) *Str {
	n := s.Len()
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = f(s.data[i])
	}
	return newStrFromBytes(out)
}
