/*
Package arena implements the document-scoped bump allocator and the
process-wide interned-string table described in spec §3 ("Interned
identifier", "Arena heap").

A Heap owns the text strings copied into it for one document; nothing
in it is freed individually; the whole
heap is discarded when the document dies (§3 "Lifecycles", §5
"Resource policy"). The interned-string table, by contrast, is
process-wide and append-only, shared and mutex-protected across
documents (§5 "Process-wide state").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package arena

import (
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// --- Interned identifiers ---------------------------------------------------

// Name is an immutable handle into the process-wide string table. Names
// are comparable by pointer equality (the underlying *entry is unique per
// string value), which makes tag-name and attribute-name comparisons a
// single pointer compare instead of a string compare.
type Name struct {
	entry *string
}

// Equal compares two interned names by identity.
func (n Name) Equal(other Name) bool {
	return n.entry == other.entry
}

// String returns the interned string value. The zero Name returns "".
func (n Name) String() string {
	if n.entry == nil {
		return ""
	}
	return *n.entry
}

// IsZero reports whether n is the zero Name (never interned).
func (n Name) IsZero() bool {
	return n.entry == nil
}

// Table is a process-wide, append-only interning table for tag names,
// attribute names, namespaces, counter names and page names. Backed by a
// prefix trie so that repeated interning of common tag/attribute names
// (div, class, id, span, ...) is a fast prefix walk rather than a map
// hash of the whole string, and so that future prefix-based queries
// (e.g. "all interned custom-element names starting with x-") are cheap.
//
// All methods are safe for concurrent use from multiple documents, per
// §5 "Process-wide state: ... protected by an internal mutex".
type Table struct {
	mu   sync.Mutex
	trie *trie.Trie
}

// NewTable creates an empty interning table.
func NewTable() *Table {
	return &Table{trie: trie.New()}
}

// global is the default process-wide table, mirroring the teacher's
// init/teardown singleton-with-mutex pattern (§9 design notes).
var global = NewTable()

// Global returns the default process-wide interning table.
func Global() *Table {
	return global
}

// Intern returns the canonical Name for s, creating an entry on first use.
func (t *Table) Intern(s string) Name {
	t.mu.Lock()
	defer t.mu.Unlock()
	if node, ok := t.trie.Find(s); ok {
		if meta, ok := node.Meta().(*string); ok {
			return Name{entry: meta}
		}
	}
	copied := s
	t.trie.Add(s, &copied)
	return Name{entry: &copied}
}

// Lookup returns the interned Name for s without creating a new entry.
func (t *Table) Lookup(s string) (Name, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	node, ok := t.trie.Find(s)
	if !ok {
		return Name{}, false
	}
	meta, ok := node.Meta().(*string)
	if !ok {
		return Name{}, false
	}
	return Name{entry: meta}, true
}

// Intern interns s into the global table.
func Intern(s string) Name {
	return global.Intern(s)
}

// --- Arena heap --------------------------------------------------------------

// Heap is a monotonic append-only store for the text of one document
// (§3 "Arena heap"). Strings copied into it are immutable copies of
// chunks the heap keeps; nodes and boxes are ordinary Go allocations and
// are not held here. Nothing is freed individually — the document frees
// the whole heap at end of life.
//
// Go's garbage collector already reclaims individual allocations, so Heap
// exists to give text content a single contiguous, append-only backing
// store (matching the teacher's use of github.com/npillmayer/cords for
// text) rather than to manage memory by hand; the invariant it enforces
// is "one owner, bulk lifetime", not manual freeing.
type Heap struct {
	mu     sync.Mutex
	chunks [][]byte
	live   bool
}

// NewHeap creates an empty, live arena.
func NewHeap() *Heap {
	return &Heap{live: true}
}

// CopyString copies s into the arena and returns an immutable view of it.
// The returned string shares no memory with the caller's s, so later
// mutation of a caller-owned buffer cannot corrupt the document.
func (h *Heap) CopyString(s string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.live {
		panic("arena: CopyString on a freed heap")
	}
	buf := make([]byte, len(s))
	copy(buf, s)
	h.chunks = append(h.chunks, buf)
	return string(buf)
}

// Free discards the arena. Subsequent allocations panic; this matches the
// teacher's "nodes and boxes are not individually freed" invariant — the
// whole heap goes away at once, never piecemeal.
func (h *Heap) Free() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunks = nil
	h.live = false
}

// Live reports whether the heap has not yet been freed.
func (h *Heap) Live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.live
}
