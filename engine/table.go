package engine

import "sync"

// Handle identifies one live Engine across the boundary. The low 32 bits
// are a slot index, the high 32 bits a generation counter, so a handle
// that outlives its engine is rejected instead of resolving to a slot's
// next tenant.
type Handle uint64

// Table maps handles to engines. Destroyed slots go on a free list and
// are reissued under a bumped generation.
//
// Unlike Engine itself, a Table is safe for concurrent use; the boundary
// layer resolves handles from whatever goroutine the host runtime calls
// on.
type Table struct {
	mu      sync.Mutex
	entries []tableEntry
	free    []uint32
}

type tableEntry struct {
	engine *Engine
	gen    uint32
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries: make([]tableEntry, 0, 8),
		free:    make([]uint32, 0, 4),
	}
}

// Create stores an engine and returns its handle.
func (t *Table) Create(e *Engine) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		ent := &t.entries[idx]
		ent.engine = e
		return makeHandle(idx, ent.gen)
	}

	idx := uint32(len(t.entries))
	t.entries = append(t.entries, tableEntry{engine: e, gen: 1})
	return makeHandle(idx, 1)
}

// Get resolves a handle. Stale generations and destroyed slots return
// false.
func (t *Table) Get(h Handle) (*Engine, bool) {
	idx, gen := splitHandle(h)

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(idx) >= len(t.entries) {
		return nil, false
	}
	ent := &t.entries[idx]
	if ent.engine == nil || ent.gen != gen {
		return nil, false
	}
	return ent.engine, true
}

// Destroy removes an engine and recycles its slot. Returns false when the
// handle was already dead.
func (t *Table) Destroy(h Handle) bool {
	idx, gen := splitHandle(h)

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(idx) >= len(t.entries) {
		return false
	}
	ent := &t.entries[idx]
	if ent.engine == nil || ent.gen != gen {
		return false
	}
	ent.engine = nil
	ent.gen++
	t.free = append(t.free, idx)
	return true
}

// Len returns the number of live engines.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries) - len(t.free)
}

func makeHandle(idx, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx))
}

func splitHandle(h Handle) (idx, gen uint32) {
	return uint32(h), uint32(h >> 32)
}
