package wasmhost

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/protocol"
	"github.com/flexwire/layout-engine/style"
)

// test helpers

type testMemory struct {
	data []byte
}

func newTestMemory(size int) *testMemory {
	return &testMemory{data: make([]byte, size)}
}

func (m *testMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(m.data)) {
		return nil, false
	}
	return m.data[offset : offset+byteCount], true
}

func (m *testMemory) Write(offset uint32, v []byte) bool {
	if uint64(offset)+uint64(len(v)) > uint64(len(m.data)) {
		return false
	}
	copy(m.data[offset:], v)
	return true
}

func (m *testMemory) putUint32s(offset uint32, vals []uint32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(m.data[offset+uint32(i*4):], v)
	}
}

func (m *testMemory) putFloat32s(offset uint32, vals []float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(m.data[offset+uint32(i*4):], math.Float32bits(v))
	}
}

func (m *testMemory) getFloat32s(offset, count uint32) []float32 {
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(m.data[offset+uint32(i*4):]))
	}
	return out
}

const (
	opsAddr      = 1 << 10
	stylesAddr   = 1 << 12
	childrenAddr = 1 << 13
	resultsAddr  = 1 << 14
)

// loadStream writes the three stream buffers into guest memory and
// returns their element counts.
func loadStream(mem *testMemory, b *protocol.StreamBuilder) (opsLen, stylesLen, childrenLen uint32) {
	ops, styles, children := b.Buffers()
	mem.putUint32s(opsAddr, ops)
	mem.putFloat32s(stylesAddr, styles)
	mem.putUint32s(childrenAddr, children)
	return uint32(len(ops)), uint32(len(styles)), uint32(len(children))
}

func sizedRecord(w, h float32) []float32 {
	rec := style.NewRecord()
	rec[style.PropWidth] = w
	rec[style.PropHeight] = h
	return rec
}

// readResultMap pulls the results out of guest memory keyed by id.
func readResultMap(t *testing.T, h *Host, mem *testMemory, handle engine.Handle) map[uint32][4]float32 {
	t.Helper()
	n := h.ResultsLen(handle)
	if n%uint32(style.ResultStride) != 0 {
		t.Fatalf("results length %d not a multiple of %d", n, style.ResultStride)
	}
	if got := h.ReadResults(mem, handle, resultsAddr, n); got != int32(n) {
		t.Fatalf("ReadResults = %d, want %d", got, n)
	}
	raw := mem.getFloat32s(resultsAddr, n)

	out := make(map[uint32][4]float32, n/uint32(style.ResultStride))
	for i := 0; i < len(raw); i += style.ResultStride {
		out[uint32(raw[i])] = [4]float32{raw[i+1], raw[i+2], raw[i+3], raw[i+4]}
	}
	return out
}

func TestCreateDestroyLifecycle(t *testing.T) {
	h := NewHost()

	handle := h.Create(0)
	if handle == 0 {
		t.Fatal("zero handle issued")
	}
	if got := h.Destroy(handle); got != engine.StatusOK {
		t.Fatalf("Destroy = %s, want ok", got)
	}
	if got := h.Destroy(handle); got != engine.StatusInvalidHandle {
		t.Fatalf("double Destroy = %s, want invalid_handle", got)
	}
	if got := h.ResultsLen(handle); got != 0 {
		t.Fatalf("ResultsLen on dead handle = %d, want 0", got)
	}
}

func TestApplyOpsAndComputeThroughMemory(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 16)
	handle := h.Create(0)

	root := style.NewRecord()
	root[style.PropWidth] = 200
	root[style.PropHeight] = 100
	root[style.PropJustifyContent] = 3 // space-between

	opsLen, stylesLen, childrenLen := loadStream(mem, protocol.NewStreamBuilder().
		CreateLeaf(0, root).
		CreateLeaf(1, sizedRecord(50, 50)).
		CreateLeaf(2, sizedRecord(50, 50)).
		SetChildren(0, 1, 2))

	status := h.ApplyOpsAndCompute(mem, handle,
		opsAddr, opsLen, stylesAddr, stylesLen, childrenAddr, childrenLen)
	if status != engine.StatusOK {
		t.Fatalf("ApplyOpsAndCompute = %s, want ok", status)
	}

	got := readResultMap(t, h, mem, handle)
	if len(got) != 3 {
		t.Fatalf("%d result records, want 3", len(got))
	}
	if r := got[0]; r != [4]float32{0, 0, 200, 100} {
		t.Fatalf("root box = %v", r)
	}
	if r := got[2]; r != [4]float32{150, 0, 50, 50} {
		t.Fatalf("second child box = %v, want [150 0 50 50]", r)
	}
}

func TestApplyOpsInvalidHandle(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 12)

	status := h.ApplyOpsAndCompute(mem, engine.Handle(0), 0, 0, 0, 0, 0, 0)
	if status != engine.StatusInvalidHandle {
		t.Fatalf("status = %s, want invalid_handle", status)
	}
}

func TestApplyOpsNilPointer(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 12)
	handle := h.Create(0)

	status := h.ApplyOpsAndCompute(mem, handle, 0, 3, 0, 0, 0, 0)
	if status != engine.StatusNilPointer {
		t.Fatalf("status = %s, want nil_pointer", status)
	}
}

func TestApplyOpsBufferOutsideMemory(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 10)
	handle := h.Create(0)

	status := h.ApplyOpsAndCompute(mem, handle, 1020, 3, 0, 0, 0, 0)
	if status != engine.StatusOutOfBounds {
		t.Fatalf("status = %s, want out_of_bounds", status)
	}
}

func TestApplyOpsMissingRoot(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 16)
	handle := h.Create(0)

	opsLen, stylesLen, childrenLen := loadStream(mem, protocol.NewStreamBuilder().
		CreateLeaf(1, sizedRecord(10, 10)))

	status := h.ApplyOpsAndCompute(mem, handle,
		opsAddr, opsLen, stylesAddr, stylesLen, childrenAddr, childrenLen)
	if status != engine.StatusMissingRoot {
		t.Fatalf("status = %s, want missing_root", status)
	}
}

func TestBuildAndComputeThroughMemory(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 16)
	handle := h.Create(0)

	nodes := make([]float32, 2*style.Stride)
	root := nodes[:style.Stride]
	copy(root, style.NewRecord())
	root[style.PropWidth] = 100
	root[style.PropHeight] = 100
	root[style.PropChildrenCount] = 1
	root[style.PropChildrenOffset] = 0
	child := nodes[style.Stride:]
	copy(child, style.NewRecord())
	child[style.PropWidth] = 30
	child[style.PropHeight] = 30

	mem.putFloat32s(stylesAddr, nodes)
	mem.putUint32s(childrenAddr, []uint32{1})

	status := h.BuildAndCompute(mem, handle,
		stylesAddr, uint32(len(nodes)), childrenAddr, 1)
	if status != engine.StatusOK {
		t.Fatalf("BuildAndCompute = %s, want ok", status)
	}

	got := readResultMap(t, h, mem, handle)
	if len(got) != 2 {
		t.Fatalf("%d result records, want 2", len(got))
	}
	if r := got[1]; r[2] != 30 || r[3] != 30 {
		t.Fatalf("child box = %v, want 30x30", r)
	}
}

func TestBuildAndComputeMisaligned(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 12)
	handle := h.Create(0)

	status := h.BuildAndCompute(mem, handle, 16, uint32(style.Stride+1), 0, 0)
	if status != engine.StatusMisaligned {
		t.Fatalf("status = %s, want misaligned", status)
	}
}

func TestReadResultsCapacityTooSmall(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 16)
	handle := h.Create(0)

	opsLen, stylesLen, childrenLen := loadStream(mem, protocol.NewStreamBuilder().
		CreateLeaf(0, sizedRecord(10, 10)))
	if status := h.ApplyOpsAndCompute(mem, handle,
		opsAddr, opsLen, stylesAddr, stylesLen, childrenAddr, childrenLen); status != engine.StatusOK {
		t.Fatalf("setup failed: %s", status)
	}

	if got := h.ReadResults(mem, handle, resultsAddr, 1); got != int32(engine.StatusOutOfBounds) {
		t.Fatalf("ReadResults with tiny capacity = %d, want out_of_bounds", got)
	}
}

func TestReadResultsEmpty(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 12)
	handle := h.Create(0)

	if got := h.ReadResults(mem, handle, resultsAddr, 0); got != 0 {
		t.Fatalf("ReadResults on fresh engine = %d, want 0", got)
	}
}

func TestStyleFieldOffset(t *testing.T) {
	h := NewHost()

	cases := []struct {
		prop uint32
		want int32
	}{
		{uint32(style.PropDisplay), 0},
		{uint32(style.PropWidth), 10},
		{uint32(style.PropGapColumn), 25},
		{uint32(style.PropChildrenOffset), 27},
		{uint32(style.PropCount), -1},
		{999, -1},
	}
	for _, tc := range cases {
		if got := h.StyleFieldOffset(tc.prop); got != tc.want {
			t.Errorf("StyleFieldOffset(%d) = %d, want %d", tc.prop, got, tc.want)
		}
	}
}

func TestEnginesAreIsolated(t *testing.T) {
	h := NewHost()
	mem := newTestMemory(1 << 16)

	a := h.Create(0)
	b := h.Create(0)

	opsLen, stylesLen, childrenLen := loadStream(mem, protocol.NewStreamBuilder().
		CreateLeaf(0, sizedRecord(10, 10)))
	if status := h.ApplyOpsAndCompute(mem, a,
		opsAddr, opsLen, stylesAddr, stylesLen, childrenAddr, childrenLen); status != engine.StatusOK {
		t.Fatalf("engine a: %s", status)
	}

	if got := h.ResultsLen(a); got != uint32(style.ResultStride) {
		t.Fatalf("engine a results length = %d", got)
	}
	if got := h.ResultsLen(b); got != 0 {
		t.Fatalf("engine b results length = %d, want 0", got)
	}
}
