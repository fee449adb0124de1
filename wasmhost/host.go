package wasmhost

import (
	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/style"
	"go.uber.org/zap"
)

// ModuleName is the import namespace guests bind the boundary under.
const ModuleName = "flexwire:layout/engine"

// Host owns the engine table behind the boundary functions. One Host
// serves every guest instance sharing a runtime; engines are isolated
// per handle.
type Host struct {
	table      *engine.Table
	log        *zap.Logger
	engineOpts []engine.Option
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger attaches a logger for boundary diagnostics.
func WithLogger(log *zap.Logger) HostOption {
	return func(h *Host) {
		h.log = log
	}
}

// WithEngineOptions forwards options to every engine the host creates.
func WithEngineOptions(opts ...engine.Option) HostOption {
	return func(h *Host) {
		h.engineOpts = opts
	}
}

// NewHost creates an empty host.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		table: engine.NewTable(),
		log:   engine.Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Table exposes the handle table, mainly for embedders that drive the
// host directly instead of through a guest.
func (h *Host) Table() *engine.Table {
	return h.table
}

// Create allocates a fresh engine and returns its handle. capacity is a
// node-count hint; zero takes the engine default.
func (h *Host) Create(capacity uint32) engine.Handle {
	opts := h.engineOpts[:len(h.engineOpts):len(h.engineOpts)]
	if capacity > 0 {
		opts = append(opts, engine.WithCapacity(int(capacity)))
	}
	if h.log != nil {
		opts = append(opts, engine.WithLogger(h.log))
	}
	handle := h.table.Create(engine.New(opts...))
	h.log.Debug("engine created",
		zap.Uint64("handle", uint64(handle)),
		zap.Uint32("capacity", capacity))
	return handle
}

// Destroy tears down an engine. Destroying a dead handle reports
// StatusInvalidHandle, not a crash; the original boundary tolerated
// double-destroys and so does this one.
func (h *Host) Destroy(handle engine.Handle) engine.Status {
	if !h.table.Destroy(handle) {
		return engine.StatusInvalidHandle
	}
	h.log.Debug("engine destroyed", zap.Uint64("handle", uint64(handle)))
	return engine.StatusOK
}

// ApplyOpsAndCompute reads the three instruction-stream buffers out of
// guest memory, applies them and recomputes. Lengths are element counts,
// not bytes.
func (h *Host) ApplyOpsAndCompute(mem Memory, handle engine.Handle,
	opsPtr, opsLen, stylesPtr, stylesLen, childrenPtr, childrenLen uint32) engine.Status {

	e, ok := h.table.Get(handle)
	if !ok {
		return engine.StatusInvalidHandle
	}

	ops, err := readUint32s(mem, opsPtr, opsLen, "ops")
	if err != nil {
		return h.fail(handle, "apply_ops_and_compute", err)
	}
	styles, err := readFloat32s(mem, stylesPtr, stylesLen, "styles")
	if err != nil {
		return h.fail(handle, "apply_ops_and_compute", err)
	}
	children, err := readUint32s(mem, childrenPtr, childrenLen, "children")
	if err != nil {
		return h.fail(handle, "apply_ops_and_compute", err)
	}

	if err := e.ApplyAndCompute(ops, styles, children); err != nil {
		return h.fail(handle, "apply_ops_and_compute", err)
	}
	return engine.StatusOK
}

// BuildAndCompute reads the version-1 bulk buffers out of guest memory
// and rebuilds the whole tree.
func (h *Host) BuildAndCompute(mem Memory, handle engine.Handle,
	nodesPtr, nodesLen, childrenPtr, childrenLen uint32) engine.Status {

	e, ok := h.table.Get(handle)
	if !ok {
		return engine.StatusInvalidHandle
	}

	nodes, err := readFloat32s(mem, nodesPtr, nodesLen, "nodes")
	if err != nil {
		return h.fail(handle, "build_and_compute", err)
	}
	children, err := readUint32s(mem, childrenPtr, childrenLen, "children")
	if err != nil {
		return h.fail(handle, "build_and_compute", err)
	}

	if err := e.BuildAndCompute(nodes, children); err != nil {
		return h.fail(handle, "build_and_compute", err)
	}
	return engine.StatusOK
}

// ResultsLen returns the element count of the results buffer. A dead
// handle reports zero, matching the original boundary.
func (h *Host) ResultsLen(handle engine.Handle) uint32 {
	e, ok := h.table.Get(handle)
	if !ok {
		return 0
	}
	return uint32(e.ResultsLen())
}

// ReadResults copies the results buffer into guest memory. The return is
// the element count written, or a negative status. A capacity smaller
// than the buffer is an out-of-bounds error rather than a partial copy;
// callers size the destination from ResultsLen first.
func (h *Host) ReadResults(mem Memory, handle engine.Handle, outPtr, capElems uint32) int32 {
	e, ok := h.table.Get(handle)
	if !ok {
		return int32(engine.StatusInvalidHandle)
	}

	results := e.Results()
	if len(results) == 0 {
		return 0
	}
	if capElems < uint32(len(results)) {
		return int32(engine.StatusOutOfBounds)
	}
	if err := writeFloat32s(mem, outPtr, results, "results"); err != nil {
		return int32(h.fail(handle, "read_results", err))
	}
	return int32(len(results))
}

// StyleFieldOffset resolves a property index to its record offset, or -1.
func (h *Host) StyleFieldOffset(prop uint32) int32 {
	return int32(style.FieldOffset(style.Prop(prop)))
}

func (h *Host) fail(handle engine.Handle, op string, err error) engine.Status {
	code := engine.Code(err)
	h.log.Debug("boundary call failed",
		zap.Uint64("handle", uint64(handle)),
		zap.String("op", op),
		zap.Int32("status", int32(code)),
		zap.Error(err))
	return code
}
