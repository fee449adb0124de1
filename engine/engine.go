package engine

import (
	"github.com/flexwire/layout-engine/errors"
	"github.com/flexwire/layout-engine/flex"
	"github.com/flexwire/layout-engine/protocol"
	"github.com/flexwire/layout-engine/registry"
	"github.com/flexwire/layout-engine/style"
	"go.uber.org/zap"
)

// Engine owns one retained layout tree, the id registry that maps a
// caller's external node ids onto solver nodes, and the results buffer
// from the most recent computation.
//
// External id 0 is the layout root. Every compute pass resolves it; a
// tree without a registered root cannot be solved.
//
// An Engine is not safe for concurrent use. The boundary layer serializes
// calls per instance.
type Engine struct {
	tree    *flex.Tree
	reg     *registry.Registry
	interp  protocol.Interpreter
	results []float32
	log     *zap.Logger
}

type config struct {
	capacity int
	log      *zap.Logger
}

// Option configures an Engine at construction.
type Option func(*config)

// WithCapacity pre-sizes the tree and registry for n nodes.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithLogger attaches a logger. The default is the package logger, which
// is a no-op unless SetLogger was called.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	cfg := config{capacity: 64}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = Logger()
	}

	e := &Engine{
		tree: flex.NewTree(cfg.capacity),
		reg:  registry.New(cfg.capacity),
		log:  cfg.log,
	}
	e.interp = protocol.Interpreter{Tree: e.tree, Registry: e.reg}
	return e
}

// ApplyAndCompute runs an instruction stream against the retained tree,
// then recomputes layout from the root. The results buffer is replaced on
// success and left untouched when the stream or the solve fails.
//
// A failed stream may still have mutated the tree; instructions before
// the failure point stay applied.
func (e *Engine) ApplyAndCompute(ops []uint32, styles []float32, children []uint32) error {
	if err := e.interp.Run(ops, styles, children); err != nil {
		e.log.Debug("instruction stream failed",
			zap.Int("ops_len", len(ops)),
			zap.Error(err))
		return err
	}
	return e.compute()
}

// BuildAndCompute is the protocol-version-1 bulk path: the caller hands
// over the whole tree as one flat buffer of style records plus a child-id
// buffer, and the engine rebuilds from scratch. The record index is the
// external id, so record 0 is the root.
//
// A record's children_count and children_offset fields select a run of
// external ids in the children buffer. Ids that resolve to no record are
// dropped silently, which is the version-1 behavior callers depend on.
// Runs reaching past the end of the children buffer are out-of-bounds
// errors, and a child list that would make a node its own ancestor is a
// cycle error, same as the incremental path.
func (e *Engine) BuildAndCompute(nodes []float32, children []uint32) error {
	if len(nodes)%style.Stride != 0 {
		return errors.Misaligned(errors.PhaseBoundary, "node buffer", len(nodes), style.Stride)
	}
	count := len(nodes) / style.Stride
	if count == 0 {
		return errors.MissingRoot()
	}

	e.tree.Clear()
	e.reg.Clear()

	handles := make([]flex.NodeID, count)
	for i := 0; i < count; i++ {
		rec := nodes[i*style.Stride : (i+1)*style.Stride]
		handles[i] = e.tree.NewLeaf(style.Decode(rec))
		e.reg.Insert(uint32(i), handles[i])
	}

	for i := 0; i < count; i++ {
		rec := nodes[i*style.Stride : (i+1)*style.Stride]
		n := int(rec[style.PropChildrenCount])
		if n <= 0 {
			continue
		}
		off := int(rec[style.PropChildrenOffset])
		if off < 0 || off+n > len(children) {
			return errors.OutOfBounds("BuildAndCompute", "children", off, n, len(children))
		}

		kids := make([]flex.NodeID, 0, n)
		for _, ext := range children[off : off+n] {
			if int(ext) >= count {
				continue
			}
			kids = append(kids, handles[ext])
		}
		if err := e.tree.SetChildren(handles[i], kids); err != nil {
			if err == flex.ErrCycle {
				return errors.Cycle("BuildAndCompute", uint32(i),
					bulkCycleChild(e.tree, handles, i, children[off:off+n]))
			}
			return errors.Solver(errors.PhaseApply, err, "bulk set children")
		}
	}

	e.log.Debug("tree rebuilt from bulk buffers",
		zap.Int("nodes", count),
		zap.Int("children", len(children)))
	return e.compute()
}

// bulkCycleChild re-runs the ancestor check to name the offending id in
// the cycle error. Diagnostic only; the assignment was already rejected.
func bulkCycleChild(tree *flex.Tree, handles []flex.NodeID, i int, ids []uint32) uint32 {
	for _, ext := range ids {
		if int(ext) >= len(handles) {
			continue
		}
		if handles[ext] == handles[i] || tree.IsAncestor(handles[ext], handles[i]) {
			return ext
		}
	}
	return uint32(i)
}

// Compute re-solves the current tree without mutating it. Useful after a
// failed stream left the tree in a known-good prefix state.
func (e *Engine) Compute() error {
	return e.compute()
}

// Results returns the buffer filled by the last successful computation:
// one (id, x, y, width, height) float32 record per registered node, in
// unspecified order. The slice is owned by the engine and overwritten by
// the next computation.
func (e *Engine) Results() []float32 {
	return e.results
}

// ResultsLen returns the element count of the results buffer.
func (e *Engine) ResultsLen() int {
	return len(e.results)
}

// NodeCount returns the number of registered nodes.
func (e *Engine) NodeCount() int {
	return e.reg.Len()
}

func (e *Engine) compute() error {
	root, ok := e.reg.Resolve(registry.RootID)
	if !ok {
		return errors.MissingRoot()
	}
	if err := e.tree.ComputeLayout(root, flex.MaxContent()); err != nil {
		return errors.Solver(errors.PhaseCompute, err, "compute layout")
	}
	e.extractResults()

	e.log.Debug("layout computed",
		zap.Int("nodes", e.reg.Len()),
		zap.Int("results_len", len(e.results)))
	return nil
}

// extractResults walks every registered node and serializes its computed
// box. Node ids are float-encoded like the rest of the record; they stay
// exact up to 2^24.
func (e *Engine) extractResults() {
	e.results = e.results[:0]
	e.reg.Each(func(handle flex.NodeID, external uint32) bool {
		l, err := e.tree.Layout(handle)
		if err != nil {
			return true
		}
		e.results = append(e.results,
			float32(external), l.X, l.Y, l.Width, l.Height)
		return true
	})
}
