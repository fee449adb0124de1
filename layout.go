package layoutengine

import (
	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/style"
)

// Engine is the root-level alias for an engine instance.
type Engine = engine.Engine

// Option configures a new Engine.
type Option = engine.Option

// New creates an empty engine.
func New(opts ...Option) *Engine {
	return engine.New(opts...)
}

// WithCapacity pre-sizes an engine for n nodes.
func WithCapacity(n int) Option {
	return engine.WithCapacity(n)
}

// Version returns the protocol version of the wire contract.
func Version() int {
	return style.ProtocolVersion
}

// Schema returns the buffer layout constants callers configure their
// encoders from.
func Schema() style.Schema {
	return style.Describe()
}
