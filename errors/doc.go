// Package errors provides structured error types for the layout bridge.
//
// Every error carries a Phase (where in the pipeline it happened) and a
// Kind (what went wrong). The pair is the identity used by errors.Is, and
// the Kind is what the engine package maps to stable negative wire codes.
//
// Example messages:
//
//	[decode] out_of_bounds in SetChildren: children access [12, 20) exceeds buffer length 16
//	[apply] unknown_node in UpdateStyle: external id 7 is not registered
//	[compute] missing_root: external id 0 does not resolve to a live node
package errors
