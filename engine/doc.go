// Package engine ties the solver tree, the id registry and the mutation
// interpreter together behind one instance type, and defines the handle
// table and status codes the boundary layer speaks.
//
// # Lifecycle
//
// Engines are created with New, published to callers through a Table
// handle, and torn down with Table.Destroy. Handles carry a generation
// so a destroyed instance's handle never resolves to a later engine
// reusing the same slot.
//
// # Two mutation paths
//
// ApplyAndCompute is the incremental path: an opcode stream mutates the
// retained tree in place. BuildAndCompute is the legacy bulk path kept
// from protocol version 1: the caller re-sends the entire tree as a flat
// buffer of style records and the engine rebuilds from scratch. Both end
// by solving from the root (external id 0) and refilling the results
// buffer.
//
// # Results
//
// Results are (id, x, y, width, height) float32 records, one per
// registered node, in unspecified order. Coordinates are relative to the
// parent node. Callers index results by the id field, never by record
// position.
package engine
