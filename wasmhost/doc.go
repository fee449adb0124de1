// Package wasmhost publishes the engine as a wazero host module so a
// WASM guest can drive layout across its linear memory.
//
// All buffer parameters travel as (pointer, element count) pairs into
// guest memory; elements are 4 bytes little-endian. The host copies
// buffers out of (and results back into) guest memory per call, so the
// guest may reuse its buffers immediately after a call returns.
//
// Every fallible function returns an engine.Status in its i32 result.
// Introspection exports (abi_version, style_stride, result_stride,
// elem_size, style_field_offset) let a guest verify at startup that its
// encoder agrees with the host's record layout instead of trusting
// compiled-in constants.
package wasmhost
