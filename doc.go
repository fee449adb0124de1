// Package layoutengine provides a flexbox layout engine designed to be
// driven across a buffer boundary: a foreign caller describes its node
// tree as flat numeric buffers, the engine solves the layout, and the
// computed boxes travel back the same way.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	layout-engine/       Root package re-exporting the engine surface
//	├── engine/          Engine instances, handle table and status codes
//	├── protocol/        Mutation opcode stream and its interpreter
//	├── style/           Style record layout and decoding
//	├── registry/        External id to solver node mapping
//	├── flex/            The flexbox solver and retained tree
//	├── errors/          Structured error types for the boundary
//	└── wasmhost/        wazero host module publishing the boundary
//
// # Quick Start
//
// Drive an engine directly from Go:
//
//	e := layoutengine.New()
//
//	rec := style.NewRecord()
//	rec[style.PropWidth] = 200
//	rec[style.PropHeight] = 100
//
//	ops, styles, children := protocol.NewStreamBuilder().
//	    CreateLeaf(0, rec).
//	    Buffers()
//
//	if err := e.ApplyAndCompute(ops, styles, children); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(e.Results()) // [0 0 0 200 100]
//
// Or publish the boundary to a WASM guest:
//
//	r := wazero.NewRuntime(ctx)
//	host := wasmhost.NewHost()
//	if err := host.Register(ctx, r); err != nil {
//	    log.Fatal(err)
//	}
//
// # Wire Contract
//
// Styles cross the boundary as fixed-stride float32 records; style.Prop
// names each field and style.Stride is the record width. Unset
// dimensions are encoded as NaN. Mutations are 32-bit opcode streams
// (see protocol), results are (id, x, y, width, height) records, and
// every fallible boundary call maps its error to a negative
// engine.Status. Callers verify the layout at startup through the
// style.Describe schema instead of hardcoding offsets.
package layoutengine
