package wasmhost

import (
	"context"

	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/style"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// hostExport pairs an export name with its wasm signature and handler.
type hostExport struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	fn      api.GoModuleFunction
}

// Register instantiates the boundary as a host module on the runtime.
// Guests import the functions from ModuleName.
func (h *Host) Register(ctx context.Context, r wazero.Runtime) error {
	builder := r.NewHostModuleBuilder(ModuleName)
	for _, exp := range h.exports() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(exp.fn, exp.params, exp.results).
			Export(exp.name)
	}
	_, err := builder.Instantiate(ctx)
	return err
}

func (h *Host) exports() []hostExport {
	return []hostExport{
		{
			name:    "create_engine",
			params:  []api.ValueType{i32},
			results: []api.ValueType{i64},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = uint64(h.Create(api.DecodeU32(stack[0])))
			}),
		},
		{
			name:    "destroy_engine",
			params:  []api.ValueType{i64},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(int32(h.Destroy(engine.Handle(stack[0]))))
			}),
		},
		{
			name:    "apply_ops_and_compute",
			params:  []api.ValueType{i64, i32, i32, i32, i32, i32, i32},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
				status := h.ApplyOpsAndCompute(mod.Memory(),
					engine.Handle(stack[0]),
					api.DecodeU32(stack[1]), api.DecodeU32(stack[2]),
					api.DecodeU32(stack[3]), api.DecodeU32(stack[4]),
					api.DecodeU32(stack[5]), api.DecodeU32(stack[6]))
				stack[0] = api.EncodeI32(int32(status))
			}),
		},
		{
			name:    "build_and_compute",
			params:  []api.ValueType{i64, i32, i32, i32, i32},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
				status := h.BuildAndCompute(mod.Memory(),
					engine.Handle(stack[0]),
					api.DecodeU32(stack[1]), api.DecodeU32(stack[2]),
					api.DecodeU32(stack[3]), api.DecodeU32(stack[4]))
				stack[0] = api.EncodeI32(int32(status))
			}),
		},
		{
			name:    "get_results_len",
			params:  []api.ValueType{i64},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = uint64(h.ResultsLen(engine.Handle(stack[0])))
			}),
		},
		{
			name:    "read_results",
			params:  []api.ValueType{i64, i32, i32},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
				n := h.ReadResults(mod.Memory(),
					engine.Handle(stack[0]),
					api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
				stack[0] = api.EncodeI32(n)
			}),
		},
		{
			name:    "abi_version",
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(int32(style.ProtocolVersion))
			}),
		},
		{
			name:    "style_stride",
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(int32(style.Stride))
			}),
		},
		{
			name:    "result_stride",
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(int32(style.ResultStride))
			}),
		},
		{
			name:    "elem_size",
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(int32(style.ElemSize))
			}),
		},
		{
			name:    "style_field_offset",
			params:  []api.ValueType{i32},
			results: []api.ValueType{i32},
			fn: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = api.EncodeI32(h.StyleFieldOffset(api.DecodeU32(stack[0])))
			}),
		},
	}
}
