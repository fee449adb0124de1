package wasmhost

import (
	"encoding/binary"
	"math"

	"github.com/flexwire/layout-engine/errors"
)

// Memory is the slice of guest linear memory the boundary needs. wazero's
// api.Memory satisfies it; tests use an in-process fake.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
}

// maxElems bounds a single transfer so the byte count cannot overflow
// 32 bits.
const maxElems = 1 << 28

// readBytes validates a (ptr, element count) pair and reads count*4 bytes
// of guest memory. A null pointer with a nonzero count is a protocol
// violation; a zero count reads nothing regardless of the pointer.
func readBytes(mem Memory, ptr, count uint32, what string) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	if ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseBoundary, what, count)
	}
	if count > maxElems {
		return nil, errors.New(errors.PhaseBoundary, errors.KindOutOfBounds).
			Detail("%s length %d exceeds transfer limit", what, count).
			Value(count).
			Build()
	}
	b, ok := mem.Read(ptr, count*4)
	if !ok {
		return nil, errors.New(errors.PhaseBoundary, errors.KindOutOfBounds).
			Detail("%s buffer [%#x, %d elements) outside guest memory", what, ptr, count).
			Value(ptr).
			Build()
	}
	return b, nil
}

func readUint32s(mem Memory, ptr, count uint32, what string) ([]uint32, error) {
	b, err := readBytes(mem, ptr, count, what)
	if err != nil || b == nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

func readFloat32s(mem Memory, ptr, count uint32, what string) ([]float32, error) {
	b, err := readBytes(mem, ptr, count, what)
	if err != nil || b == nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func writeFloat32s(mem Memory, ptr uint32, vals []float32, what string) error {
	if len(vals) == 0 {
		return nil
	}
	if ptr == 0 {
		return errors.NilPointer(errors.PhaseBoundary, what, uint32(len(vals)))
	}
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	if !mem.Write(ptr, b) {
		return errors.New(errors.PhaseBoundary, errors.KindOutOfBounds).
			Detail("%s buffer [%#x, %d elements) outside guest memory", what, ptr, len(vals)).
			Value(ptr).
			Build()
	}
	return nil
}
